package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decorabur/decora-api/internal/models"
)

func parent(id uint) *uint { return &id }

func TestBuildTreeNestsChildrenUnderParent(t *testing.T) {
	rows := []models.Category{
		{ID: 1, Name: "Tables"},
		{ID: 2, Name: "Table basse", ParentID: parent(1)},
		{ID: 3, Name: "Table de réunion", ParentID: parent(1)},
		{ID: 4, Name: "Rideaux"},
	}

	roots := BuildTree(rows)

	assert.Len(t, roots, 2)
	assert.Equal(t, "Tables", roots[0].Name)
	assert.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Table basse", roots[0].Children[0].Name)
	assert.Equal(t, "Table de réunion", roots[0].Children[1].Name)
	assert.Empty(t, roots[1].Children)
}

func TestBuildTreePromotesOrphanToRoot(t *testing.T) {
	rows := []models.Category{
		{ID: 1, Name: "Rideaux"},
		{ID: 2, Name: "Orpheline", ParentID: parent(99)},
	}

	roots := BuildTree(rows)

	assert.Len(t, roots, 2)
	assert.Equal(t, "Orpheline", roots[1].Name)
}

func TestBuildTreeKeepsDeeperNesting(t *testing.T) {
	rows := []models.Category{
		{ID: 1, Name: "Tables"},
		{ID: 2, Name: "Table basse", ParentID: parent(1)},
		{ID: 3, Name: "Table basse relevable", ParentID: parent(2)},
	}

	roots := BuildTree(rows)

	assert.Len(t, roots, 1)
	assert.Len(t, roots[0].Children, 1)
	assert.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Table basse relevable", roots[0].Children[0].Children[0].Name)
}

func TestBuildTreeEmptyInput(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}
