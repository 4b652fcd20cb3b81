package catalog

import "github.com/decorabur/decora-api/internal/models"

type Node struct {
	models.Category
	Children []*Node `json:"children"`
}

// BuildTree assembles the flat category rows into a forest. Nodes are
// attached by pointer, so deeper nesting survives even though the catalog is
// two levels deep in practice. A row whose parent_id points at no existing
// row is promoted to a root rather than dropped; such rows predate parent
// validation on writes.
func BuildTree(rows []models.Category) []*Node {
	byID := make(map[uint]*Node, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &Node{Category: rows[i], Children: []*Node{}}
	}

	roots := make([]*Node, 0, len(rows))
	for i := range rows {
		node := byID[rows[i].ID]
		if pid := rows[i].ParentID; pid != nil {
			if parent, ok := byID[*pid]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
