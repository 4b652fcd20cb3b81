package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/produits", nil)
	return c, w
}

func TestInternalErrHidesDetailByDefault(t *testing.T) {
	SetVerbose(false)
	c, w := newTestContext(t)

	InternalErr(c, "failed_to_list_products", "Erreur serveur", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed_to_list_products", body["error_code"])
	assert.Equal(t, "Erreur serveur", body["message"])
	_, leaked := body["detail"]
	assert.False(t, leaked)
}

func TestInternalErrExposesDetailWhenVerbose(t *testing.T) {
	SetVerbose(true)
	defer SetVerbose(false)
	c, w := newTestContext(t)

	InternalErr(c, "failed_to_list_products", "Erreur serveur", errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pq: connection refused", body["detail"])
}

func TestInternalErrNilErrorFallsBack(t *testing.T) {
	SetVerbose(true)
	defer SetVerbose(false)
	c, w := newTestContext(t)

	InternalErr(c, "internal_error", "Erreur serveur", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body["error_code"])
	_, hasDetail := body["detail"]
	assert.False(t, hasDetail)
}
