package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/decorabur/decora-api/internal/config"
	dbpkg "github.com/decorabur/decora-api/internal/db"
	"github.com/decorabur/decora-api/internal/models"
	"github.com/decorabur/decora-api/internal/storage"
)

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	require.NoError(t, dbpkg.Seed(db))

	cfg := &config.Config{
		Env:       "test",
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, db, cfg, store, nil, nil)
	return r, db, cfg
}

func mintToken(t *testing.T, cfg *config.Config, userID uint, email, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryTree(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodGet, "/api/categories/tree", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	type node struct {
		Name     string `json:"name"`
		Children []node `json:"children"`
	}
	var roots []node
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roots))
	require.Len(t, roots, 10)

	var tables *node
	for i := range roots {
		if roots[i].Name == "Tables" {
			tables = &roots[i]
		}
	}
	require.NotNil(t, tables)
	require.Len(t, tables.Children, 2)

	names := []string{tables.Children[0].Name, tables.Children[1].Name}
	assert.Contains(t, names, "Table basse")
	assert.Contains(t, names, "Table de réunion")
}

func TestLoginSeededAdmin(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@decora.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestLoginBadPassword(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "admin@decora.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrdersRequireAuth(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRouteGating(t *testing.T) {
	r, _, cfg := setupAPI(t)

	w := doRequest(r, http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	customer := mintToken(t, cfg, 7, "client@example.com", models.RoleCustomer)
	w = doRequest(r, http.MethodGet, "/api/admin/dashboard", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardCounts(t *testing.T) {
	r, db, cfg := setupAPI(t)

	require.NoError(t, db.Create(&models.Order{Status: models.OrderStatusPending, TotalAmount: 10}).Error)
	require.NoError(t, db.Create(&models.Order{Status: models.OrderStatusShipped, TotalAmount: 20}).Error)

	admin := mintToken(t, cfg, 1, "admin@decora.com", models.RoleAdmin)
	w := doRequest(r, http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalProducts   int64 `json:"total_products"`
		TotalCategories int64 `json:"total_categories"`
		TotalOrders     int64 `json:"total_orders"`
		TotalCustomers  int64 `json:"total_customers"`
		PendingOrders   int64 `json:"pending_orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 12, stats.TotalCategories)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 0, stats.TotalCustomers)
	assert.EqualValues(t, 1, stats.PendingOrders)
}

func TestCreateOrderFlow(t *testing.T) {
	r, db, cfg := setupAPI(t)

	customer := models.User{Email: "client@example.com", PasswordHash: "x", FirstName: "Jean", LastName: "Dupont", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)
	token := mintToken(t, cfg, customer.ID, customer.Email, customer.Role)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Rideau Velours Premium").First(&product).Error)

	w := doRequest(r, http.MethodPost, "/api/orders", token, gin.H{
		"items":            []gin.H{{"product_id": product.ID, "quantity": 2}},
		"shipping_address": "12 rue des Lilas, Paris",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		OrderID uint `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)

	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 48, got.StockQuantity)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", resp.OrderID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Another account must never see it.
	stranger := mintToken(t, cfg, customer.ID+1, "autre@example.com", models.RoleCustomer)
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", resp.OrderID), stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryCascadeHidesProducts(t *testing.T) {
	r, db, _ := setupAPI(t)

	var rideaux models.Category
	require.NoError(t, db.Where("name = ?", "Rideaux").First(&rideaux).Error)

	var product models.Product
	require.NoError(t, db.Where("category_id = ?", rideaux.ID).First(&product).Error)

	w := doRequest(r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", rideaux.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/categories/%d", rideaux.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMissingCategory(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodDelete, "/api/categories/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuoteSubmission(t *testing.T) {
	r, db, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/quotes", "", gin.H{
		"name":    "Jean Dupont",
		"email":   "jean@example.com",
		"subject": "Rideaux sur mesure",
		"message": "Besoin d'un devis pour 6 fenêtres.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)

	var quote models.Quote
	require.NoError(t, db.First(&quote, resp.ID).Error)
	assert.Equal(t, models.RequestStatusNew, quote.Status)
	assert.Nil(t, quote.UserID)
}

func TestQuoteBindsAuthenticatedUser(t *testing.T) {
	r, db, cfg := setupAPI(t)

	token := mintToken(t, cfg, 1, "admin@decora.com", models.RoleAdmin)
	w := doRequest(r, http.MethodPost, "/api/quotes", token, gin.H{
		"name":    "Admin Decora",
		"email":   "admin@decora.com",
		"subject": "Test interne",
		"message": "Vérification du devis.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var quote models.Quote
	require.NoError(t, db.Order("id DESC").First(&quote).Error)
	require.NotNil(t, quote.UserID)
	assert.EqualValues(t, 1, *quote.UserID)
}

func TestQuoteValidation(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/quotes", "", gin.H{
		"name":  "Jean Dupont",
		"email": "jean@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactSubmissionIsPublic(t *testing.T) {
	r, db, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/contact", "", gin.H{
		"name":    "Jean Dupont",
		"email":   "jean@example.com",
		"subject": "Delais de livraison",
		"message": "Quels sont vos delais pour un store sur mesure ?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.ContactRequest{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestContactListAndStatusAreAdminOnly(t *testing.T) {
	r, db, cfg := setupAPI(t)

	request := models.ContactRequest{
		Name:    "Jean Dupont",
		Email:   "jean@example.com",
		Subject: "Delais de livraison",
		Message: "Quels sont vos delais ?",
		Status:  models.RequestStatusNew,
	}
	require.NoError(t, db.Create(&request).Error)

	w := doRequest(r, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	customer := mintToken(t, cfg, 7, "client@example.com", models.RoleCustomer)
	w = doRequest(r, http.MethodGet, "/api/contact", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := mintToken(t, cfg, 1, "admin@decora.com", models.RoleAdmin)
	w = doRequest(r, http.MethodGet, "/api/contact", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var requests []models.ContactRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &requests))
	require.Len(t, requests, 1)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/contact/%d", request.ID), admin,
		gin.H{"status": models.RequestStatusCompleted})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.ContactRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	assert.Equal(t, models.RequestStatusCompleted, got.Status)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	r, db, cfg := setupAPI(t)

	order := models.Order{Status: models.OrderStatusPending, TotalAmount: 99}
	require.NoError(t, db.Create(&order).Error)

	admin := mintToken(t, cfg, 1, "admin@decora.com", models.RoleAdmin)

	w := doRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), admin,
		gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", order.ID), admin,
		gin.H{"status": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/admin/orders/9999/status", admin,
		gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductSearchAndCategoryFilter(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodGet, "/api/products?search=Velours", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bySearch []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bySearch))
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Rideau Velours Premium", bySearch[0].Name)

	w = doRequest(r, http.MethodGet, "/api/products?category=Voilages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var byCategory []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byCategory))
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Voilage Organza", byCategory[0].Name)
}

func TestCategoryCreateRoundTrip(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/categories", "", gin.H{
		"name":        "Luminaires",
		"description": "Lampes et suspensions",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = doRequest(r, http.MethodPost, "/api/categories", "", gin.H{
		"name":      "Suspensions",
		"parent_id": created.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/categories/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Luminaires", fetched.Name)
	assert.Equal(t, "Lampes et suspensions", fetched.Description)

	w = doRequest(r, http.MethodGet, "/api/categories/tree", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	type node struct {
		Name     string `json:"name"`
		Children []node `json:"children"`
	}
	var roots []node
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roots))

	var lum *node
	for i := range roots {
		if roots[i].Name == "Luminaires" {
			lum = &roots[i]
		}
	}
	require.NotNil(t, lum)
	require.Len(t, lum.Children, 1)
	assert.Equal(t, "Suspensions", lum.Children[0].Name)
}

func TestCategoryRejectsMissingParent(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doRequest(r, http.MethodPost, "/api/categories", "", gin.H{
		"name":      "Orpheline",
		"parent_id": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInactiveProductHiddenFromPublic(t *testing.T) {
	r, db, cfg := setupAPI(t)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Store Vénitien Aluminium").First(&product).Error)

	admin := mintToken(t, cfg, 1, "admin@decora.com", models.RoleAdmin)
	w := doRequest(r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d/visibility", product.ID), admin,
		gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The back office still lists it.
	w = doRequest(r, http.MethodGet, "/api/admin/products", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Store Vénitien Aluminium")
}
