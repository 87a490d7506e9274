package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Routes below either never reach the store or fail validation first, so a
// nil store is safe. Database-backed paths are covered by the store
// integration tests.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewHandler(service.NewCatalogService(nil), service.NewOrderService(nil), nil)
	handler.SetupRoutes(router)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootEndpoint(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestHealthEndpoint(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/health", "")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGetProductMalformedID(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/api/products/not-a-hex", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid ID format")
}

func TestGetOrderMalformedID(t *testing.T) {
	w := perform(newTestRouter(), http.MethodGet, "/api/orders/12345", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusMalformedID(t *testing.T) {
	w := perform(newTestRouter(), http.MethodPut, "/api/orders/bogus/status?status=shipped", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusMissingParam(t *testing.T) {
	w := perform(newTestRouter(), http.MethodPut, "/api/orders/5f2d6f3b9b1e8b3a4c8b4567/status", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	body := `{"name":"Tee","category":"Apparel","price":-1}`

	w := perform(newTestRouter(), http.MethodPost, "/api/admin/products", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRejectsMissingName(t *testing.T) {
	body := `{"category":"Apparel","price":10}`

	w := perform(newTestRouter(), http.MethodPost, "/api/admin/products", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	body := `{
		"items":[{"product_id":"abc","name":"Tee","price":10,"quantity":0}],
		"shipping":{"full_name":"Jo Doe","email":"jo@example.com","address_line1":"1 Main St","city":"Springfield","state":"IL","postal_code":"62701","country":"US"},
		"payment":{"method":"cod"}
	}`

	w := perform(newTestRouter(), http.MethodPost, "/api/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	body := `{
		"items":[],
		"shipping":{"full_name":"Jo Doe","email":"jo@example.com","address_line1":"1 Main St","city":"Springfield","state":"IL","postal_code":"62701","country":"US"},
		"payment":{"method":"cod"}
	}`

	w := perform(newTestRouter(), http.MethodPost, "/api/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	w := perform(newTestRouter(), http.MethodOptions, "/api/products", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
