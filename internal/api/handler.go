package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/service"
	"storefront-api/internal/store"
	"storefront-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog *service.CatalogService
	orders  *service.OrderService
	store   *store.Store
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *service.CatalogService, orders *service.OrderService, store *store.Store) *Handler {
	return &Handler{
		catalog: catalog,
		orders:  orders,
		store:   store,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(corsMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/test", h.testDatabase)
	router.GET("/health", h.healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/categories", h.listCategories)

		api.GET("/products", h.listProducts)
		api.GET("/products/best", h.bestProducts)
		api.GET("/products/new", h.newProducts)
		api.GET("/products/:id", h.getProduct)

		api.POST("/orders", h.createOrder)
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id", h.getOrder)
		api.PUT("/orders/:id/status", h.updateOrderStatus)

		admin := api.Group("/admin")
		{
			admin.POST("/products", h.createProduct)
			admin.PUT("/products/:id", h.updateProduct)
			admin.POST("/seed", h.seedCatalog)
		}
	}
}

// root reports service liveness
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Storefront API is running",
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// testDatabase reports database reachability and the visible collections
func (h *Handler) testDatabase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := gin.H{
		"backend":           "running",
		"database":          "unavailable",
		"database_name":     h.store.DatabaseName(),
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if err := h.store.Ping(ctx); err != nil {
		resp["error"] = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["database"] = "available"
	resp["connection_status"] = "connected"

	if names, err := h.store.CollectionNames(ctx); err == nil {
		if len(names) > 20 {
			names = names[:20]
		}
		resp["collections"] = names
	}

	c.JSON(http.StatusOK, resp)
}

// listCategories returns the sorted distinct category names
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, "Categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// listProducts handles the filtered, sorted, paginated catalog listing
func (h *Handler) listProducts(c *gin.Context) {
	req := service.ProductListRequest{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		MinPrice: queryFloat(c, "min_price"),
		MaxPrice: queryFloat(c, "max_price"),
		Sort:     c.Query("sort"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", store.DefaultPageSize),
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// bestProducts returns the featured shelf
func (h *Handler) bestProducts(c *gin.Context) {
	products, err := h.catalog.FeaturedProducts(c.Request.Context(), queryInt(c, "limit", store.DefaultShelfLimit))
	if err != nil {
		h.respondError(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// newProducts returns the new-arrivals shelf
func (h *Handler) newProducts(c *gin.Context) {
	products, err := h.catalog.NewestProducts(c.Request.Context(), queryInt(c, "limit", store.DefaultShelfLimit))
	if err != nil {
		h.respondError(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createProduct handles admin product creation
func (h *Handler) createProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Product", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// updateProduct handles admin product replacement
func (h *Handler) updateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.ReplaceProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, "Product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createOrder handles order placement
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "Order", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listOrders returns orders, optionally filtered by shipping email
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), c.Query("email"), queryInt(c, "limit", store.DefaultOrderLimit))
	if err != nil {
		h.respondError(c, "Orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "Order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrderStatus sets the status of an existing order
func (h *Handler) updateOrderStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status query parameter is required",
		})
		return
	}

	resp, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.respondError(c, "Order", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// seedCatalog handles explicit admin seeding; failures propagate
func (h *Handler) seedCatalog(c *gin.Context) {
	result, err := h.catalog.Seed(c.Request.Context())
	if err != nil {
		h.respondError(c, "Seed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to HTTP statuses
func (h *Handler) respondError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": resource + " not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   resource + " request failed",
			"details": err.Error(),
		})
	}
}

// queryFloat parses an optional non-negative float parameter; invalid values
// are treated as absent
func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// queryInt parses an optional integer parameter with a default
func queryInt(c *gin.Context, name string, def int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// requestIDMiddleware tags every request with an ID for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// corsMiddleware applies the permissive policy expected by the storefront
// frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
