package service

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/store"
	"storefront-api/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CatalogService handles catalog reads and admin writes.
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ProductRequest is the payload for product create and replace. Pointer
// numerics distinguish "absent" from a legitimate zero, so a free product
// passes validation while a missing price does not.
type ProductRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Brand       string                 `json:"brand"`
	Category    string                 `json:"category" binding:"required"`
	Price       *float64               `json:"price" binding:"required,gte=0"`
	SalePrice   *float64               `json:"sale_price" binding:"omitempty,gte=0"`
	Stock       int                    `json:"stock" binding:"gte=0"`
	Description string                 `json:"description"`
	Images      []string               `json:"images"`
	Specs       map[string]interface{} `json:"specs"`
	Options     map[string][]string    `json:"options"`
	IsFeatured  bool                   `json:"is_featured"`
	Tags        []string               `json:"tags"`
}

// ProductListRequest carries the optional catalog listing parameters.
type ProductListRequest struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int64
	Limit    int64
}

// ProductPage is one page of shaped products plus pagination metadata.
type ProductPage struct {
	Items []*ProductResponse `json:"items"`
	Page  int64              `json:"page"`
	Limit int64              `json:"limit"`
	Total int64              `json:"total"`
}

// SeedResult reports the outcome of a seeding attempt.
type SeedResult struct {
	Seeded bool  `json:"seeded"`
	Count  int64 `json:"count"`
}

// ParseID converts an external identifier into an ObjectID. Malformed input
// is rejected as a client error before any database round-trip.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, models.ErrInvalidID)
	}
	return oid, nil
}

// ListProducts returns one shaped page of catalog matches.
func (s *CatalogService) ListProducts(ctx context.Context, req ProductListRequest) (*ProductPage, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CatalogQueryLatency.Observe(time.Since(start).Seconds())
	}()

	q := store.ProductQuery{
		Search:   req.Search,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Sort:     req.Sort,
		Page:     req.Page,
		Limit:    req.Limit,
	}.Normalized()

	products, total, err := s.store.ListProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Items: shapeProducts(products),
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
	}, nil
}

// GetProduct fetches a single product by its external identifier.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetProduct(ctx, oid)
	if err != nil {
		return nil, err
	}
	return ShapeProduct(p), nil
}

// CreateProduct validates and inserts a new product, stamping bookkeeping
// fields and a zero rating.
func (s *CatalogService) CreateProduct(ctx context.Context, req *ProductRequest) (*ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	now := time.Now().UTC()
	p := req.toModel()
	p.Rating = models.Rating{}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.InsertProduct(ctx, p); err != nil {
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_id", p.ID.Hex()),
		zap.String("name", p.Name))

	return ShapeProduct(p), nil
}

// ReplaceProduct overwrites all mutable fields of an existing product and
// returns the stored result.
func (s *CatalogService) ReplaceProduct(ctx context.Context, id string, req *ProductRequest) (*ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ReplaceProduct")
	defer span.End()

	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	p := req.toModel()
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.ReplaceProduct(ctx, oid, p); err != nil {
		return nil, err
	}

	updated, err := s.store.GetProduct(ctx, oid)
	if err != nil {
		return nil, err
	}

	util.ProductsUpdatedTotal.Inc()
	s.logger.Info("Product replaced", zap.String("product_id", id))

	return ShapeProduct(updated), nil
}

// FeaturedProducts returns the promotional shelf, best rated first.
func (s *CatalogService) FeaturedProducts(ctx context.Context, limit int64) ([]*ProductResponse, error) {
	products, err := s.store.FeaturedProducts(ctx, clampShelfLimit(limit))
	if err != nil {
		return nil, err
	}
	return shapeProducts(products), nil
}

// NewestProducts returns the new-arrivals shelf.
func (s *CatalogService) NewestProducts(ctx context.Context, limit int64) ([]*ProductResponse, error) {
	products, err := s.store.NewestProducts(ctx, clampShelfLimit(limit))
	if err != nil {
		return nil, err
	}
	return shapeProducts(products), nil
}

// Categories returns the sorted distinct category names.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Categories(ctx)
}

// Seed inserts the sample catalog when empty. A no-op seed reports the
// existing product count.
func (s *CatalogService) Seed(ctx context.Context) (*SeedResult, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.Seed")
	defer span.End()

	inserted, existing, err := s.store.SeedProducts(ctx)
	if err != nil {
		return nil, err
	}

	if inserted > 0 {
		util.ProductsSeededTotal.Add(float64(inserted))
		s.logger.Info("Sample catalog seeded", zap.Int64("count", inserted))
		return &SeedResult{Seeded: true, Count: inserted}, nil
	}
	return &SeedResult{Seeded: false, Count: existing}, nil
}

func (req *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       *req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		Description: req.Description,
		Images:      emptyIfNil(req.Images),
		Specs:       req.Specs,
		Options:     req.Options,
		IsFeatured:  req.IsFeatured,
		Tags:        emptyIfNil(req.Tags),
	}
}

func shapeProducts(products []models.Product) []*ProductResponse {
	shaped := make([]*ProductResponse, 0, len(products))
	for i := range products {
		shaped = append(shaped, ShapeProduct(&products[i]))
	}
	return shaped
}

func clampShelfLimit(limit int64) int64 {
	if limit < 1 {
		return store.DefaultShelfLimit
	}
	if limit > store.MaxPageSize {
		return store.MaxPageSize
	}
	return limit
}
