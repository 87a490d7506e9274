package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProducts returns one page of products matching the query, along with
// the total match count for pagination controls.
func (s *Store) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	filter := q.Filter()

	total, err := s.products().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := s.products().Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, total, nil
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.products().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertProduct inserts a new product and fills in its assigned ID.
func (s *Store) InsertProduct(ctx context.Context, p *models.Product) error {
	res, err := s.products().InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ReplaceProduct overwrites all mutable fields of an existing product.
// created_at and rating are preserved.
func (s *Store) ReplaceProduct(ctx context.Context, id primitive.ObjectID, p *models.Product) error {
	update := bson.M{
		"name":        p.Name,
		"brand":       p.Brand,
		"category":    p.Category,
		"price":       p.Price,
		"sale_price":  p.SalePrice,
		"stock":       p.Stock,
		"description": p.Description,
		"images":      p.Images,
		"specs":       p.Specs,
		"options":     p.Options,
		"is_featured": p.IsFeatured,
		"tags":        p.Tags,
		"updated_at":  p.UpdatedAt,
	}

	res, err := s.products().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// FeaturedProducts returns featured products, best rated first.
func (s *Store) FeaturedProducts(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating.average", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.products().Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find featured products: %w", err)
	}

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, nil
}

// NewestProducts returns the most recently created products.
func (s *Store) NewestProducts(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.products().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find newest products: %w", err)
	}

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, nil
}

// Categories returns the sorted set of distinct, non-empty category strings.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	raw, err := s.products().Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	cats := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			cats = append(cats, str)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// CountProducts returns the total number of products in the catalog.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	return s.products().CountDocuments(ctx, bson.M{})
}
