package store

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

func floatPtr(v float64) *float64 { return &v }

// sampleProducts is the single source of seed data, shared by the startup
// path and the admin seed endpoint.
var sampleProducts = []models.Product{
	{
		Name:        "Classic Tee",
		Brand:       "Secret",
		Category:    "Apparel",
		Price:       29.99,
		SalePrice:   floatPtr(24.99),
		Stock:       42,
		Description: "Soft cotton tee",
		Images:      []string{"https://images.unsplash.com/photo-1512436991641-6745cdb1723f?q=80&w=800&auto=format&fit=crop"},
		Specs:       map[string]interface{}{"material": "100% Cotton"},
		Options:     map[string][]string{"size": {"S", "M", "L", "XL"}, "color": {"Black", "White"}},
		IsFeatured:  true,
		Tags:        []string{"bestseller", "new"},
		Rating:      models.Rating{Average: 4.6, Count: 120},
	},
	{
		Name:        "Everyday Jeans",
		Brand:       "Secret",
		Category:    "Apparel",
		Price:       59.0,
		Stock:       18,
		Description: "Slim fit denim",
		Images:      []string{"https://images.unsplash.com/photo-1519741497674-611481863552?q=80&w=800&auto=format&fit=crop"},
		Specs:       map[string]interface{}{"material": "Denim"},
		Options:     map[string][]string{"size": {"28", "30", "32", "34"}, "color": {"Blue", "Dark Blue"}},
		Tags:        []string{"denim"},
		Rating:      models.Rating{Average: 4.3, Count: 80},
	},
	{
		Name:        "Minimal Sneakers",
		Brand:       "Secret",
		Category:    "Footwear",
		Price:       79.0,
		SalePrice:   floatPtr(69.0),
		Stock:       25,
		Description: "Clean silhouette",
		Images:      []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=800&auto=format&fit=crop"},
		Specs:       map[string]interface{}{"material": "Vegan leather"},
		Options:     map[string][]string{"size": {"7", "8", "9", "10", "11"}, "color": {"White", "Black"}},
		IsFeatured:  true,
		Tags:        []string{"sneakers", "minimal"},
		Rating:      models.Rating{Average: 4.8, Count: 200},
	},
	{
		Name:        "No. 7 Eau de Parfum",
		Brand:       "Secret Scents",
		Category:    "Fragrance",
		Price:       110.0,
		Stock:       12,
		Description: "Amber, vanilla and cedar. Long-lasting.",
		Images:      []string{"https://images.unsplash.com/photo-1616606347407-23ca041ac856?q=80&w=800&auto=format&fit=crop"},
		Specs:       map[string]interface{}{"volume": "50ml"},
		Options:     map[string][]string{"volume": {"30ml", "50ml", "100ml"}},
		IsFeatured:  true,
		Tags:        []string{"perfume", "fragrance"},
		Rating:      models.Rating{Average: 4.9, Count: 310},
	},
}

// SeedProducts inserts the sample catalog if the products collection is
// empty. It reports the number of inserted products and the number already
// present, so a second call is a no-op that reports the existing count.
func (s *Store) SeedProducts(ctx context.Context) (inserted int64, existing int64, err error) {
	existing, err = s.products().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if existing > 0 {
		return 0, existing, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
	}

	if _, err := s.products().InsertMany(ctx, docs); err != nil {
		return 0, 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return int64(len(docs)), 0, nil
}
