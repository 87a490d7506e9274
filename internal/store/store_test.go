package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Integration tests below require a running MongoDB instance. In real
// scenarios, use testcontainers or a dedicated test database.

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), "mongodb://localhost:27017", "storefront_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}

func TestProductRoundTrip(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := &models.Product{
		Name:      "Test Tee",
		Brand:     "Testbrand",
		Category:  "Apparel",
		Price:     19.99,
		Stock:     5,
		Images:    []string{},
		Tags:      []string{"test"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := store.InsertProduct(ctx, p)
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Price, got.Price)
}

func TestPriceRangeFilter(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	min, max := 10.0, 50.0
	items, _, err := store.ListProducts(ctx, ProductQuery{MinPrice: &min, MaxPrice: &max, Page: 1, Limit: 60})
	require.NoError(t, err)

	for _, p := range items {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}

func TestPaginationCoversAllMatches(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	q := ProductQuery{Category: "Apparel", Page: 1, Limit: 2}.Normalized()
	_, total, err := store.ListProducts(ctx, q)
	require.NoError(t, err)

	seen := make(map[primitive.ObjectID]bool)
	for page := int64(1); (page-1)*q.Limit < total; page++ {
		q.Page = page
		items, _, err := store.ListProducts(ctx, q)
		require.NoError(t, err)
		for _, p := range items {
			assert.False(t, seen[p.ID], "no duplicates across pages")
			seen[p.ID] = true
		}
	}
	assert.Equal(t, total, int64(len(seen)))
}

func TestSortByPrice(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	asc, _, err := store.ListProducts(ctx, ProductQuery{Sort: "price_asc", Page: 1, Limit: 60})
	require.NoError(t, err)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc, _, err := store.ListProducts(ctx, ProductQuery{Sort: "price_desc", Page: 1, Limit: 60})
	require.NoError(t, err)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}
}

func TestReplaceMissingProductIsNotFound(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceProduct(ctx, primitive.NewObjectID(), &models.Product{Name: "Ghost"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUpdateMissingOrderStatusIsNotFound(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateOrderStatus(ctx, primitive.NewObjectID(), "shipped", time.Now().UTC())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Skip("Integration test - requires mongodb")

	store := newTestStore(t)
	ctx := context.Background()

	inserted, _, err := store.SeedProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(sampleProducts)), inserted)

	again, existing, err := store.SeedProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
	assert.Equal(t, inserted, existing)
}
