package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterSearch(t *testing.T) {
	q := ProductQuery{Search: "shoe"}

	filter := q.Filter()

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok, "search should produce an $or clause")
	require.Len(t, or, 4)

	fields := make([]string, 0, len(or))
	for _, clause := range or {
		m := clause.(bson.M)
		for field, rx := range m {
			fields = append(fields, field)
			assert.Equal(t, bson.M{"$regex": "shoe", "$options": "i"}, rx)
		}
	}
	assert.ElementsMatch(t, []string{"name", "brand", "category", "tags"}, fields)
}

func TestFilterCategoryAndPriceRange(t *testing.T) {
	min := 10.0
	max := 50.0

	q := ProductQuery{Category: "Footwear", MinPrice: &min, MaxPrice: &max}
	filter := q.Filter()

	assert.Equal(t, "Footwear", filter["category"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, filter["price"])
}

func TestFilterPriceBoundsIndependent(t *testing.T) {
	min := 5.0
	filter := ProductQuery{MinPrice: &min}.Filter()
	assert.Equal(t, bson.M{"$gte": 5.0}, filter["price"])

	max := 99.0
	filter = ProductQuery{MaxPrice: &max}.Filter()
	assert.Equal(t, bson.M{"$lte": 99.0}, filter["price"])
}

func TestFilterEmptyQuery(t *testing.T) {
	filter := ProductQuery{}.Filter()
	assert.Empty(t, filter)
}

func TestNormalizedClamping(t *testing.T) {
	tests := []struct {
		name      string
		page      int64
		limit     int64
		wantPage  int64
		wantLimit int64
	}{
		{"zero values get defaults", 0, 0, 1, DefaultPageSize},
		{"negative page clamped", -3, 20, 1, 20},
		{"limit above max clamped", 2, 999, 2, MaxPageSize},
		{"limit at max untouched", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ProductQuery{Page: tt.page, Limit: tt.limit}.Normalized()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestFindOptionsPagination(t *testing.T) {
	q := ProductQuery{Page: 3, Limit: 12}

	opts := q.FindOptions()

	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(24), *opts.Skip)
	assert.Equal(t, int64(12), *opts.Limit)
	assert.Nil(t, opts.Sort)
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		key   string
		want  bson.D
		known bool
	}{
		{"price_asc", bson.D{{Key: "price", Value: 1}}, true},
		{"price_desc", bson.D{{Key: "price", Value: -1}}, true},
		{"new", bson.D{{Key: "created_at", Value: -1}}, true},
		{"newest", bson.D{{Key: "created_at", Value: -1}}, true},
		{"rating", bson.D{{Key: "rating.average", Value: -1}}, true},
		{"popular", bson.D{{Key: "rating.count", Value: -1}}, true},
		{"alphabetical", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run("sort_"+tt.key, func(t *testing.T) {
			sort, ok := sortSpec(tt.key)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.want, sort)
		})
	}
}
