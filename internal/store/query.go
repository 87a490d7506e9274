package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination limits for catalog queries.
const (
	DefaultPageSize = 12
	MaxPageSize     = 60
	// DefaultShelfLimit caps the best/new shelf endpoints.
	DefaultShelfLimit = 8
	// DefaultOrderLimit caps the order listing.
	DefaultOrderLimit = 50
)

// ProductQuery describes an optional filter/sort/pagination triple over the
// product collection.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int64
	Limit    int64
}

// Normalized returns a copy with page and limit clamped to valid bounds.
func (q ProductQuery) Normalized() ProductQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	return q
}

// Filter builds the MongoDB filter document. Free-text search is a
// case-insensitive substring match over name, brand, category and tags.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"brand": regex},
			bson.M{"category": regex},
			bson.M{"tags": regex},
		}
	}

	if q.Category != "" {
		filter["category"] = q.Category
	}

	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

// FindOptions builds sort and pagination options. Callers are expected to
// pass a normalized query.
func (q ProductQuery) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	if sort, ok := sortSpec(q.Sort); ok {
		opts.SetSort(sort)
	}
	return opts
}

// sortSpec maps an external sort key to a MongoDB sort document. Unknown
// keys fall back to natural order.
func sortSpec(key string) (bson.D, bool) {
	switch key {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}, true
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}, true
	case "new", "newest":
		return bson.D{{Key: "created_at", Value: -1}}, true
	case "rating":
		return bson.D{{Key: "rating.average", Value: -1}}, true
	case "popular":
		return bson.D{{Key: "rating.count", Value: -1}}, true
	}
	return nil, false
}
