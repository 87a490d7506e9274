package service

import (
	"time"

	"storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductResponse is the external representation of a product document.
// Identifiers are hex strings, timestamps are RFC3339, and optional
// collections are always present.
type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Brand       string                 `json:"brand"`
	Category    string                 `json:"category"`
	Price       float64                `json:"price"`
	SalePrice   *float64               `json:"sale_price,omitempty"`
	Stock       int                    `json:"stock"`
	Description string                 `json:"description,omitempty"`
	Images      []string               `json:"images"`
	Specs       map[string]interface{} `json:"specs"`
	Options     map[string][]string    `json:"options"`
	IsFeatured  bool                   `json:"is_featured"`
	Tags        []string               `json:"tags"`
	Rating      models.Rating          `json:"rating"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

// OrderResponse is the external representation of an order document.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"order_number"`
	Items       []models.OrderItem  `json:"items"`
	Shipping    models.ShippingInfo `json:"shipping"`
	Payment     models.PaymentInfo  `json:"payment"`
	Notes       string              `json:"notes,omitempty"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

// ShapeProduct maps a stored product to its external representation.
func ShapeProduct(p *models.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Description: p.Description,
		Images:      emptyIfNil(p.Images),
		Specs:       normalizeMap(p.Specs),
		Options:     shapeOptions(p.Options),
		IsFeatured:  p.IsFeatured,
		Tags:        emptyIfNil(p.Tags),
		Rating:      p.Rating,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

// ShapeOrder maps a stored order to its external representation.
func ShapeOrder(o *models.Order) *OrderResponse {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	return &OrderResponse{
		ID:          o.ID.Hex(),
		OrderNumber: o.OrderNumber,
		Items:       items,
		Shipping:    o.Shipping,
		Payment:     o.Payment,
		Notes:       o.Notes,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func shapeOptions(opts map[string][]string) map[string][]string {
	if opts == nil {
		return map[string][]string{}
	}
	return opts
}

// normalizeMap applies normalizeValue to every entry of an open key-value
// document, so raw driver values never leak into responses.
func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

// normalizeValue rewrites a decoded bson value into a plain JSON-friendly
// one: ObjectIDs become hex strings, timestamps become RFC3339 strings, and
// nested documents and arrays are rewritten recursively. Applying it twice
// yields the same result as applying it once.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case bson.M:
		return normalizeMap(val)
	case map[string]interface{}:
		return normalizeMap(val)
	case bson.A:
		return normalizeSlice(val)
	case []interface{}:
		return normalizeSlice(val)
	default:
		return v
	}
}

func normalizeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = normalizeValue(v)
	}
	return out
}
