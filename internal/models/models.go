package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating aggregates review scores for a product.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count" json:"count"`
}

// Product represents a catalog product document.
type Product struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name        string                 `bson:"name" json:"name"`
	Brand       string                 `bson:"brand" json:"brand"`
	Category    string                 `bson:"category" json:"category"`
	Price       float64                `bson:"price" json:"price"`
	SalePrice   *float64               `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	Stock       int                    `bson:"stock" json:"stock"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	Images      []string               `bson:"images" json:"images"`
	Specs       map[string]interface{} `bson:"specs,omitempty" json:"specs,omitempty"`
	Options     map[string][]string    `bson:"options,omitempty" json:"options,omitempty"`
	IsFeatured  bool                   `bson:"is_featured" json:"is_featured"`
	Tags        []string               `bson:"tags" json:"tags"`
	Rating      Rating                 `bson:"rating" json:"rating"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at" json:"updated_at"`
}

// OrderItem is a line in an order. Name and price are snapshots taken at
// order time; product_id is a by-value reference with no enforced integrity.
type OrderItem struct {
	ProductID string            `bson:"product_id" json:"product_id"`
	Name      string            `bson:"name" json:"name"`
	Price     float64           `bson:"price" json:"price"`
	Quantity  int               `bson:"quantity" json:"quantity"`
	Image     string            `bson:"image,omitempty" json:"image,omitempty"`
	Options   map[string]string `bson:"options,omitempty" json:"options,omitempty"`
}

// ShippingInfo is the contact and address record embedded in an order.
type ShippingInfo struct {
	FullName     string `bson:"full_name" json:"full_name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	AddressLine1 string `bson:"address_line1" json:"address_line1"`
	AddressLine2 string `bson:"address_line2,omitempty" json:"address_line2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	PostalCode   string `bson:"postal_code" json:"postal_code"`
	Country      string `bson:"country" json:"country"`
}

// PaymentInfo records the chosen payment method and its status.
type PaymentInfo struct {
	Method        string `bson:"method" json:"method"`
	Status        string `bson:"status" json:"status"`
	TransactionID string `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
}

// Order represents a customer order document. Items are immutable after
// creation; only the status field changes afterwards.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber string             `bson:"order_number" json:"order_number"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Shipping    ShippingInfo       `bson:"shipping" json:"shipping"`
	Payment     PaymentInfo        `bson:"payment" json:"payment"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Initial statuses. Order status is free-form after creation and is not
// validated against an enum.
const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"
)
