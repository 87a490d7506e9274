package service

import (
	"errors"
	"testing"

	"storefront-api/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	oid, err := ParseID("5f2d6f3b9b1e8b3a4c8b4567")
	require.NoError(t, err)
	assert.Equal(t, "5f2d6f3b9b1e8b3a4c8b4567", oid.Hex())
}

func TestParseIDMalformed(t *testing.T) {
	for _, id := range []string{"", "not-a-hex", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID(id)
		assert.True(t, errors.Is(err, models.ErrInvalidID), "id %q should be a client error", id)
	}
}

func validProductRequest() ProductRequest {
	price := 29.99
	return ProductRequest{
		Name:     "Classic Tee",
		Category: "Apparel",
		Price:    &price,
	}
}

func TestProductRequestValidation(t *testing.T) {
	req := validProductRequest()
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestProductRequestRejectsNegativePrice(t *testing.T) {
	req := validProductRequest()
	price := -1.0
	req.Price = &price

	assert.Error(t, binding.Validator.ValidateStruct(&req))
}

func TestProductRequestAcceptsZeroPrice(t *testing.T) {
	req := validProductRequest()
	price := 0.0
	req.Price = &price

	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestProductRequestRejectsMissingFields(t *testing.T) {
	price := 10.0

	tests := []struct {
		name string
		req  ProductRequest
	}{
		{"missing name", ProductRequest{Category: "Apparel", Price: &price}},
		{"missing category", ProductRequest{Name: "Tee", Price: &price}},
		{"missing price", ProductRequest{Name: "Tee", Category: "Apparel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			assert.Error(t, binding.Validator.ValidateStruct(&req))
		})
	}
}

func TestProductRequestRejectsNegativeStockAndSalePrice(t *testing.T) {
	req := validProductRequest()
	req.Stock = -1
	assert.Error(t, binding.Validator.ValidateStruct(&req))

	req = validProductRequest()
	sale := -0.01
	req.SalePrice = &sale
	assert.Error(t, binding.Validator.ValidateStruct(&req))
}

func TestOrderRequestRejectsZeroQuantity(t *testing.T) {
	price := 10.0
	req := CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: "abc", Name: "Tee", Price: &price, Quantity: 0},
		},
		Shipping: ShippingRequest{
			FullName:     "Jo Doe",
			Email:        "jo@example.com",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			State:        "IL",
			PostalCode:   "62701",
			Country:      "US",
		},
		Payment: PaymentRequest{Method: "cod"},
	}

	assert.Error(t, binding.Validator.ValidateStruct(&req))

	req.Items[0].Quantity = 1
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}
