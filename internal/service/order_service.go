package service

import (
	"context"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/store"
	"storefront-api/internal/util"

	"go.uber.org/zap"
)

// OrderService handles order placement and status transitions.
type OrderService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(store *store.Store) *OrderService {
	return &OrderService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// OrderItemRequest is one line of an incoming order.
type OrderItemRequest struct {
	ProductID string            `json:"product_id" binding:"required"`
	Name      string            `json:"name" binding:"required"`
	Price     *float64          `json:"price" binding:"required,gte=0"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
	Image     string            `json:"image"`
	Options   map[string]string `json:"options"`
}

// ShippingRequest carries the contact and address details for an order.
type ShippingRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

// PaymentRequest names the payment method chosen at checkout.
type PaymentRequest struct {
	Method        string `json:"method" binding:"required"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// CreateOrderRequest is the order placement payload. It deliberately has no
// total field: totals are always computed server-side from the item
// snapshots.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Shipping ShippingRequest    `json:"shipping" binding:"required"`
	Payment  PaymentRequest     `json:"payment" binding:"required"`
	Notes    string             `json:"notes"`
}

// OrderCreatedResponse is returned after a successful order placement.
type OrderCreatedResponse struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// OrderStatusResponse is returned after a status update.
type OrderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder computes the total, derives the order number and persists the
// order with its initial status.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderCreatedResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	now := time.Now().UTC()

	payment := models.PaymentInfo{
		Method:        req.Payment.Method,
		Status:        req.Payment.Status,
		TransactionID: req.Payment.TransactionID,
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	order := &models.Order{
		OrderNumber: orderNumber(now),
		Items:       toOrderItems(req.Items),
		Shipping: models.ShippingInfo{
			FullName:     req.Shipping.FullName,
			Email:        req.Shipping.Email,
			Phone:        req.Shipping.Phone,
			AddressLine1: req.Shipping.AddressLine1,
			AddressLine2: req.Shipping.AddressLine2,
			City:         req.Shipping.City,
			State:        req.Shipping.State,
			PostalCode:   req.Shipping.PostalCode,
			Country:      req.Shipping.Country,
		},
		Payment:     payment,
		Notes:       req.Notes,
		TotalAmount: calculateTotal(req.Items),
		Status:      models.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total_amount", order.TotalAmount))

	return &OrderCreatedResponse{
		ID:          order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		CreatedAt:   formatTime(order.CreatedAt),
	}, nil
}

// GetOrder fetches a single order by its external identifier.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	order, err := s.store.GetOrder(ctx, oid)
	if err != nil {
		return nil, err
	}
	return ShapeOrder(order), nil
}

// UpdateStatus sets the status of an existing order. Any status string is
// accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*OrderStatusResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateOrderStatus(ctx, oid, status, time.Now().UTC()); err != nil {
		return nil, err
	}

	util.OrderStatusUpdatesTotal.Inc()
	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", status))

	return &OrderStatusResponse{ID: id, Status: status}, nil
}

// ListOrders returns shaped orders newest first, optionally filtered by the
// shipping email.
func (s *OrderService) ListOrders(ctx context.Context, email string, limit int64) ([]*OrderResponse, error) {
	if limit < 1 {
		limit = store.DefaultOrderLimit
	}
	if limit > store.MaxPageSize {
		limit = store.MaxPageSize
	}

	orders, err := s.store.ListOrders(ctx, email, limit)
	if err != nil {
		return nil, err
	}

	shaped := make([]*OrderResponse, 0, len(orders))
	for i := range orders {
		shaped = append(shaped, ShapeOrder(&orders[i]))
	}
	return shaped, nil
}

// calculateTotal sums the item price snapshots. Client-sent totals are never
// trusted.
func calculateTotal(items []OrderItemRequest) float64 {
	var total float64
	for _, item := range items {
		total += *item.Price * float64(item.Quantity)
	}
	return total
}

// orderNumber derives a human-readable order number from the creation time.
func orderNumber(t time.Time) string {
	return "ORD-" + t.UTC().Format("20060102150405")
}

func toOrderItems(items []OrderItemRequest) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     *item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Options:   item.Options,
		})
	}
	return out
}
