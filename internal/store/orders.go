package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertOrder inserts a new order and fills in its assigned ID.
func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	res, err := s.orders().InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetOrder retrieves an order by ID.
func (s *Store) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the status of an existing order. Not-found is
// detected from the zero matched count, not from a driver error.
func (s *Store) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string, updatedAt time.Time) error {
	res, err := s.orders().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": updatedAt}})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}
	return nil
}

// ListOrders returns orders newest first, optionally filtered by the
// shipping email.
func (s *Store) ListOrders(ctx context.Context, email string, limit int64) ([]models.Order, error) {
	filter := bson.M{}
	if email != "" {
		filter["shipping.email"] = email
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.orders().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}
