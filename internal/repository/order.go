package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proledger/proledger/internal/model"
)

// CreateOrder inserts a new order and fills in the store-generated id.
func (r *Repository) CreateOrder(ctx context.Context, order *model.Order) error {
	res, err := r.db.Collection(ordersCollection).InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// ListOrdersByUser returns all orders referencing the given user, newest
// first. An unknown user simply yields an empty slice.
func (r *Repository) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cur, err := r.db.Collection(ordersCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*model.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// DeleteOrdersByUser removes every order referencing the given user.
// Returns the number of orders matched at the time of the call.
func (r *Repository) DeleteOrdersByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.db.Collection(ordersCollection).DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}
	return res.DeletedCount, nil
}
