// Package repository provides the document store access layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	usersCollection  = "users"
	ordersCollection = "orders"
)

// Repository provides access to the users and orders collections.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and returns a Repository.
// The connection is verified with a ping before returning.
func New(ctx context.Context, mongoURL, database string) (*Repository, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURL).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, db: client.Database(database)}, nil
}

// Ping checks store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Drop removes the whole database. Intended for integration tests.
func (r *Repository) Drop(ctx context.Context) error {
	return r.db.Drop(ctx)
}

// EnsureCollections creates the users and orders collections with their
// JSON-schema validators. Safe to invoke on every startup.
func (r *Repository) EnsureCollections(ctx context.Context) error {
	if err := r.createCollection(ctx, usersCollection, userSchema()); err != nil {
		return err
	}
	return r.createCollection(ctx, ordersCollection, orderSchema())
}

func (r *Repository) createCollection(ctx context.Context, name string, schema bson.M) error {
	opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": schema})
	if err := r.db.CreateCollection(ctx, name, opts); err != nil && !isNamespaceExists(err) {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// isNamespaceExists reports whether err is Mongo's NamespaceExists (code 48).
func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 48
}

// EnsureIndexes creates the unique users.email index and the non-unique
// orders.userId lookup index. Idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure users.email index: %w", err)
	}

	_, err = r.db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to ensure orders.userId index: %w", err)
	}
	return nil
}

// userSchema is the storage-boundary validator for the users collection.
// Application-level validation in model.User.Validate mirrors these rules
// so callers get field-level violations instead of opaque write errors.
func userSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"title":    "User profile schema validation",
		"required": []string{"name", "email", "age", "createdAt"},
		"properties": bson.M{
			"name": bson.M{"bsonType": "string"},
			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
			},
			"age": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  18,
			},
			"address": bson.M{
				"bsonType": "object",
				"required": []string{"city", "country", "zip"},
				"properties": bson.M{
					"city":    bson.M{"bsonType": "string"},
					"country": bson.M{"bsonType": "string"},
					"zip":     bson.M{"bsonType": []string{"int", "long"}},
				},
			},
			"createdAt": bson.M{"bsonType": "date"},
		},
	}
}

// orderSchema is the storage-boundary validator for the orders collection.
func orderSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"title":    "Order schema validation",
		"required": []string{"userId", "items", "totalAmount", "status", "orderDate"},
		"properties": bson.M{
			"userId": bson.M{"bsonType": "objectId"},
			"items": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"product", "price"},
					"properties": bson.M{
						"product": bson.M{"bsonType": "string"},
						"price":   bson.M{"bsonType": "double"},
					},
				},
			},
			"totalAmount": bson.M{"bsonType": "double"},
			"status":      bson.M{"enum": []string{"pending", "shipped", "delivered"}},
			"orderDate":   bson.M{"bsonType": "date"},
		},
	}
}
