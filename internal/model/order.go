package model

import (
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the order lifecycle states.
// Only pending is ever assigned today; shipped and delivered are declared
// states with no transition operation.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// IsValid checks if the status is one of the declared states.
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusShipped || s == OrderStatusDelivered
}

// LineItem is one purchased product within an order.
type LineItem struct {
	Product string  `bson:"product" json:"product"`
	Price   float64 `bson:"price" json:"price"`
}

// Order represents one purchase event tied to exactly one User.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"user_id"`
	Items       []LineItem         `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"total_amount"`
	Status      OrderStatus        `bson:"status" json:"status"`
	OrderDate   time.Time          `bson:"orderDate" json:"order_date"`
}

// TotalOf sums line item prices in input order.
// Plain IEEE-754 float64 accumulation; no rounding policy is applied.
func TotalOf(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price
	}
	return total
}

// ValidateItems checks the line items of a new order and returns a
// *ValidationError listing every violation, or nil.
// An order must carry at least one item.
func ValidateItems(items []LineItem) error {
	var violations []Violation

	if len(items) == 0 {
		violations = append(violations, Violation{Field: "items", Message: "at least one item is required"})
	}

	for i, item := range items {
		if item.Product == "" {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("items[%d].product", i),
				Message: "product is required",
			})
		}
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price must be a finite number",
			})
		} else if item.Price < 0 {
			violations = append(violations, Violation{
				Field:   fmt.Sprintf("items[%d].price", i),
				Message: "price must not be negative",
			})
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
