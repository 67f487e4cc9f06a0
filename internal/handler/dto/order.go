package dto

import (
	"time"

	"github.com/proledger/proledger/internal/model"
)

// LineItemPayload is one line item in an order request or response.
type LineItemPayload struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
}

// CreateOrderRequest represents the request body for creating an order.
// total_amount is not accepted from callers; it is derived server-side.
type CreateOrderRequest struct {
	UserID string            `json:"user_id"`
	Items  []LineItemPayload `json:"items"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Items       []LineItemPayload `json:"items"`
	TotalAmount float64           `json:"total_amount"`
	Status      string            `json:"status"`
	OrderDate   time.Time         `json:"order_date"`
}

// CascadeDeleteResponse confirms a cascading user deletion.
type CascadeDeleteResponse struct {
	Message       string `json:"message"`
	OrdersDeleted int64  `json:"orders_deleted"`
	UserDeleted   bool   `json:"user_deleted"`
}

// ToLineItems converts request payloads to domain line items.
func ToLineItems(items []LineItemPayload) []model.LineItem {
	result := make([]model.LineItem, len(items))
	for i, item := range items {
		result[i] = model.LineItem{Product: item.Product, Price: item.Price}
	}
	return result
}

// ToOrderResponse converts an Order model to OrderResponse DTO.
func ToOrderResponse(order *model.Order) *OrderResponse {
	items := make([]LineItemPayload, len(order.Items))
	for i, item := range order.Items {
		items[i] = LineItemPayload{Product: item.Product, Price: item.Price}
	}
	return &OrderResponse{
		ID:          order.ID.Hex(),
		UserID:      order.UserID.Hex(),
		Items:       items,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		OrderDate:   order.OrderDate,
	}
}

// ToOrderResponses converts a slice of Order models, preserving order.
func ToOrderResponses(orders []*model.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *ToOrderResponse(order)
	}
	return responses
}
