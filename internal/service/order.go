package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proledger/proledger/internal/metrics"
	"github.com/proledger/proledger/internal/model"
	"github.com/proledger/proledger/internal/repository"
)

// ErrCascadeIncomplete signals that a cascading delete removed the user's
// orders but failed to remove the user record itself. The two steps are
// not atomic; this partial state must be surfaced, not absorbed.
var ErrCascadeIncomplete = errors.New("orders deleted but user removal failed")

// OrderStore is the slice of the repository the order service depends on.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error)
	DeleteOrdersByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// OrderService handles order business logic: referential validation against
// the user store, derived total computation and the cascading delete saga.
type OrderService struct {
	orders  OrderStore
	users   UserStore
	metrics metrics.Recorder
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders OrderStore, users UserStore, recorder metrics.Recorder) *OrderService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OrderService{orders: orders, users: users, metrics: recorder}
}

// CreateOrderInput defines input for creating an order.
// TotalAmount is never part of the input; it is derived from Items.
type CreateOrderInput struct {
	UserID string
	Items  []model.LineItem
}

// CreateOrder validates the items, checks the referenced user exists and
// inserts the order with its derived total, pending status and order date.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	if err := model.ValidateItems(input.Items); err != nil {
		return nil, err
	}

	// Referential check. Not a store-enforced foreign key: a concurrent
	// user deletion can still race this lookup, which is accepted.
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	order := &model.Order{
		UserID:      userID,
		Items:       input.Items,
		TotalAmount: model.TotalOf(input.Items),
		Status:      model.OrderStatusPending,
		OrderDate:   time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.metrics.IncOrderCreated()
	return order, nil
}

// ListOrdersForUser returns all orders for the given user hex id, newest
// first. Deliberately permissive: an unknown user yields an empty slice.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	orders, err := s.orders.ListOrdersByUser(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CascadeResult reports what a two-step cascading delete accomplished.
type CascadeResult struct {
	OrdersDeleted int64
	UserDeleted   bool
}

// DeleteUserWithOrders removes a user's orders, then the user itself.
// The steps are not wrapped in a transaction: when the second step fails
// the orders are already gone, and the partial result is returned together
// with ErrCascadeIncomplete.
func (s *OrderService) DeleteUserWithOrders(ctx context.Context, userID string) (CascadeResult, error) {
	var result CascadeResult

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return result, ErrInvalidUserID
	}

	result.OrdersDeleted, err = s.orders.DeleteOrdersByUser(ctx, oid)
	if err != nil {
		return result, fmt.Errorf("failed to delete orders: %w", err)
	}

	deleted, err := s.users.DeleteUser(ctx, oid)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrCascadeIncomplete, err)
	}
	result.UserDeleted = deleted

	s.metrics.IncUserCascadeDeleted(result.OrdersDeleted)
	return result, nil
}
