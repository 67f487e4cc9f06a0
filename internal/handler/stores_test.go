package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proledger/proledger/internal/model"
	"github.com/proledger/proledger/internal/repository"
	"github.com/proledger/proledger/internal/service"
)

var errTestStore = errors.New("simulated store failure")

// fakeUserStore is an in-memory service.UserStore for handler tests.
type fakeUserStore struct {
	users map[primitive.ObjectID]*model.User

	createErr error
	listErr   error
	deleteErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	users := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

// fakeOrderStore is an in-memory service.OrderStore for handler tests.
type fakeOrderStore struct {
	orders []*model.Order

	deleteErr error
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *model.Order) error {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderStore) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error) {
	result := make([]*model.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) DeleteOrdersByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []*model.Order
	var removed int64
	for _, o := range f.orders {
		if o.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	f.orders = kept
	return removed, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedUser(t *testing.T, store *fakeUserStore, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Ann", Email: email, Age: 30}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// newTestRouter wires handlers into the same routes the server uses, so
// path parameters resolve the way they do in production.
func newTestRouter(users *fakeUserStore, orders *fakeOrderStore) http.Handler {
	logger := testLogger()
	userSvc := service.NewUserService(users, nil)
	orderSvc := service.NewOrderService(orders, users, nil)
	userHandler := NewUserHandler(userSvc, logger)
	orderHandler := NewOrderHandler(orderSvc, logger)

	r := chi.NewRouter()
	r.Post("/users", userHandler.Create)
	r.Get("/users", userHandler.List)
	r.Delete("/users/{id}", orderHandler.DeleteUser)
	r.Post("/order", orderHandler.Create)
	r.Get("/orders/{userID}", orderHandler.ListForUser)
	return r
}
