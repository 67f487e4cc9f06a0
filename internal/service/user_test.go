package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/proledger/proledger/internal/model"
	"github.com/proledger/proledger/internal/repository"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users map[primitive.ObjectID]*model.User

	createErr error
	getErr    error
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
	users := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
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

func (f *fakeUserStore) mustCreate(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Ann", Email: email, Age: 30, CreatedAt: time.Now().UTC()}
	if err := f.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	before := time.Now().UTC()
	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:  "Ann",
		Email: "ann@x.com",
		Age:   30,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if user.ID.IsZero() {
		t.Error("expected generated id")
	}
	if user.CreatedAt.Before(before) {
		t.Errorf("CreatedAt %s is earlier than call time %s", user.CreatedAt, before)
	}
	if len(store.users) != 1 {
		t.Errorf("expected 1 stored user, got %d", len(store.users))
	}
}

func TestUserService_CreateUser_ValidationFailure(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:  "Kid",
		Email: "kid@x.com",
		Age:   12,
	})

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(store.users) != 0 {
		t.Error("invalid user must not be persisted")
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.mustCreate(t, "ann@x.com")
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:  "Other Ann",
		Email: "ann@x.com",
		Age:   41,
	})

	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(store.users) != 1 {
		t.Errorf("duplicate must not be persisted, have %d users", len(store.users))
	}
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	seeded := store.mustCreate(t, "ann@x.com")
	svc := NewUserService(store, nil)

	user, err := svc.GetUser(context.Background(), seeded.ID.Hex())
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Email != "ann@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.GetUser(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetUser_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.GetUser(context.Background(), "not-a-hex-id")
	if !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.mustCreate(t, "a@x.com")
	store.mustCreate(t, "b@x.com")
	svc := NewUserService(store, nil)

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
