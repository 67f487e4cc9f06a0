// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/proledger/proledger/internal/model"
	"github.com/proledger/proledger/internal/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// NewTestRepository connects to the MongoDB instance named by MONGODB_URL
// using a database unique to this test, ensures collections and indexes,
// and registers cleanup that drops the database again.
func NewTestRepository(t *testing.T) (context.Context, *repository.Repository) {
	t.Helper()

	uri := RequireEnv(t, "MONGODB_URL")
	ctx := context.Background()

	repo, err := repository.New(ctx, uri, uniqueName("proledger_test"))
	if err != nil {
		t.Fatalf("failed to connect to mongodb: %v", err)
	}

	if err := repo.EnsureCollections(ctx); err != nil {
		t.Fatalf("failed to ensure collections: %v", err)
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.Drop(cleanupCtx); err != nil {
			t.Logf("failed to drop test database: %v", err)
		}
		_ = repo.Close(cleanupCtx)
	})

	return ctx, repo
}

// uniqueName appends random hex to a prefix so parallel runs never collide.
func uniqueName(prefix string) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(buf))
}

// UniqueEmail returns an email address unique to this test run.
func UniqueEmail(prefix string) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%s-%s@example.com", prefix, hex.EncodeToString(buf))
}

// NewTestUser returns a valid user ready for insertion.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		Name:      "Test User",
		Email:     email,
		Age:       30,
		CreatedAt: time.Now().UTC(),
	}
}
