package service

import (
	"context"
	"errors"
	"testing"

	"taskmanager/internal/common"
	"taskmanager/internal/common/security"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newCachedUserService(t *testing.T) (*UserService, *fakeUserRepo, *miniredis.Miniredis) {
	t.Helper()
	initSecurityForTest(t)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	userRepo := newFakeUserRepo()
	return NewUserService(userRepo, client), userRepo, mr
}

func TestCreateStoresVerifiableHash(t *testing.T) {
	initSecurityForTest(t)
	userRepo := newFakeUserRepo()
	userService := NewUserService(userRepo, nil)

	user, err := userService.Create(context.Background(), RegisterRequest{
		Name: "Ann", Email: "Ann@X.com ", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ann@x.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}

	stored, err := userRepo.FindByEmail(context.Background(), "ann@x.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.HashedPassword == "" || stored.HashedPassword == "secret123" {
		t.Fatalf("expected opaque stored digest, got %q", stored.HashedPassword)
	}
	if !security.CheckPasswordHash("secret123", stored.HashedPassword) {
		t.Fatal("stored digest does not verify against the original password")
	}
}

func TestFindByIDReadsThroughCache(t *testing.T) {
	userService, userRepo, _ := newCachedUserService(t)
	ctx := context.Background()

	created, err := userService.Create(ctx, RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := userService.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	second, err := userService.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if first.Email != second.Email || first.ID != second.ID {
		t.Fatalf("cache returned a different user: %+v vs %+v", first, second)
	}
	if userRepo.findByIDCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", userRepo.findByIDCalls)
	}
}

func TestFindByIDFallsThroughOnCacheFailure(t *testing.T) {
	userService, userRepo, mr := newCachedUserService(t)
	ctx := context.Background()

	created, err := userService.Create(ctx, RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.Close() // cache outage must not break reads

	user, err := userService.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("lookup failed during cache outage: %v", err)
	}
	if user.Email != "ann@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if userRepo.findByIDCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", userRepo.findByIDCalls)
	}
}

func TestFindByIDUnknownUser(t *testing.T) {
	userService, _, _ := newCachedUserService(t)

	if _, err := userService.FindByID(context.Background(), "no-such-id"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
