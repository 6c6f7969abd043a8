package user

import (
	"context"
	"errors"
	"testing"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/user/domain"
	userrepo "github.com/migfernandes01/places-share-API/internal/user/repository"
	"github.com/migfernandes01/places-share-API/internal/user/service"
)

func TestUserService_Login_Success(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		if email != "max@test.com" {
			t.Errorf("expected email max@test.com, got %s", email)
		}
		return domain.User{
			ID:           "user-123",
			Email:        email,
			PasswordHash: "hashed_secret123",
		}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		if hash != "hashed_secret123" || password != "secret123" {
			return errors.New("mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "max@test.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.UserID != "user-123" {
		t.Errorf("expected user id user-123, got %s", result.UserID)
	}
	if result.Token == "" {
		t.Error("expected token to be set")
	}
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return domain.User{}, userrepo.ErrUserNotFound
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@test.com",
		Password: "secret123",
	})
	if !errors.Is(err, service.ErrUnknownEmail) {
		t.Fatalf("expected ErrUnknownEmail, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.HTTPStatus() != 403 {
		t.Errorf("expected status 403, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "Invalid credentials." {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, repo, hasher, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return domain.User{ID: "user-123", Email: email, PasswordHash: "hashed_other"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("mismatch")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "max@test.com",
		Password: "wrong",
	})
	if !errors.Is(err, service.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatalf("expected domain error, got %v", err)
	}
	if domainErr.HTTPStatus() != 401 {
		t.Errorf("expected status 401, got %d", domainErr.HTTPStatus())
	}
	if domainErr.Message() != "Invalid credentials." {
		t.Errorf("unexpected message: %s", domainErr.Message())
	}
}

func TestUserService_Login_LookupFailure(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		return domain.User{}, errors.New("connection refused")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "max@test.com",
		Password: "secret123",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, service.ErrUnknownEmail) {
		t.Fatalf("store failure must not read as unknown email, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.listAllFunc = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: "user-1", Name: "Max", Email: "max@test.com", PlaceIDs: []string{"place-1"}},
			{ID: "user-2", Name: "Julie", Email: "julie@test.com", PlaceIDs: []string{}},
		}, nil
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_ListUsers_StoreFailure(t *testing.T) {
	svc, repo, _, _, _ := setupUserService(t)

	repo.listAllFunc = func(ctx context.Context) ([]domain.User, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.ListUsers(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.HTTPStatus() != 500 {
		t.Errorf("expected 500 domain error, got %v", err)
	}
}
