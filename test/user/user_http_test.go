package user

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authservice "github.com/migfernandes01/places-share-API/internal/auth/service"
	"github.com/migfernandes01/places-share-API/internal/common/clock"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/user/domain"
	userhttp "github.com/migfernandes01/places-share-API/internal/user/http"
	"github.com/migfernandes01/places-share-API/internal/user/service"
)

func setupUserHandler(t *testing.T) (http.Handler, *mockUserRepo, *mockAssetStore) {
	repo := &mockUserRepo{}
	assets := &mockAssetStore{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "info")

	tokens := authservice.NewTokenIssuer(testJWTSecret, 48*time.Hour, mockClock)
	svc := service.NewUserService(repo, hasher, idGenerator, tokens, mockClock, log)
	handler := userhttp.NewHandler(svc, assets, 5*time.Second, log)
	return handler, repo, assets
}

func multipartSignupBody(t *testing.T, name, email, password string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	_ = writer.WriteField("name", name)
	_ = writer.WriteField("email", email)
	_ = writer.WriteField("password", password)

	part, err := writer.CreateFormFile("image", "avatar.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("\x89PNG\r\n\x1a\navatar bytes")); err != nil {
		t.Fatalf("failed to write image bytes: %v", err)
	}
	_ = writer.Close()

	return &body, writer.FormDataContentType()
}

func TestUserHandler_Signup_Success(t *testing.T) {
	handler, repo, assets := setupUserHandler(t)

	var created domain.User
	repo.createFunc = func(ctx context.Context, user domain.User) error {
		created = user
		return nil
	}

	body, contentType := multipartSignupBody(t, "Max", "Max@Test.com", "secret123")
	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
		Token  string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "max@test.com" {
		t.Errorf("expected normalized email, got %s", resp.Email)
	}
	if resp.Token == "" {
		t.Error("expected token to be set")
	}
	if created.Image == "" {
		t.Error("expected staged image ref on the stored user")
	}
	if len(assets.discarded) != 0 {
		t.Errorf("avatar must survive a successful signup, got %v", assets.discarded)
	}
}

func TestUserHandler_Signup_InvalidEmailDiscardsAvatar(t *testing.T) {
	handler, repo, assets := setupUserHandler(t)

	repo.createFunc = func(ctx context.Context, user domain.User) error {
		t.Error("create must not run for an invalid payload")
		return nil
	}

	body, contentType := multipartSignupBody(t, "Max", "not-an-email", "secret123")
	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(assets.discarded) != 1 {
		t.Errorf("expected avatar discarded, got %v", assets.discarded)
	}
}

func TestUserHandler_Signup_ShortPasswordRefused(t *testing.T) {
	handler, _, assets := setupUserHandler(t)

	body, contentType := multipartSignupBody(t, "Max", "max@test.com", "12345")
	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(assets.discarded) != 1 {
		t.Errorf("expected avatar discarded, got %v", assets.discarded)
	}
}

func TestUserHandler_Signup_MissingImage(t *testing.T) {
	handler, _, _ := setupUserHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("name", "Max")
	_ = writer.WriteField("email", "max@test.com")
	_ = writer.WriteField("password", "secret123")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	handler, repo, _ := setupUserHandler(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (domain.User, error) {
		if email != "max@test.com" {
			t.Errorf("expected normalized email, got %s", email)
		}
		return domain.User{ID: "user-123", Email: email, PasswordHash: "hashed_secret123"}, nil
	}

	payload := `{"email":"Max@Test.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_Login_InvalidJSON(t *testing.T) {
	handler, _, _ := setupUserHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandler_List(t *testing.T) {
	handler, repo, _ := setupUserHandler(t)

	repo.listAllFunc = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{
			{ID: "user-1", Name: "Max", Email: "max@test.com", PasswordHash: "secret-hash", PlaceIDs: []string{"place-1"}},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Error("password hash must never appear in the response")
	}

	var resp struct {
		Users []struct {
			ID     string   `json:"id"`
			Places []string `json:"places"`
		} `json:"users"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Users) != 1 || len(resp.Users[0].Places) != 1 {
		t.Errorf("unexpected response: %+v", resp.Users)
	}
}

func TestUserHandler_List_MethodNotAllowed(t *testing.T) {
	handler, _, _ := setupUserHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
