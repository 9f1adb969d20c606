package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn     func(ctx context.Context, userID string) (*domain.User, error)
	logoutFn func(ctx context.Context, rawToken string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) Logout(ctx context.Context, rawToken string) error {
	return s.logoutFn(ctx, rawToken)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &domain.User{ID: "u-1", Name: "Alice", Email: email, Role: domain.RoleClient}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("missing token: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUnauthenticated
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"wrong1"}`, nil)
	if err := h.Login(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Login_RejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"x"}`, nil)
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	actor := auth.Identity{SubjectID: "u-1", Role: domain.RoleClient, Name: "Alice"}
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u-1" {
				t.Fatalf("expected own id, got %q", userID)
			}
			return &domain.User{ID: "u-1", Name: "Alice"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "", &actor)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, rawToken string) error {
			revoked = rawToken
			return nil
		},
	}
	h := NewAuthHandler(stub)

	actor := auth.Identity{SubjectID: "u-1", Role: domain.RoleClient}
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "", &actor)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer the-token")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || revoked != "the-token" {
		t.Fatalf("logout did not revoke: code=%d token=%q", rec.Code, revoked)
	}
}

func TestAuthHandler_Logout_NoToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	actor := auth.Identity{SubjectID: "u-1", Role: domain.RoleClient}
	c, _ := newTestContext(t, http.MethodPost, "/api/auth/logout", "", &actor)

	if err := h.Logout(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
