package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/domain"
)

type seenRequest struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

func newBackend(t *testing.T) (*httptest.Server, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = seenRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   string(body),
			Header: r.Header.Clone(),
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newGateway(t *testing.T, backend *httptest.Server, verifier *auth.Verifier) http.Handler {
	t.Helper()
	u, err := url.Parse(backend.URL)
	if err != nil {
		t.Fatalf("parse backend url: %v", err)
	}
	up := Upstreams{
		Auth: u, Users: u, Projects: u, Catalog: u, Requests: u, Messages: u, Realtime: u,
	}
	return New(verifier, up, zerolog.Nop())
}

func TestGateway_StripsSpoofedIdentityHeaders(t *testing.T) {
	backend, seen := newBackend(t)
	verifier := auth.NewVerifier("secret", time.Hour, nil)
	gw := newGateway(t, backend, verifier)

	token, err := verifier.Issue(&domain.User{ID: "u-real", Name: "Real User", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(auth.HeaderUserID, "u-spoofed")
	req.Header.Set(auth.HeaderUserRole, domain.RoleAdmin)
	req.Header.Set(auth.HeaderUserName, "Mallory")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := seen.Header.Get(auth.HeaderUserID); got != "u-real" {
		t.Fatalf("spoofed user id reached upstream: %q", got)
	}
	if got := seen.Header.Get(auth.HeaderUserRole); got != domain.RoleClient {
		t.Fatalf("spoofed role reached upstream: %q", got)
	}
	if got := seen.Header.Get(auth.HeaderUserName); got != "Real User" {
		t.Fatalf("spoofed name reached upstream: %q", got)
	}
}

func TestGateway_RejectsMissingToken(t *testing.T) {
	backend, seen := newBackend(t)
	gw := newGateway(t, backend, auth.NewVerifier("secret", time.Hour, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if seen.Path != "" {
		t.Fatalf("unauthenticated request reached upstream: %s", seen.Path)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["message"] == "" {
		t.Fatalf("missing error envelope: %s", rec.Body.String())
	}
}

func TestGateway_RejectsWrongSecret(t *testing.T) {
	backend, _ := newBackend(t)
	gw := newGateway(t, backend, auth.NewVerifier("right-secret", time.Hour, nil))

	other := auth.NewVerifier("wrong-secret", time.Hour, nil)
	token, _ := other.Issue(&domain.User{ID: "u-1", Role: domain.RoleClient})

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGateway_LoginPassesThroughAnonymously(t *testing.T) {
	backend, seen := newBackend(t)
	gw := newGateway(t, backend, auth.NewVerifier("secret", time.Hour, nil))

	body := `{"email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderUserID, "u-spoofed")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.Method != http.MethodPost || seen.Path != "/api/auth/login" {
		t.Fatalf("request not forwarded verbatim: %s %s", seen.Method, seen.Path)
	}
	if seen.Body != body {
		t.Fatalf("body not forwarded: %q", seen.Body)
	}
	// Public routes still have spoofed identity headers removed.
	if got := seen.Header.Get(auth.HeaderUserID); got != "" {
		t.Fatalf("identity header survived on public route: %q", got)
	}
}

func TestGateway_Health(t *testing.T) {
	backend, _ := newBackend(t)
	gw := newGateway(t, backend, auth.NewVerifier("secret", time.Hour, nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Gateway OK") {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}
