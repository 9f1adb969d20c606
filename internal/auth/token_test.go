package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/companycore/management-system/internal/core/domain"
)

type stubDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]bool)}
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[tokenID], nil
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = true
	return nil
}

func testUser() *domain.User {
	return &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin}
}

func TestVerifier_IssueVerifyRoundTrip(t *testing.T) {
	v := NewVerifier("secret", time.Hour, nil)

	token, err := v.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.SubjectID != "u1" || id.Role != domain.RoleAdmin || id.Name != "Alice" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestVerifier_Deterministic(t *testing.T) {
	v := NewVerifier("secret", time.Hour, nil)
	token, err := v.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	first, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	for i := 0; i < 5; i++ {
		id, err := v.Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("verify #%d: %v", i, err)
		}
		if id != first {
			t.Fatalf("identity changed across calls: %+v vs %+v", id, first)
		}
	}
}

func TestVerifier_SubjectAliasFallback(t *testing.T) {
	v := NewVerifier("secret", time.Hour, nil)

	for _, key := range []string{"sub", "id", "user_id"} {
		claims := jwt.MapClaims{
			key:    "u42",
			"role": domain.RoleClient,
			"name": "Bob",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign with %q: %v", key, err)
		}

		id, err := v.Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("verify token with %q subject: %v", key, err)
		}
		if id.SubjectID != "u42" {
			t.Fatalf("subject for %q: got %q", key, id.SubjectID)
		}
	}
}

func TestVerifier_Failures(t *testing.T) {
	v := NewVerifier("secret", time.Hour, nil)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "admin", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	expiredToken, _ := expired.SignedString([]byte("secret"))

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	forged, _ := wrongKey.SignedString([]byte("other-secret"))

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubjectToken, _ := noSubject.SignedString([]byte("secret"))

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"bad signature", forged},
		{"missing subject", noSubjectToken},
	}
	for _, tc := range cases {
		if _, err := v.Verify(context.Background(), tc.token); err != domain.ErrUnauthenticated {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", tc.name, err)
		}
	}
}

func TestVerifier_RevokedToken(t *testing.T) {
	dl := newStubDenylist()
	v := NewVerifier("secret", time.Hour, dl)

	token, err := v.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := v.Verify(context.Background(), token); err != nil {
		t.Fatalf("verify before revoke: %v", err)
	}

	if err := v.Revoke(context.Background(), token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := v.Verify(context.Background(), token); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated after revoke, got %v", err)
	}
}
