package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/companycore/management-system/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// Denylist answers whether a token ID has been revoked (logout). A nil
// Denylist disables revocation checks.
type Denylist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// Verifier validates bearer tokens and mints new ones. Both the gateway and
// any service acting as its own edge use the same implementation, so a token
// accepted in one place is accepted everywhere.
type Verifier struct {
	secret   []byte
	tokenTTL time.Duration
	denylist Denylist
}

func NewVerifier(secret string, tokenTTL time.Duration, denylist Denylist) *Verifier {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Verifier{secret: []byte(secret), tokenTTL: tokenTTL, denylist: denylist}
}

// Issue mints an HS256 token for the user. The subject is written under the
// canonical "sub" claim; Verify also accepts historical aliases.
func (v *Verifier) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"name":  user.Name,
		"email": user.Email,
		"jti":   newTokenID(),
		"exp":   time.Now().Add(v.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(v.secret)
}

// Verify checks signature and expiry, consults the denylist, and extracts
// the identity claim. Any failure is reported as ErrUnauthenticated; the
// caller learns nothing about which check failed.
func (v *Verifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return Identity{}, domain.ErrUnauthenticated
	}

	if v.denylist != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			revoked, err := v.denylist.IsRevoked(ctx, jti)
			if err == nil && revoked {
				return Identity{}, domain.ErrUnauthenticated
			}
		}
	}

	id := Identity{
		SubjectID: subjectID(claims),
		Role:      stringClaim(claims, "role"),
		Name:      stringClaim(claims, "name"),
	}
	if id.SubjectID == "" {
		return Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// Revoke invalidates the token's jti for the remainder of its lifetime.
// Tokens without a jti cannot be revoked and expire naturally.
func (v *Verifier) Revoke(ctx context.Context, token string) error {
	if v.denylist == nil {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.ErrUnauthenticated
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}

	ttl := v.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return v.denylist.Revoke(ctx, jti, ttl)
}

// subjectID reads the subject claim, tolerating the historical field names
// older tokens were signed with.
func subjectID(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "id", "user_id"} {
		if s := stringClaim(claims, key); s != "" {
			return s
		}
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return hex.EncodeToString(b)
}
