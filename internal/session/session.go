package session

import (
	"context"
	"errors"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid session token")

// Identity is the opaque handle for the user acting on a request. Issuance
// and credential storage belong to the external session provider; this
// application only verifies tokens and reads the subject out of them.
type Identity struct {
	UserID string
	Email  string
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

// Verifier checks session tokens issued by the external provider.
type Verifier struct {
	key []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{key: []byte(secret)}
}

// Verify parses and validates a token, returning the identity it carries.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: c.Subject, Email: c.Email}, nil
}

type ctxKey struct{}

// WithIdentity attaches an identity to the context. Downstream code reads
// the acting user from the context it was handed rather than consulting any
// global current-user state.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext reports the identity attached to ctx, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}
