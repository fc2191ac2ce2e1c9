package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskfeed/taskfeed-be/internal/models"
)

// Claims carried inside issued tokens. The subject is the numeric user ID;
// the username is a snapshot taken at issuance and is not re-checked against
// the database on verification.
type Claims struct {
	UserID   int64  `json:"sub"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed bearer tokens. The signing secret
// is configured as a standard-base64 string and decoded once at construction;
// raw-string secrets are not accepted.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager decodes the base64 signing secret and returns a manager
// issuing tokens with the given lifetime. Construction fails only when the
// secret is not valid base64.
func NewTokenManager(secretBase64 string, ttl time.Duration) (*TokenManager, error) {
	secret, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}
	return &TokenManager{secret: secret, ttl: ttl}, nil
}

// Generate issues a signed HS256 token for the user. Claims are immutable
// once issued.
func (t *TokenManager) Generate(user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string and returns the identity it
// carries. Malformed, tampered and expired tokens all come back as
// ErrInvalidToken; callers are not told which.
func (t *TokenManager) Verify(tokenStr string) (ContextUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ContextUser{}, ErrInvalidToken
	}
	return ContextUser{ID: claims.UserID, Username: claims.Username}, nil
}
