package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session window used when none is configured.
const DefaultTokenTTL = time.Hour

// Claims are the session token claims: the bound username plus iat/exp.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenManager mints and verifies HS256 session tokens. It holds no mutable
// state and is safe for concurrent use. Every token signed with a previous
// secret is rejected once the manager is rebuilt with a new one.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager copies secret so later changes by the caller have no effect.
func NewTokenManager(secret []byte, ttl time.Duration) (*TokenManager, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenManager{secret: key, ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of minted tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Mint returns a signed token for username valid for the configured TTL.
func (m *TokenManager) Mint(username string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the bound username. Malformed, forged and expired tokens all
// yield ErrInvalidToken; the cause is wrapped for logging only.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
