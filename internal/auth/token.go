package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"service-courier-panel/internal/apperr"
	"service-courier-panel/internal/domain"
)

// Claims are the session token claims. Subject carries the user ID.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with the given signing secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given user and role.
func (m *TokenManager) Issue(userID string, role domain.Role) (string, error) {
	now := m.now()
	claims := Claims{
		Role: string(role),
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and expiry and returns its claims.
// Any verification failure maps to apperr.ErrUnauthorized.
func (m *TokenManager) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperr.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, apperr.ErrUnauthorized
	}
	return claims, nil
}
