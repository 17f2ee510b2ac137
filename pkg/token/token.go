package token

import (
	"errors"
	"time"

	"clinic-appointment-api/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims binds a token to one subject identifier: the email of a doctor or
// patient, or the username of an administrator.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and parses identity tokens. Tokens are stateless; expiry is
// the only built-in deactivation mechanism, and callers re-resolve the subject
// against the account tables on every verification.
type Service struct {
	config config.TokenConfig
}

func NewService(cfg config.TokenConfig) *Service {
	return &Service{config: cfg}
}

// Generate issues a signed token for the given subject identifier.
func (s *Service) Generate(identifier string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identifier,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ExtractIdentifier verifies the signature and expiry and returns the subject
// identifier. Any failure (malformed token, bad signature, expired, empty
// subject) yields ErrInvalidToken.
func (s *Service) ExtractIdentifier(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
