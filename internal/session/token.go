package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the signed display name.
const CookieName = "chommie_session"

// Claims ties a display name to a session token.
type Claims struct {
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest"`
	jwt.RegisteredClaims
}

// Config holds token signing parameters.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Service issues and validates session tokens. The server trusts nothing
// about a user beyond the display name carried here.
type Service struct {
	cfg Config
}

// NewService constructs a session service.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Issue signs a token carrying the display name.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		IsGuest:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// Validate parses and verifies a token, returning its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, fmt.Errorf("invalid issuer")
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("empty username")
	}

	return claims, nil
}
