package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"leedz/config"
	"leedz/shared/timezone"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// TokenTypeMagic is the only token type this service mints. A magic token
// authenticates one recipient email for a short window.
const TokenTypeMagic = "magic"

// Claims is the exact claim set the marketplace server verifies: email, type
// and exp, nothing else. Adding claims here breaks the shared contract.
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// JWT mints and validates magic-link tokens.
type JWT interface {
	MagicToken(email string) (string, error)
	ValidateMagic(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

// New creates a new JWT service
func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// MagicToken signs an HS256 token for the given recipient, expiring after the
// configured window (15 minutes unless overridden).
func (s *Service) MagicToken(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: empty email", ErrInvalidClaim)
	}

	expiresAt := timezone.Now().Add(time.Duration(s.config.JWT.MagicExpireMin) * time.Minute)

	claims := Claims{
		Email: email,
		Type:  TokenTypeMagic,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.config.JWT.MagicSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateMagic validates and parses a magic-link token.
func (s *Service) ValidateMagic(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWT.MagicSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != TokenTypeMagic {
		return nil, ErrInvalidClaim
	}

	if claims.Email == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts a bearer token from an Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	const prefix = "Bearer "
	if len(authHeader) < len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return authHeader[len(prefix):], nil
}
