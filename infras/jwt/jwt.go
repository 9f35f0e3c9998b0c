package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"turfbook/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingHeader = errors.New("authorization header is required")
	ErrInvalidScheme = errors.New("authorization header must start with 'Bearer '")
)

type TokenType string

const (
	AccessToken TokenType = "access"

	bearerPrefix = "Bearer "
	clockSkew    = 30 * time.Second
)

// Claims is what the identity provider signs into an access token.
type Claims struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWT verifies access tokens. Issuing them belongs to the identity provider.
type JWT interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type verifier struct {
	secret []byte
	parser *jwt.Parser
}

func New(cfg *config.Config) JWT {
	return &verifier{
		secret: []byte(cfg.JWT.AccessSecret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// ValidateToken accepts HMAC signed access tokens carrying a user id.
func (v *verifier) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	case claims.Type != AccessToken || claims.UserID == "":
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader reads the token of a "Bearer <token>" header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	token, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found || token == "" {
		return "", ErrInvalidScheme
	}

	return token, nil
}
