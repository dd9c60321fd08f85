package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"order-functions-api/internal/repositories"
)

// Config holds the credentials used to recognise callers
type Config struct {
	// ServiceRoleKey is the static key that grants unrestricted access
	ServiceRoleKey string
	// JWTSecret verifies HS256 user tokens
	JWTSecret string
	// TokenDuration is the lifetime of tokens issued by IssueToken
	TokenDuration time.Duration
	Issuer        string
}

// Claims are the JWT claims understood by the resolver
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Resolver turns an Authorization header into the data store access scope
// the request runs with
type Resolver struct {
	config Config
}

// NewResolver creates a new resolver
func NewResolver(config Config) *Resolver {
	if config.TokenDuration == 0 {
		config.TokenDuration = time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "order-functions-api"
	}
	return &Resolver{config: config}
}

// Resolve returns the scope for an Authorization header value. No header
// means anonymous access.
func (r *Resolver) Resolve(authorization string) (repositories.AccessScope, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return repositories.AnonScope(), nil
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return repositories.AccessScope{}, fmt.Errorf("invalid authorization header format, expected: Bearer <token>")
	}
	token := strings.TrimSpace(parts[1])

	if r.config.ServiceRoleKey != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(r.config.ServiceRoleKey)) == 1 {
		return repositories.ServiceScope(), nil
	}

	claims, err := r.ValidateToken(token)
	if err != nil {
		return repositories.AccessScope{}, err
	}

	if claims["role"] == string(repositories.RoleService) {
		return repositories.ServiceScope(), nil
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return repositories.AccessScope{}, fmt.Errorf("token has no subject")
	}

	return repositories.UserScope(sub, claims), nil
}

// ValidateToken verifies an HS256 token and returns its full claim set
func (r *Resolver) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	if r.config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(r.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// IssueToken signs a user token for local development and tests
func (r *Resolver) IssueToken(userID, email string) (string, error) {
	if r.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	now := time.Now()
	claims := &Claims{
		Role:  string(repositories.RoleAuthenticated),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(r.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    r.config.Issuer,
			Subject:   userID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(r.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
