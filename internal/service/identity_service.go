package service

import (
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIdentityService implements ports.IdentityService using HS256 JWT.
// Tokens carry the participant id in "sub" and the marketplace role in "role".
type JWTIdentityService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTIdentityService creates a new JWT identity service.
func NewJWTIdentityService(secret string, expiry time.Duration, issuer string) *JWTIdentityService {
	return &JWTIdentityService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for the given actor. Production tokens come
// from the identity provider; this is used by tooling and tests.
func (s *JWTIdentityService) Generate(actor domain.Actor) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":  actor.ID,
		"role": string(actor.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the actor it names.
func (s *JWTIdentityService) Validate(tokenString string) (*domain.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("missing subject claim")
	}

	role := domain.Role(fmt.Sprint(claims["role"]))
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	return &domain.Actor{ID: sub, Role: role}, nil
}
