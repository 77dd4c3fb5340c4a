package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

const DefaultTTL = 24 * time.Hour

// Auth firma y verifica tokens HS256 con claims {sub, email, type}.
// Implementa auth.AuthVerifier y además emite tokens (login/registro).
type Auth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret []byte, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Auth{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue emite un token firmado para el usuario.
func (a *Auth) Issue(userID, email string, role auth.Role) (string, error) {
	if a == nil || len(a.secret) == 0 {
		return "", errors.New("jwtauth: secret not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("jwtauth: user id required")
	}

	now := a.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"type":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(a.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("jwtauth: sign: %w", err)
	}
	return signed, nil
}

// Verify implementa auth.AuthVerifier.
func (a *Auth) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if a == nil || len(a.secret) == 0 {
		return auth.Claims{}, errors.New("jwtauth: secret not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	roleStr, _ := mc["type"].(string)

	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrTokenInvalid)
	}
	role, err := auth.ParseRole(roleStr)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: bad role %q", ErrTokenInvalid, roleStr)
	}

	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(email),
		Role:   role,
	}, nil
}
