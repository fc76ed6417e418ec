package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-boarding/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty    = errors.New("token is empty")
	ErrNotConfigured = errors.New("jwt secret not configured")
)

// tokenClaims es el payload que emite el servicio de identidad.
type tokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier validando tokens HS256 con un secreto compartido.
type Verifier struct {
	secret []byte
	leeway time.Duration
}

func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{secret: []byte(secret), leeway: 30 * time.Second}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	userID := strings.TrimSpace(tc.Subject)
	if userID == "" {
		return auth.Claims{}, errors.New("jwt claims missing sub")
	}

	return auth.Claims{
		UserID:   userID,
		Username: strings.TrimSpace(tc.Username),
		Email:    strings.TrimSpace(tc.Email),
		Role:     strings.TrimSpace(tc.Role),
	}, nil
}
