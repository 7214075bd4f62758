// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

// Package sec provides password hashing, token signing and role matching.
//
// # Architecture
//
// Security-sensitive primitives live here so that use cases depend only on
// small interfaces ([Hasher], the token service methods) and never parse
// tokens or digests themselves.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusfm/facility/internal/platform/constants"
	"github.com/campusfm/facility/pkg/uuid"
)

var (
	// ErrInvalidToken is returned for malformed, forged or expired tokens.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrWeakSecret is returned when the signing secret is shorter than [constants.MinSecretLength].
	ErrWeakSecret = fmt.Errorf("sec: signing secret must be at least %d characters", constants.MinSecretLength)
)

// Claims is the payload embedded in access and refresh tokens.
//
// Access tokens carry only userId. Refresh tokens also set session=true.
type Claims struct {
	jwt.RegisteredClaims

	UserID  int64 `json:"userId"`
	Session bool  `json:"session,omitempty"`
}

// TokenPayload is the caller-controlled part of [Claims].
type TokenPayload struct {
	UserID  int64
	Session bool
}

// TokenService signs and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the time source used for iat, exp and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService validates secret and returns a ready [TokenService].
func NewTokenService(secret, issuer string, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < constants.MinSecretLength {
		return nil, ErrWeakSecret
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Sign issues a token for payload that expires after ttl. iat and exp are set automatically.
func (service *TokenService) Sign(payload TokenPayload, ttl time.Duration) (string, error) {
	issuedAt := service.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID:  payload.UserID,
		Session: payload.Session,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims.
// Every failure is reported as [ErrInvalidToken] wrapping the parser error.
func (service *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
