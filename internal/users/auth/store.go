// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import (
	"context"
	"time"

	"github.com/campusfm/facility/internal/platform/sec"
)

// # User Directory

// UserRepository is the User Directory. Lookups return (nil, nil) when no
// account matches; errors are reserved for storage failures.
type UserRepository interface {

	/*
		Create persists a new account.

		Returns:
		  - *User: the stored account with its generated ID
		  - error: apperr.Conflict when the email is already taken
	*/
	Create(ctx context.Context, user NewUser) (*User, error)

	/*
		FindByRole returns the first account whose role equals role ignoring case.
		Blank input returns (nil, nil).
	*/
	FindByRole(ctx context.Context, role string) (*User, error)

	/*
		FindByEmail returns the account with exactly this email.
		Blank input returns (nil, nil).
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		FindByUsername returns the first account with exactly this username.
		Blank input returns (nil, nil).
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id int64) (*User, error)
}

// # Session Store

// SessionRepository is the Session Store.
type SessionRepository interface {

	// Create persists a session for refreshToken.
	Create(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) (*Session, error)

	// FindByRefreshToken returns the session for token, or (nil, nil).
	FindByRefreshToken(ctx context.Context, token string) (*Session, error)

	// RevokeByToken deletes any session for token. Deleting nothing is not an error.
	RevokeByToken(ctx context.Context, token string) error
}

// # Token Issuance

// TokenIssuer signs and verifies bearer tokens. Implemented by [sec.TokenService].
type TokenIssuer interface {
	Sign(payload sec.TokenPayload, ttl time.Duration) (string, error)
	Verify(token string) (*sec.Claims, error)
}
