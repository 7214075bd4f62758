// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

/*
Package auth implements the account and session core of the facility API.

It owns the User Directory and Session Store contracts, the four use cases
(Register, Login, Refresh, Logout) and their HTTP delivery.

# Architecture

  - Service: orchestrates hashing, token issuance and persistence.
  - Repository: interfaces implemented by Postgres (users, sessions) and Redis (sessions).
  - Handler: JSON transport only; no business rules.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User is a registered account. Role is the login identifier.
type User struct {
	ID           int64     `json:"id"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	Username     *string   `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Role         string
	PasswordHash string
	Name         *string
	Email        *string
	Username     *string
}

// Session binds one refresh token to a user until ExpiresAt.
type Session struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsActive reports whether the session is still usable at now (inclusive of ExpiresAt).
func (session *Session) IsActive(now time.Time) bool {
	return !now.After(session.ExpiresAt)
}

// PublicUser is the client-visible projection of a [User]. It never carries the hash.
type PublicUser struct {
	ID       int64   `json:"id"`
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Role     string  `json:"role"`
}

// Public projects the user for API responses.
func (user *User) Public() PublicUser {
	return PublicUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}
}

// # Field Identifiers

// JSON field names used in validation details.
const (
	FieldRole         = "role"
	FieldPassword     = "password"
	FieldEmail        = "email"
	FieldName         = "name"
	FieldUsername     = "username"
	FieldRefreshToken = "refreshToken"
)
