// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the lifetime of a refresh token and of its session row.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// MinRefreshTokenLength rejects obviously truncated refresh tokens before any lookup.
	MinRefreshTokenLength = 10
)

// # Client Messages

// Credential failures share one message per flow so callers cannot tell
// which check failed.
const (
	MsgInvalidCredentials  = "role or password incorrect"
	MsgInvalidRefreshToken = "Invalid refresh token"
	MsgMissingRefreshToken = "Missing refresh token"
	MsgLoggedOut           = "Logged out"
	MsgRoleTaken           = "Role is already taken or the account already exists"
	MsgEmailTaken          = "Email is already registered"
	MsgUsernameTaken       = "Username is already taken"
	MsgAccountExists       = "Account already exists"
)
