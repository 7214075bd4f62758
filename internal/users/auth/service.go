// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/ctxutil"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/pkg/pointer"
)

// Service implements the Register, Login, Refresh and Logout use cases.
//
// # Review Process
//
// Changes to hashing, token issuance or the shape of credential errors are
// security relevant and need a second reviewer.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	hasher            sec.Hasher
	tokenIssuer       TokenIssuer
	now               func() time.Time
}

// ServiceOption customizes a [Service].
type ServiceOption func(*Service)

// WithClock replaces the time source used for session expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(service *Service) {
		service.now = now
	}
}

// NewService constructs a new [Service] with its collaborators.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	hasher sec.Hasher,
	tokenIssuer TokenIssuer,
	opts ...ServiceOption,
) *Service {
	service := &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		hasher:            hasher,
		tokenIssuer:       tokenIssuer,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Role     string
	Password string
	Email    string
	Name     string
	Username string
}

/*
Register creates an account and returns its public projection.

The role is trimmed before it is looked up or stored. Role and email
uniqueness are checked up front for friendly errors; the
unique index on email still decides concurrent registrations. Username is
checked here only, it carries no storage constraint.

Returns:
  - *PublicUser: Created account without its hash
  - err: Conflict when role, email or username is taken
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*PublicUser, error) {
	role := strings.TrimSpace(input.Role)
	email := optional(input.Email)
	name := optional(input.Name)
	username := optional(input.Username)

	existing, err := service.userRepository.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_role_lookup_failed: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict(MsgRoleTaken)
	}

	if email != nil {
		existing, err = service.userRepository.FindByEmail(ctx, *email)
		if err != nil {
			return nil, fmt.Errorf("auth_service_register_email_lookup_failed: %w", err)
		}
		if existing != nil {
			return nil, apperr.Conflict(MsgEmailTaken)
		}
	}

	if username != nil {
		existing, err = service.userRepository.FindByUsername(ctx, *username)
		if err != nil {
			return nil, fmt.Errorf("auth_service_register_username_lookup_failed: %w", err)
		}
		if existing != nil {
			return nil, apperr.Conflict(MsgUsernameTaken)
		}
	} else if email != nil {
		username = pointer.To(strings.SplitN(*email, "@", 2)[0])
	}

	passwordHash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user, err := service.userRepository.Create(ctx, NewUser{
		Role:         role,
		PasswordHash: passwordHash,
		Name:         name,
		Email:        email,
		Username:     username,
	})
	if err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Role     string
	Password string
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresAt    time.Time  `json:"expiresAt"`
}

/*
Login verifies role and password, issues an access/refresh pair and
persists the refresh session.

Unknown role and wrong password fail with the same Unauthorized error.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.userRepository.FindByRole(ctx, strings.TrimSpace(input.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}
	if user == nil || !service.hasher.Compare(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	accessToken, err := service.tokenIssuer.Sign(sec.TokenPayload{UserID: user.ID}, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokenIssuer.Sign(sec.TokenPayload{UserID: user.ID, Session: true}, RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := service.now().Add(RefreshTokenTTL)
	if _, err := service.sessionRepository.Create(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginResult{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// # Session Management

// RefreshResult carries the newly minted access token.
type RefreshResult struct {
	AccessToken string `json:"accessToken"`
}

var (
	errSessionNotFound = errors.New("session not found")
	errSessionMismatch = errors.New("token does not match session")
	errSessionExpired  = errors.New("session expired")
)

/*
Refresh exchanges a live refresh token for a new access token.

The refresh token is not rotated: it stays valid until its own expiry or
logout. Every failure is logged and reported as the same Unauthorized error.
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	result, err := service.refresh(ctx, refreshToken)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_refresh_rejected", slog.Any("error", err))
		return nil, apperr.Unauthorized(MsgInvalidRefreshToken).WithCause(err)
	}
	return result, nil
}

func (service *Service) refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	claims, err := service.tokenIssuer.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := service.sessionRepository.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errSessionNotFound
	}

	if claims.UserID != session.UserID {
		return nil, fmt.Errorf("%w: token user %d, session user %d", errSessionMismatch, claims.UserID, session.UserID)
	}

	if !session.IsActive(service.now()) {
		return nil, errSessionExpired
	}

	accessToken, err := service.tokenIssuer.Sign(sec.TokenPayload{UserID: session.UserID}, AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{AccessToken: accessToken}, nil
}

/*
Logout deletes the session bound to refreshToken.

It succeeds when no session exists, so repeated calls are safe.
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := service.sessionRepository.RevokeByToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Profiles

/*
Profile returns the public projection of an account.

Returns:
  - err: NotFound when the account does not exist
*/
func (service *Service) Profile(ctx context.Context, id int64) (*PublicUser, error) {
	user, err := service.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}
	public := user.Public()
	return &public, nil
}

// FindPrincipal loads the current role and username for the guard.
// It returns (nil, nil) when the account no longer exists.
func (service *Service) FindPrincipal(ctx context.Context, id int64) (*sec.Principal, error) {
	user, err := service.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("auth_service_principal_failed: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return &sec.Principal{ID: user.ID, Role: user.Role, Username: user.Username}, nil
}

// optional trims value and maps blank to nil.
func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return pointer.To(trimmed)
}
