// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/database/schema"
	"github.com/campusfm/facility/internal/platform/dberr"
	"github.com/campusfm/facility/pkg/uuid"
)

// # User Repository

var (
	accountColumns = strings.Join(schema.UserAccount.Columns(), ", ")

	insertAccountQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Role,
		schema.UserAccount.PasswordHash,
		schema.UserAccount.Name,
		schema.UserAccount.Email,
		schema.UserAccount.Username,
		accountColumns,
	)

	// Oldest account wins when several share a role spelling.
	selectAccountByRoleQuery = fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE LOWER(%s) = LOWER($1)
		ORDER BY %s
		LIMIT 1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Role, schema.UserAccount.ID,
	)

	selectAccountByEmailQuery = fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Email,
	)

	selectAccountByUsernameQuery = fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s
		LIMIT 1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.ID,
	)

	selectAccountByIDQuery = fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new account into users.account.

Returns:
  - *User: Stored entity with generated id and createdat
  - error: apperr.Conflict on duplicate email (MsgEmailTaken) or any other
    unique key (MsgAccountExists), otherwise wrapped database errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, input NewUser) (*User, error) {
	row := repository.pool.QueryRow(ctx, insertAccountQuery,
		input.Role,
		input.PasswordHash,
		input.Name,
		input.Email,
		input.Username,
	)

	user, err := scanUser(row)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			message := MsgAccountExists
			if dberr.ConstraintName(err) == schema.UserAccount.EmailKey {
				message = MsgEmailTaken
			}
			return nil, dberr.Wrap(err, "User", message)
		}
		return nil, fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return user, nil
}

// FindByRole matches role case-insensitively on the exact string.
func (repository *PostgresUserRepository) FindByRole(ctx context.Context, role string) (*User, error) {
	if strings.TrimSpace(role) == "" {
		return nil, nil
	}
	return repository.findOne(ctx, "find_by_role", selectAccountByRoleQuery, role)
}

// FindByEmail matches email exactly.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	return repository.findOne(ctx, "find_by_email", selectAccountByEmailQuery, email)
}

// FindByUsername matches username exactly.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, nil
	}
	return repository.findOne(ctx, "find_by_username", selectAccountByUsernameQuery, username)
}

// FindByID resolves an account by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return repository.findOne(ctx, "find_by_id", selectAccountByIDQuery, id)
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, operation, query string, arg any) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", operation, err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Role,
		&user.PasswordHash,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// # Session Repository

var (
	sessionColumns = strings.Join(schema.UserSession.Columns(), ", ")

	insertSessionQuery = fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.UserSession.Table,
		schema.UserSession.ID,
		schema.UserSession.UserID,
		schema.UserSession.RefreshToken,
		schema.UserSession.ExpiresAt,
		sessionColumns,
	)

	selectSessionByTokenQuery = fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1`,
		sessionColumns, schema.UserSession.Table, schema.UserSession.RefreshToken,
	)

	deleteSessionByTokenQuery = fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.RefreshToken,
	)
)

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create inserts a session row keyed by a fresh UUIDv7.

Returns:
  - error: apperr.Conflict if the refresh token is already bound to a session,
    apperr.NotFound if the account does not exist
*/
func (repository *PostgresSessionRepository) Create(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) (*Session, error) {
	row := repository.pool.QueryRow(ctx, insertSessionQuery, uuid.New(), userID, refreshToken, expiresAt)

	session, err := scanSession(row)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Session already exists").WithCause(err)
		}
		if dberr.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("User").WithCause(err)
		}
		return nil, fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return session, nil
}

// FindByRefreshToken returns the session bound to token, or (nil, nil).
func (repository *PostgresSessionRepository) FindByRefreshToken(ctx context.Context, token string) (*Session, error) {
	session, err := scanSession(repository.pool.QueryRow(ctx, selectSessionByTokenQuery, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_session_repo_find_by_token_failed: %w", err)
	}
	return session, nil
}

// RevokeByToken deletes the session bound to token. Zero affected rows is success.
func (repository *PostgresSessionRepository) RevokeByToken(ctx context.Context, token string) error {
	if _, err := repository.pool.Exec(ctx, deleteSessionByTokenQuery, token); err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*Session, error) {
	session := &Session{}
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshToken,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}
