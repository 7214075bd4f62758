// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/constants"
	"github.com/campusfm/facility/pkg/uuid"
)

// RedisSessionRepository implements [SessionRepository] on Redis.
//
// Each session is one key that Redis expires at the session's ExpiresAt, so
// expired sessions disappear without a sweeper.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// redisSession is the stored form; unlike [Session] it keeps the token.
type redisSession struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

/*
Create stores the session with NX semantics and an absolute expiry.

Returns:
  - error: apperr.Conflict if the token already has a session
*/
func (repository *RedisSessionRepository) Create(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) (*Session, error) {
	record := redisSession{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt.UTC(),
		CreatedAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("redis_session_repo_encode_failed: %w", err)
	}

	err = repository.client.SetArgs(ctx, sessionKey(refreshToken), payload, redis.SetArgs{
		Mode:     "NX",
		ExpireAt: record.ExpiresAt,
	}).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Conflict("Session already exists")
		}
		return nil, fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}

	return record.toSession(), nil
}

// FindByRefreshToken returns the stored session, or (nil, nil) once it is gone.
func (repository *RedisSessionRepository) FindByRefreshToken(ctx context.Context, token string) (*Session, error) {
	payload, err := repository.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_repo_get_failed: %w", err)
	}

	var record redisSession
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("redis_session_repo_decode_failed: %w", err)
	}

	return record.toSession(), nil
}

// RevokeByToken deletes the key. Missing keys are not an error.
func (repository *RedisSessionRepository) RevokeByToken(ctx context.Context, token string) error {
	if err := repository.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}
	return nil
}

func (record redisSession) toSession() *Session {
	return &Session{
		ID:           record.ID,
		UserID:       record.UserID,
		RefreshToken: record.RefreshToken,
		ExpiresAt:    record.ExpiresAt,
		CreatedAt:    record.CreatedAt,
	}
}
