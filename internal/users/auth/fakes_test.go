// Copyright (c) 2026 CampusFM. All rights reserved.
// Author: platform@campusfm.dev

package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusfm/facility/internal/platform/apperr"
	"github.com/campusfm/facility/internal/platform/sec"
	"github.com/campusfm/facility/internal/users/auth"
	"github.com/campusfm/facility/pkg/uuid"
)

const testSecret = "facility-test-secret-0123456789abcdef"

var errStorageDown = errors.New("storage down")

// testClock is a settable time source shared by the token service and the use cases.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}
}

func (clock *testClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *testClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

// memoryUsers mirrors the Postgres directory: LOWER(role) lookup, unique email.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  []*auth.User
	err    error

	// createErr fails only Create, as a lost insert race does.
	createErr error
}

func (store *memoryUsers) Create(_ context.Context, input auth.NewUser) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	if store.createErr != nil {
		return nil, store.createErr
	}
	if input.Email != nil {
		for _, user := range store.users {
			if user.Email != nil && *user.Email == *input.Email {
				return nil, apperr.Conflict(auth.MsgEmailTaken)
			}
		}
	}
	store.nextID++
	user := &auth.User{
		ID:           store.nextID,
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		Name:         input.Name,
		Email:        input.Email,
		Username:     input.Username,
		CreatedAt:    time.Now(),
	}
	store.users = append(store.users, user)
	return user, nil
}

func (store *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	for _, user := range store.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (store *memoryUsers) FindByRole(_ context.Context, role string) (*auth.User, error) {
	if strings.TrimSpace(role) == "" {
		return nil, nil
	}
	return store.find(func(user *auth.User) bool {
		return strings.ToLower(user.Role) == strings.ToLower(role)
	})
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return store.find(func(user *auth.User) bool {
		return user.Email != nil && *user.Email == email
	})
}

func (store *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return store.find(func(user *auth.User) bool {
		return user.Username != nil && *user.Username == username
	})
}

func (store *memoryUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	return store.find(func(user *auth.User) bool { return user.ID == id })
}

// memorySessions keys sessions by refresh token.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session
	err      error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*auth.Session{}}
}

func (store *memorySessions) Create(_ context.Context, userID int64, token string, expiresAt time.Time) (*auth.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	if _, exists := store.sessions[token]; exists {
		return nil, apperr.Conflict("Session already exists")
	}
	session := &auth.Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: token,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}
	store.sessions[token] = session
	return session, nil
}

func (store *memorySessions) FindByRefreshToken(_ context.Context, token string) (*auth.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return nil, store.err
	}
	session, ok := store.sessions[token]
	if !ok {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (store *memorySessions) RevokeByToken(_ context.Context, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return store.err
	}
	delete(store.sessions, token)
	return nil
}

func (store *memorySessions) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

// fixture bundles a service with its fakes.
type fixture struct {
	clock    *testClock
	users    *memoryUsers
	sessions *memorySessions
	tokens   *sec.TokenService
	service  *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := newTestClock()
	tokens, err := sec.NewTokenService(testSecret, "facility-test", sec.WithClock(clock.Now))
	require.NoError(t, err)

	users := &memoryUsers{}
	sessions := newMemorySessions()

	return &fixture{
		clock:    clock,
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		service:  auth.NewService(users, sessions, sec.SHA256Hasher{}, tokens, auth.WithClock(clock.Now)),
	}
}

func (f *fixture) register(t *testing.T, input auth.RegisterInput) *auth.PublicUser {
	t.Helper()
	user, err := f.service.Register(context.Background(), input)
	require.NoError(t, err)
	return user
}
