package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_backend/internal/feature/auth/domain/entity"
	"recipe_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionRedis_CreateAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), createTestSession("abc", 1, time.Hour)))

	t.Run("found", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), "abc")

		require.NoError(t, err)
		assert.Equal(t, uint(1), got.UserID)
		assert.Equal(t, "test-agent", got.UserAgent)
		assert.True(t, got.IsValid())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("already expired session is rejected", func(t *testing.T) {
		err := repo.Create(context.Background(), createTestSession("expired", 1, -time.Minute))

		assert.Error(t, err)
	})
}

func TestSessionRedis_TTLExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), createTestSession("short", 1, time.Minute)))

	mr.FastForward(2 * time.Minute)

	_, err := repo.FindByID(context.Background(), "short")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_Revoke(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), createTestSession("abc", 1, time.Hour)))

	t.Run("revokes existing session", func(t *testing.T) {
		require.NoError(t, repo.Revoke(context.Background(), "abc"))

		got, err := repo.FindByID(context.Background(), "abc")
		require.NoError(t, err)
		assert.True(t, got.IsRevoked())
	})

	t.Run("unknown session", func(t *testing.T) {
		err := repo.Revoke(context.Background(), "missing")

		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), createTestSession("a", 1, time.Hour)))
	require.NoError(t, repo.Create(context.Background(), createTestSession("b", 1, time.Hour)))
	require.NoError(t, repo.Create(context.Background(), createTestSession("c", 2, time.Hour)))
	require.NoError(t, repo.Revoke(context.Background(), "b"))

	count, err := repo.CountByUserID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "revoked sessions must not be counted")
}

func TestSessionRedis_RevokeAllByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), createTestSession("a", 1, time.Hour)))
	require.NoError(t, repo.Create(context.Background(), createTestSession("b", 1, time.Hour)))
	require.NoError(t, repo.Create(context.Background(), createTestSession("other", 2, time.Hour)))

	require.NoError(t, repo.RevokeAllByUserID(context.Background(), 1))

	count1, err := repo.CountByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, count1)

	count2, err := repo.CountByUserID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count2)
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	now := time.Now()
	oldest := &entity.Session{ID: "oldest", UserID: 1, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(time.Hour)}
	newest := &entity.Session{ID: "newest", UserID: 1, CreatedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(context.Background(), oldest))
	require.NoError(t, repo.Create(context.Background(), newest))

	require.NoError(t, repo.DeleteOldestByUserID(context.Background(), 1))

	_, err := repo.FindByID(context.Background(), "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	_, err = repo.FindByID(context.Background(), "newest")
	assert.NoError(t, err)
}
