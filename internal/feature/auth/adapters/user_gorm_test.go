package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/auth/domain/entity"
	"recipe_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := &entity.User{
			Email:    "test@example.com",
			Password: "hashed_password",
			Name:     "Test User",
			Active:   true,
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate email returns ErrEmailAlreadyExists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		err := repo.Create(context.Background(), &entity.User{
			Email:    "duplicate@example.com",
			Password: "password1",
		})
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), &entity.User{
			Email:    "duplicate@example.com",
			Password: "password2",
		})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seed := &entity.User{Email: "find@example.com", Password: "hash", Name: "Finder"}
	require.NoError(t, repo.Create(context.Background(), seed))

	t.Run("found", func(t *testing.T) {
		user, err := repo.FindByEmail(context.Background(), "find@example.com")

		require.NoError(t, err)
		assert.Equal(t, seed.ID, user.ID)
		assert.Equal(t, "Finder", user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByEmail(context.Background(), "missing@example.com")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seed := &entity.User{Email: "byid@example.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), seed))

	t.Run("found", func(t *testing.T) {
		user, err := repo.FindByID(context.Background(), seed.ID)

		require.NoError(t, err)
		assert.Equal(t, "byid@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 9999)

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserGorm_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seed := &entity.User{Email: "update@example.com", Password: "hash", Name: "Before"}
	require.NoError(t, repo.Create(context.Background(), seed))

	seed.Name = "After"
	seed.Password = "new-hash"
	require.NoError(t, repo.Update(context.Background(), seed))

	got, err := repo.FindByID(context.Background(), seed.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "new-hash", got.Password)
}
