package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// fakeRecipeRepository counts calls so tests can tell cache hits from misses.
type fakeRecipeRepository struct {
	listCalls int
	recipes   []entity.Recipe
}

func (f *fakeRecipeRepository) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error) {
	f.listCalls++
	return f.recipes, nil
}

func (f *fakeRecipeRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Recipe, error) {
	return &f.recipes[0], nil
}

func (f *fakeRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error  { return nil }
func (f *fakeRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error  { return nil }
func (f *fakeRecipeRepository) Delete(ctx context.Context, userID, id uint) error        { return nil }
func (f *fakeRecipeRepository) UpdateImagePath(ctx context.Context, userID, id uint, path string) error {
	return nil
}

func setupCache(t *testing.T, inner *fakeRecipeRepository, ttl time.Duration) (*CachingRecipeRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCachingRecipeRepository(rdb, ttl, inner, "recipes"), mr
}

func TestCachingRecipeRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("second identical query is served from cache", func(t *testing.T) {
		inner := &fakeRecipeRepository{recipes: []entity.Recipe{{ID: 1, UserID: 7, Title: "Cached"}}}
		c, _ := setupCache(t, inner, time.Minute)

		first, err := c.List(ctx, 7, []uint{1}, nil)
		require.NoError(t, err)
		second, err := c.List(ctx, 7, []uint{1}, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.listCalls)
	})

	t.Run("different filters use different keys", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c, _ := setupCache(t, inner, time.Minute)

		_, err := c.List(ctx, 7, []uint{1}, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 7, nil, []uint{1})
		require.NoError(t, err)

		assert.Equal(t, 2, inner.listCalls)
	})

	t.Run("users do not share cache entries", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c, _ := setupCache(t, inner, time.Minute)

		_, err := c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 8, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, inner.listCalls)
	})

	t.Run("entries expire with the TTL", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c, mr := setupCache(t, inner, time.Minute)

		_, err := c.List(ctx, 7, nil, nil)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		_, err = c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.listCalls)
	})

	t.Run("nil client bypasses the cache", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c := NewCachingRecipeRepository(nil, time.Minute, inner, "recipes")

		_, err := c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.listCalls)
	})
}

func TestCachingRecipeRepository_Invalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("create drops the owner's cached lists only", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c, _ := setupCache(t, inner, time.Minute)

		_, err := c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 7, []uint{1}, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 8, nil, nil)
		require.NoError(t, err)
		require.Equal(t, 3, inner.listCalls)

		require.NoError(t, c.Create(ctx, &entity.Recipe{UserID: 7, Title: "New"}))

		// Both of user 7's entries are gone.
		_, err = c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		_, err = c.List(ctx, 7, []uint{1}, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, inner.listCalls)

		// User 8's entry survived.
		_, err = c.List(ctx, 8, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, inner.listCalls)
	})

	t.Run("image update invalidates too", func(t *testing.T) {
		inner := &fakeRecipeRepository{}
		c, _ := setupCache(t, inner, time.Minute)

		_, err := c.List(ctx, 7, nil, nil)
		require.NoError(t, err)

		require.NoError(t, c.UpdateImagePath(ctx, 7, 1, "/media/recipes/x.png"))

		_, err = c.List(ctx, 7, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.listCalls)
	})
}
