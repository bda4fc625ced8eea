// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// CachingRecipeRepository decorates a RecipeRepository with Redis caching of
// list queries. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Every write
// invalidates the owning user's cached lists.
type CachingRecipeRepository struct {
	inner usecase.RecipeRepository
	rdb   *redis.Client
	ttl   time.Duration
	inv   listInvalidator
}

// NewCachingRecipeRepository decorates a RecipeRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "recipes".
func NewCachingRecipeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RecipeRepository, namespace string) *CachingRecipeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "recipes"
	}
	return &CachingRecipeRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		inv:   listInvalidator{rdb: rdb, namespace: namespace},
	}
}

// List retrieves recipes, checking cache first then falling back to the database.
func (c *CachingRecipeRepository) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, userID, tagIDs, ingredientIDs)
	}

	key := c.listKey(userID, tagIDs, ingredientIDs)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Recipe
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.List(ctx, userID, tagIDs, ingredientIDs)
	if err != nil {
		return nil, err
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID always hits the database. Detail reads are cheap compared to the
// filtered list joins and caching them would double the invalidation surface.
func (c *CachingRecipeRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Recipe, error) {
	return c.inner.FindByID(ctx, userID, id)
}

// Create persists the recipe and invalidates the user's cached lists.
func (c *CachingRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	if err := c.inner.Create(ctx, recipe); err != nil {
		return err
	}
	c.inv.invalidate(ctx, recipe.UserID)
	return nil
}

// Update persists the recipe and invalidates the user's cached lists.
func (c *CachingRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	if err := c.inner.Update(ctx, recipe); err != nil {
		return err
	}
	c.inv.invalidate(ctx, recipe.UserID)
	return nil
}

// Delete removes the recipe and invalidates the user's cached lists.
func (c *CachingRecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.inv.invalidate(ctx, userID)
	return nil
}

// UpdateImagePath stores the image location and invalidates the user's cached lists.
func (c *CachingRecipeRepository) UpdateImagePath(ctx context.Context, userID, id uint, path string) error {
	if err := c.inner.UpdateImagePath(ctx, userID, id, path); err != nil {
		return err
	}
	c.inv.invalidate(ctx, userID)
	return nil
}

// listKey generates a cache key for a specific list query.
func (c *CachingRecipeRepository) listKey(userID uint, tagIDs, ingredientIDs []uint) string {
	return fmt.Sprintf("%st=%s:i=%s", c.inv.userPrefix(userID), joinIDs(tagIDs), joinIDs(ingredientIDs))
}

func joinIDs(ids []uint) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
