package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// CachingTagRepository decorates a TagRepository so that tag writes
// invalidate the owner's cached recipe lists. Cached lists embed the tag
// names, so a rename or deletion would otherwise keep serving the old
// name until the TTL expired.
type CachingTagRepository struct {
	inner usecase.TagRepository
	inv   listInvalidator
}

// NewCachingTagRepository decorates a TagRepository. The namespace must
// match the recipe list cache; empty defaults to "recipes".
func NewCachingTagRepository(rdb *redis.Client, inner usecase.TagRepository, namespace string) *CachingTagRepository {
	if namespace == "" {
		namespace = "recipes"
	}
	return &CachingTagRepository{
		inner: inner,
		inv:   listInvalidator{rdb: rdb, namespace: namespace},
	}
}

// List delegates to the underlying repository.
func (c *CachingTagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Tag, error) {
	return c.inner.List(ctx, userID, assignedOnly)
}

// GetOrCreate delegates to the underlying repository. A freshly created tag
// is not attached to any recipe yet, so no cached list can mention it.
func (c *CachingTagRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Tag, error) {
	return c.inner.GetOrCreate(ctx, userID, name)
}

// Update renames the tag and invalidates the user's cached recipe lists.
func (c *CachingTagRepository) Update(ctx context.Context, userID, id uint, name string) (*entity.Tag, error) {
	tag, err := c.inner.Update(ctx, userID, id, name)
	if err != nil {
		return nil, err
	}
	c.inv.invalidate(ctx, userID)
	return tag, nil
}

// Delete removes the tag and invalidates the user's cached recipe lists.
func (c *CachingTagRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.inv.invalidate(ctx, userID)
	return nil
}
