package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// CachingIngredientRepository decorates an IngredientRepository so that
// ingredient writes invalidate the owner's cached recipe lists, mirroring
// CachingTagRepository.
type CachingIngredientRepository struct {
	inner usecase.IngredientRepository
	inv   listInvalidator
}

// NewCachingIngredientRepository decorates an IngredientRepository. The
// namespace must match the recipe list cache; empty defaults to "recipes".
func NewCachingIngredientRepository(rdb *redis.Client, inner usecase.IngredientRepository, namespace string) *CachingIngredientRepository {
	if namespace == "" {
		namespace = "recipes"
	}
	return &CachingIngredientRepository{
		inner: inner,
		inv:   listInvalidator{rdb: rdb, namespace: namespace},
	}
}

// List delegates to the underlying repository.
func (c *CachingIngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Ingredient, error) {
	return c.inner.List(ctx, userID, assignedOnly)
}

// GetOrCreate delegates to the underlying repository.
func (c *CachingIngredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Ingredient, error) {
	return c.inner.GetOrCreate(ctx, userID, name)
}

// Update renames the ingredient and invalidates the user's cached recipe lists.
func (c *CachingIngredientRepository) Update(ctx context.Context, userID, id uint, name string) (*entity.Ingredient, error) {
	ingredient, err := c.inner.Update(ctx, userID, id, name)
	if err != nil {
		return nil, err
	}
	c.inv.invalidate(ctx, userID)
	return ingredient, nil
}

// Delete removes the ingredient and invalidates the user's cached recipe lists.
func (c *CachingIngredientRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := c.inner.Delete(ctx, userID, id); err != nil {
		return err
	}
	c.inv.invalidate(ctx, userID)
	return nil
}
