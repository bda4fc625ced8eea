// Package adapters provides the gorm-backed repositories for the recipe feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// RecipeRepository is a gorm implementation of usecase.RecipeRepository.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns the user's recipes, newest first. Non-empty tagIDs and
// ingredientIDs each add a join; a recipe must match both filters to appear.
// Distinct guards against duplicate rows when a recipe matches several IDs.
func (r *RecipeRepository) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []entity.Recipe
	err := q.Distinct("recipes.*").
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Ingredients").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// FindByID returns the user's recipe with its associations preloaded.
// Recipes owned by other users are reported as not found.
func (r *RecipeRepository) FindByID(ctx context.Context, userID, id uint) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &recipe, nil
}

// Create persists the recipe. Associated tags and ingredients already carry
// their IDs, so gorm only writes the join rows for them.
func (r *RecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update writes the recipe's columns and replaces its tag and ingredient
// associations in one transaction.
func (r *RecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Recipe{}).
			Where("id = ? AND user_id = ?", recipe.ID, recipe.UserID).
			Updates(map[string]any{
				"title":        recipe.Title,
				"time_minutes": recipe.TimeMinutes,
				"price":        recipe.Price,
				"description":  recipe.Description,
				"link":         recipe.Link,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrRecipeNotFound
		}
		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return err
		}
		return tx.Model(recipe).Association("Ingredients").Replace(recipe.Ingredients)
	})
	if err != nil {
		if errors.Is(err, usecase.ErrRecipeNotFound) {
			return err
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

// Delete removes the user's recipe together with its join rows. The tags and
// ingredients themselves stay, they may be attached to other recipes.
func (r *RecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entity.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrRecipeNotFound
			}
			return err
		}
		// clause.Associations clears the many2many join rows only.
		return tx.Select(clause.Associations).Delete(&recipe).Error
	})
	if err != nil {
		if errors.Is(err, usecase.ErrRecipeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// UpdateImagePath stores the image location on the user's recipe.
func (r *RecipeRepository) UpdateImagePath(ctx context.Context, userID, id uint, path string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("image_path", path)
	if res.Error != nil {
		return fmt.Errorf("failed to update recipe image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrRecipeNotFound
	}
	return nil
}
