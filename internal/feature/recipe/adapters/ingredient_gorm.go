package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// IngredientRepository is a gorm implementation of usecase.IngredientRepository.
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List returns the user's ingredients in reverse name order. With
// assignedOnly set, ingredients without any recipe are filtered out.
func (r *IngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Ingredient, error) {
	q := r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	var ingredients []entity.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// GetOrCreate returns the user's ingredient with the exact name, creating it
// when absent.
func (r *IngredientRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := r.db.WithContext(ctx).
		Where(entity.Ingredient{UserID: userID, Name: name}).
		FirstOrCreate(&ingredient).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create ingredient: %w", err)
	}
	return &ingredient, nil
}

// Update renames the user's ingredient.
func (r *IngredientRepository) Update(ctx context.Context, userID, id uint, name string) (*entity.Ingredient, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrIngredientNotFound
	}
	return &entity.Ingredient{ID: id, UserID: userID, Name: name}, nil
}

// Delete removes the user's ingredient and detaches it from all recipes.
func (r *IngredientRepository) Delete(ctx context.Context, userID, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Ingredient{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrIngredientNotFound
		}
		return tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, usecase.ErrIngredientNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}
