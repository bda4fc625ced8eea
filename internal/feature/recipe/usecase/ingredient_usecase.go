package usecase

import (
	"context"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// IngredientUsecase implements listing and managing a user's ingredients.
type IngredientUsecase struct {
	ingredients IngredientRepository
}

// NewIngredientUsecase creates a new IngredientUsecase.
func NewIngredientUsecase(ingredients IngredientRepository) *IngredientUsecase {
	return &IngredientUsecase{ingredients: ingredients}
}

// List returns the user's ingredients. With assignedOnly set, only
// ingredients attached to at least one recipe are returned.
func (u *IngredientUsecase) List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Ingredient, error) {
	return u.ingredients.List(ctx, userID, assignedOnly)
}

// Update renames the user's ingredient.
func (u *IngredientUsecase) Update(ctx context.Context, userID, id uint, name string) (*entity.Ingredient, error) {
	return u.ingredients.Update(ctx, userID, id, name)
}

// Delete removes the user's ingredient and detaches it from all recipes.
func (u *IngredientUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.ingredients.Delete(ctx, userID, id)
}
