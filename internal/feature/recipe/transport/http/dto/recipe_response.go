package dto

import (
	"github.com/shopspring/decimal"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

// TagRes is a tag in API responses.
type TagRes struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IngredientRes is an ingredient in API responses.
type IngredientRes struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeRes is the list representation of a recipe. Description and image
// are detail-only fields.
type RecipeRes struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []TagRes        `json:"tags"`
	Ingredients []IngredientRes `json:"ingredients"`
}

// RecipeDetailRes is the full representation of a recipe.
type RecipeDetailRes struct {
	RecipeRes
	Description string `json:"description"`
	Image       string `json:"image"`
}

// NewTagRes maps a tag entity.
func NewTagRes(tag entity.Tag) TagRes {
	return TagRes{ID: tag.ID, Name: tag.Name}
}

// NewIngredientRes maps an ingredient entity.
func NewIngredientRes(ingredient entity.Ingredient) IngredientRes {
	return IngredientRes{ID: ingredient.ID, Name: ingredient.Name}
}

// NewRecipeRes maps a recipe entity to its list representation.
func NewRecipeRes(recipe entity.Recipe) RecipeRes {
	tags := make([]TagRes, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, NewTagRes(tag))
	}
	ingredients := make([]IngredientRes, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, NewIngredientRes(ingredient))
	}
	return RecipeRes{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

// NewRecipeDetailRes maps a recipe entity to its detail representation.
func NewRecipeDetailRes(recipe entity.Recipe) RecipeDetailRes {
	return RecipeDetailRes{
		RecipeRes:   NewRecipeRes(recipe),
		Description: recipe.Description,
		Image:       recipe.ImagePath,
	}
}
