// Package dto defines the request and response shapes for the recipe API.
package dto

import "github.com/shopspring/decimal"

// LabelRef references a tag or ingredient by name. Unknown names are created
// for the requesting user.
type LabelRef struct {
	Name string `json:"name" binding:"required"`
}

// CreateRecipeReq is the payload for creating a recipe.
type CreateRecipeReq struct {
	Title       string          `json:"title" binding:"required,max=255"`
	TimeMinutes int             `json:"time_minutes" binding:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Link        string          `json:"link" binding:"omitempty,max=255"`
	Tags        []LabelRef      `json:"tags" binding:"omitempty,dive"`
	Ingredients []LabelRef      `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeReq is the payload for updating a recipe. Absent fields are
// left unchanged; a present tags or ingredients list replaces the
// associations, including clearing them with an empty list.
type UpdateRecipeReq struct {
	Title       *string          `json:"title,omitempty" binding:"omitempty,max=255"`
	TimeMinutes *int             `json:"time_minutes,omitempty" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Link        *string          `json:"link,omitempty" binding:"omitempty,max=255"`
	Tags        *[]LabelRef      `json:"tags,omitempty" binding:"omitempty,dive"`
	Ingredients *[]LabelRef      `json:"ingredients,omitempty" binding:"omitempty,dive"`
}

// UpdateLabelReq renames a tag or ingredient.
type UpdateLabelReq struct {
	Name string `json:"name" binding:"required,max=255"`
}
