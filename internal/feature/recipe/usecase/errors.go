// Package usecase implements the business logic for the recipe feature.
package usecase

import "errors"

var (
	// ErrRecipeNotFound is returned when a recipe does not exist or belongs
	// to another user. The two cases are deliberately indistinguishable.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrTagNotFound is returned when a tag does not exist or belongs to another user.
	ErrTagNotFound = errors.New("tag not found")

	// ErrIngredientNotFound is returned when an ingredient does not exist or belongs to another user.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrNotAnImage is returned when an uploaded payload cannot be decoded as an image.
	ErrNotAnImage = errors.New("uploaded file is not a valid image")

	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image size exceeds the maximum allowed")
)
