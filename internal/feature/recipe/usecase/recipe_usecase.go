package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"

	// Image formats accepted for recipe uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"recipe_backend/internal/feature/recipe/domain/entity"
)

const (
	// MaxImageSize is the maximum accepted upload size (10MB).
	MaxImageSize = 10 * 1024 * 1024
)

// RecipeRepository abstracts the persistence layer for recipes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecipeRepository interface {
	// List returns the user's recipes, newest first, deduplicated.
	// Non-empty tagIDs/ingredientIDs restrict the result to recipes carrying
	// at least one of the listed tags resp. ingredients (AND across the two).
	List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error)

	// FindByID returns the user's recipe with associations preloaded.
	// It returns ErrRecipeNotFound for other users' recipes.
	FindByID(ctx context.Context, userID, id uint) (*entity.Recipe, error)

	// Create persists a new recipe including its associations.
	Create(ctx context.Context, recipe *entity.Recipe) error

	// Update persists the recipe's fields and replaces its associations.
	Update(ctx context.Context, recipe *entity.Recipe) error

	// Delete removes the user's recipe and its association rows.
	Delete(ctx context.Context, userID, id uint) error

	// UpdateImagePath stores the recipe's image location.
	UpdateImagePath(ctx context.Context, userID, id uint, path string) error
}

// TagRepository abstracts the persistence layer for tags.
type TagRepository interface {
	// List returns the user's tags in reverse name order. With assignedOnly
	// set, only tags attached to at least one recipe are returned.
	List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Tag, error)

	// GetOrCreate returns the user's tag with the exact name, creating it if absent.
	GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Tag, error)

	// Update renames the user's tag. Returns ErrTagNotFound for other users' tags.
	Update(ctx context.Context, userID, id uint, name string) (*entity.Tag, error)

	// Delete removes the user's tag and its association rows.
	Delete(ctx context.Context, userID, id uint) error
}

// IngredientRepository abstracts the persistence layer for ingredients.
type IngredientRepository interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Ingredient, error)
	GetOrCreate(ctx context.Context, userID uint, name string) (*entity.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*entity.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ImageStore abstracts where uploaded recipe images are kept.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (storage).
type ImageStore interface {
	// Save stores the object and returns the path it is served from.
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Delete removes a previously stored object by its path.
	Delete(ctx context.Context, path string) error
}

// RecipeInput carries the writable recipe fields for create and full update.
// Tag and ingredient names are resolved per user with get-or-create.
type RecipeInput struct {
	Title           string
	TimeMinutes     int
	Price           decimal.Decimal
	Description     string
	Link            string
	TagNames        []string
	IngredientNames []string
}

// RecipePatch carries partial updates. Nil fields are left unchanged;
// a non-nil name list replaces the corresponding associations.
type RecipePatch struct {
	Title           *string
	TimeMinutes     *int
	Price           *decimal.Decimal
	Description     *string
	Link            *string
	TagNames        *[]string
	IngredientNames *[]string
}

// RecipeUsecase implements recipe CRUD, filtering and image upload.
type RecipeUsecase struct {
	recipes     RecipeRepository
	tags        TagRepository
	ingredients IngredientRepository
	images      ImageStore
}

// NewRecipeUsecase creates a new RecipeUsecase.
func NewRecipeUsecase(recipes RecipeRepository, tags TagRepository, ingredients IngredientRepository, images ImageStore) *RecipeUsecase {
	return &RecipeUsecase{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
	}
}

// List returns the user's recipes, optionally filtered by tag/ingredient IDs.
func (u *RecipeUsecase) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error) {
	return u.recipes.List(ctx, userID, tagIDs, ingredientIDs)
}

// Get returns one of the user's recipes with associations.
func (u *RecipeUsecase) Get(ctx context.Context, userID, id uint) (*entity.Recipe, error) {
	return u.recipes.FindByID(ctx, userID, id)
}

// Create stores a new recipe owned by the user. Tag and ingredient names are
// resolved with per-user get-or-create, so existing labels are reused.
func (u *RecipeUsecase) Create(ctx context.Context, userID uint, in RecipeInput) (*entity.Recipe, error) {
	tags, err := u.resolveTags(ctx, userID, in.TagNames)
	if err != nil {
		return nil, err
	}
	ingredients, err := u.resolveIngredients(ctx, userID, in.IngredientNames)
	if err != nil {
		return nil, err
	}

	recipe := &entity.Recipe{
		UserID:      userID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Description: in.Description,
		Link:        in.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := u.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update applies a partial or full update to the user's recipe.
// Cross-user access surfaces as ErrRecipeNotFound from the repository.
func (u *RecipeUsecase) Update(ctx context.Context, userID, id uint, patch RecipePatch) (*entity.Recipe, error) {
	recipe, err := u.recipes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.TimeMinutes != nil {
		recipe.TimeMinutes = *patch.TimeMinutes
	}
	if patch.Price != nil {
		recipe.Price = *patch.Price
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Link != nil {
		recipe.Link = *patch.Link
	}
	if patch.TagNames != nil {
		tags, err := u.resolveTags(ctx, userID, *patch.TagNames)
		if err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if patch.IngredientNames != nil {
		ingredients, err := u.resolveIngredients(ctx, userID, *patch.IngredientNames)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	if err := u.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes the user's recipe.
func (u *RecipeUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.recipes.Delete(ctx, userID, id)
}

// UploadImage validates and stores an image for the user's recipe, replacing
// any previously stored image.
func (u *RecipeUsecase) UploadImage(ctx context.Context, userID, id uint, data []byte) (*entity.Recipe, error) {
	recipe, err := u.recipes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, ErrNotAnImage
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	name := fmt.Sprintf("recipes/%s.%s", uuid.NewString(), ext)

	path, err := u.images.Save(ctx, name, data, "image/"+format)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if err := u.recipes.UpdateImagePath(ctx, userID, id, path); err != nil {
		// The recipe still points at its old image; drop the orphan we
		// just wrote instead.
		_ = u.images.Delete(ctx, path)
		return nil, err
	}

	// Only after the new path is committed is the old object safe to
	// remove. Best effort: a stale object must not fail the upload.
	if recipe.ImagePath != "" {
		_ = u.images.Delete(ctx, recipe.ImagePath)
	}

	recipe.ImagePath = path
	return recipe, nil
}

// resolveTags maps names to user-owned tags, creating missing ones.
func (u *RecipeUsecase) resolveTags(ctx context.Context, userID uint, names []string) ([]entity.Tag, error) {
	var out []entity.Tag
	for _, name := range uniqueNames(names) {
		tag, err := u.tags.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *tag)
	}
	return out, nil
}

// resolveIngredients maps names to user-owned ingredients, creating missing ones.
func (u *RecipeUsecase) resolveIngredients(ctx context.Context, userID uint, names []string) ([]entity.Ingredient, error) {
	var out []entity.Ingredient
	for _, name := range uniqueNames(names) {
		ingredient, err := u.ingredients.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *ingredient)
	}
	return out, nil
}

// uniqueNames drops empty and repeated names while keeping the input order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
