package adapters

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/usecase"
)

// setupTestDB creates an isolated in-memory SQLite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Recipe{}, &entity.Tag{}, &entity.Ingredient{}))
	return db
}

func seedRecipe(t *testing.T, db *gorm.DB, userID uint, title string, tags []entity.Tag, ingredients []entity.Ingredient) *entity.Recipe {
	t.Helper()
	recipe := &entity.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 15,
		Price:       decimal.RequireFromString("4.50"),
		Tags:        tags,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestRecipeRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns own recipes newest first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRecipeRepository(db)

		first := seedRecipe(t, db, 1, "First", nil, nil)
		second := seedRecipe(t, db, 1, "Second", nil, nil)
		seedRecipe(t, db, 2, "Other user", nil, nil)

		recipes, err := repo.List(ctx, 1, nil, nil)

		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, second.ID, recipes[0].ID)
		assert.Equal(t, first.ID, recipes[1].ID)
	})

	t.Run("filters by tags and ingredients", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRecipeRepository(db)

		withBoth := seedRecipe(t, db, 1, "Vegan rice",
			[]entity.Tag{{UserID: 1, Name: "Vegan"}},
			[]entity.Ingredient{{UserID: 1, Name: "Rice"}})
		seedRecipe(t, db, 1, "Vegan toast", []entity.Tag{{UserID: 1, Name: "Breakfast"}}, nil)
		seedRecipe(t, db, 1, "Plain", nil, nil)

		var storedVegan entity.Tag
		require.NoError(t, db.Where("name = ?", "Vegan").First(&storedVegan).Error)
		var storedRice entity.Ingredient
		require.NoError(t, db.Where("name = ?", "Rice").First(&storedRice).Error)

		// Tag filter alone.
		recipes, err := repo.List(ctx, 1, []uint{storedVegan.ID}, nil)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, withBoth.ID, recipes[0].ID)

		// Both dimensions must match.
		recipes, err = repo.List(ctx, 1, []uint{storedVegan.ID}, []uint{storedRice.ID})
		require.NoError(t, err)
		require.Len(t, recipes, 1)

		// An ingredient the recipe lacks excludes it.
		other := entity.Ingredient{UserID: 1, Name: "Tofu"}
		require.NoError(t, db.Create(&other).Error)
		recipes, err = repo.List(ctx, 1, []uint{storedVegan.ID}, []uint{other.ID})
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("matching several filter tags yields one row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewRecipeRepository(db)

		recipe := seedRecipe(t, db, 1, "Curry",
			[]entity.Tag{{UserID: 1, Name: "Vegan"}, {UserID: 1, Name: "Dinner"}}, nil)

		var tags []entity.Tag
		require.NoError(t, db.Find(&tags).Error)
		ids := []uint{tags[0].ID, tags[1].ID}

		recipes, err := repo.List(ctx, 1, ids, nil)

		require.NoError(t, err)
		require.Len(t, recipes, 1, "a recipe matching two tags must not appear twice")
		assert.Equal(t, recipe.ID, recipes[0].ID)
		assert.Len(t, recipes[0].Tags, 2, "associations are preloaded")
	})
}

func TestRecipeRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := seedRecipe(t, db, 1, "Soup",
		[]entity.Tag{{UserID: 1, Name: "Warm"}},
		[]entity.Ingredient{{UserID: 1, Name: "Leek"}})

	t.Run("success", func(t *testing.T) {
		got, err := repo.FindByID(ctx, 1, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, "Soup", got.Title)
		assert.Len(t, got.Tags, 1)
		assert.Len(t, got.Ingredients, 1)
	})

	t.Run("other user's recipe is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 2, recipe.ID)
		assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)
	})
}

func TestRecipeRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := seedRecipe(t, db, 1, "Before",
		[]entity.Tag{{UserID: 1, Name: "Old"}}, nil)

	t.Run("replaces columns and associations", func(t *testing.T) {
		newTag := entity.Tag{UserID: 1, Name: "New"}
		require.NoError(t, db.Create(&newTag).Error)

		recipe.Title = "After"
		recipe.TimeMinutes = 0
		recipe.Tags = []entity.Tag{newTag}
		require.NoError(t, repo.Update(ctx, recipe))

		got, err := repo.FindByID(ctx, 1, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, 0, got.TimeMinutes, "zero values are written too")
		require.Len(t, got.Tags, 1)
		assert.Equal(t, "New", got.Tags[0].Name)

		// The detached tag still exists for the user.
		var count int64
		require.NoError(t, db.Model(&entity.Tag{}).Where("name = ?", "Old").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("other user's recipe is not found", func(t *testing.T) {
		foreign := *recipe
		foreign.UserID = 2
		assert.ErrorIs(t, repo.Update(ctx, &foreign), usecase.ErrRecipeNotFound)
	})
}

func TestRecipeRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := seedRecipe(t, db, 1, "Doomed",
		[]entity.Tag{{UserID: 1, Name: "Keep me"}},
		[]entity.Ingredient{{UserID: 1, Name: "Salt"}})

	t.Run("other user cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 2, recipe.ID), usecase.ErrRecipeNotFound)
	})

	t.Run("removes recipe and join rows, keeps labels", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1, recipe.ID))

		_, err := repo.FindByID(ctx, 1, recipe.ID)
		assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)

		var joinRows int64
		require.NoError(t, db.Table("recipe_tags").Count(&joinRows).Error)
		assert.Zero(t, joinRows)

		var tagCount int64
		require.NoError(t, db.Model(&entity.Tag{}).Count(&tagCount).Error)
		assert.EqualValues(t, 1, tagCount)
	})
}

func TestRecipeRepository_UpdateImagePath(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	recipe := seedRecipe(t, db, 1, "With image", nil, nil)

	require.NoError(t, repo.UpdateImagePath(ctx, 1, recipe.ID, "/media/recipes/abc.png"))

	got, err := repo.FindByID(ctx, 1, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "/media/recipes/abc.png", got.ImagePath)

	assert.ErrorIs(t, repo.UpdateImagePath(ctx, 2, recipe.ID, "x"), usecase.ErrRecipeNotFound)
}
