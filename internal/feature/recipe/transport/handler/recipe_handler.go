// Package handler provides the HTTP handlers for the recipe feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/transport/http/dto"
	"recipe_backend/internal/feature/recipe/usecase"
	jwtmw "recipe_backend/internal/platform/jwt"
)

// RecipeUsecase defines the usecase operations for recipes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RecipeUsecase interface {
	// List returns the user's recipes, optionally filtered by tag/ingredient IDs.
	List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]entity.Recipe, error)
	// Get returns one of the user's recipes with associations.
	Get(ctx context.Context, userID, id uint) (*entity.Recipe, error)
	// Create stores a new recipe owned by the user.
	Create(ctx context.Context, userID uint, in usecase.RecipeInput) (*entity.Recipe, error)
	// Update applies a partial or full update to the user's recipe.
	Update(ctx context.Context, userID, id uint, patch usecase.RecipePatch) (*entity.Recipe, error)
	// Delete removes the user's recipe.
	Delete(ctx context.Context, userID, id uint) error
	// UploadImage validates and stores an image for the user's recipe.
	UploadImage(ctx context.Context, userID, id uint, data []byte) (*entity.Recipe, error)
}

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	recipes RecipeUsecase
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes RecipeUsecase) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// pathID parses the :id path parameter. A zero return means the response has
// already been written.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parseIDFilter parses a comma-separated ID list query parameter such as
// "1,2,3". An empty value means no filter.
func parseIDFilter(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// labelNames extracts the name list from a label reference slice.
func labelNames(refs []dto.LabelRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

// authedUser reads the authenticated user ID or writes a 401.
func authedUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	return userID, true
}

// List returns the authenticated user's recipes.
// The tags and ingredients query parameters accept comma-separated ID lists;
// when both are given, a recipe must match both to be included.
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	tagIDs, err := parseIDFilter(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "tags: expected a comma-separated list of IDs"})
		return
	}
	ingredientIDs, err := parseIDFilter(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ingredients: expected a comma-separated list of IDs"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), userID, tagIDs, ingredientIDs)
	if err != nil {
		slog.Error("failed to list recipes", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list recipes"})
		return
	}

	out := make([]dto.RecipeRes, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, dto.NewRecipeRes(recipe))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one recipe with all detail fields.
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetailRes(*recipe))
}

// Create stores a new recipe for the authenticated user.
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, usecase.RecipeInput{
		Title:           req.Title,
		TimeMinutes:     req.TimeMinutes,
		Price:           req.Price,
		Description:     req.Description,
		Link:            req.Link,
		TagNames:        labelNames(req.Tags),
		IngredientNames: labelNames(req.Ingredients),
	})
	if err != nil {
		slog.Error("failed to create recipe", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create recipe"})
		return
	}
	slog.Info("recipe created", "recipe_id", recipe.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.NewRecipeDetailRes(*recipe))
}

// Replace handles PUT with the same required fields as Create. Scalar fields
// are always overwritten; tag and ingredient lists are replaced only when
// present in the body.
func (h *RecipeHandler) Replace(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	patch := usecase.RecipePatch{
		Title:       &req.Title,
		TimeMinutes: &req.TimeMinutes,
		Price:       &req.Price,
		Description: &req.Description,
		Link:        &req.Link,
	}
	if req.Tags != nil {
		names := labelNames(req.Tags)
		patch.TagNames = &names
	}
	if req.Ingredients != nil {
		names := labelNames(req.Ingredients)
		patch.IngredientNames = &names
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetailRes(*recipe))
}

// Update applies a partial update (PATCH). Fields absent from the body stay
// unchanged.
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	patch := usecase.RecipePatch{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Tags != nil {
		names := labelNames(*req.Tags)
		patch.TagNames = &names
	}
	if req.Ingredients != nil {
		names := labelNames(*req.Ingredients)
		patch.IngredientNames = &names
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeDetailRes(*recipe))
}

// Delete removes the user's recipe.
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, userID)
		return
	}
	slog.Info("recipe deleted", "recipe_id", id, "user_id", userID)
	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart upload in the "image" field and attaches
// it to the recipe, replacing any previous image.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image: this field is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image: unreadable upload"})
		return
	}
	defer file.Close()

	// Read one byte past the limit so the usecase can tell "too large" apart
	// from "exactly at the limit".
	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image: unreadable upload"})
		return
	}

	recipe, err := h.recipes.UploadImage(c.Request.Context(), userID, id, data)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	slog.Info("recipe image uploaded", "recipe_id", id, "user_id", userID)
	c.JSON(http.StatusOK, dto.NewRecipeDetailRes(*recipe))
}

// writeError maps usecase errors to HTTP responses.
func (h *RecipeHandler) writeError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "recipe not found"})
	case errors.Is(err, usecase.ErrNotAnImage), errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("recipe operation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
