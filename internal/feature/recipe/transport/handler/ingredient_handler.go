package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
	"recipe_backend/internal/feature/recipe/domain/entity"
	"recipe_backend/internal/feature/recipe/transport/http/dto"
	"recipe_backend/internal/feature/recipe/usecase"
)

// IngredientUsecase defines the usecase operations for ingredients.
type IngredientUsecase interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*entity.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

// IngredientHandler handles HTTP requests for ingredients.
type IngredientHandler struct {
	ingredients IngredientUsecase
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(ingredients IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// List returns the user's ingredients, reverse name order. With
// assigned_only=1 only ingredients attached to at least one recipe are
// returned.
func (h *IngredientHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	ingredients, err := h.ingredients.List(c.Request.Context(), userID, assignedOnly(c))
	if err != nil {
		slog.Error("failed to list ingredients", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list ingredients"})
		return
	}

	out := make([]dto.IngredientRes, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, dto.NewIngredientRes(ingredient))
	}
	c.JSON(http.StatusOK, out)
}

// Update renames the user's ingredient. PUT and PATCH are both routed here.
func (h *IngredientHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateLabelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ingredient, err := h.ingredients.Update(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "ingredient not found"})
			return
		}
		slog.Error("failed to update ingredient", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewIngredientRes(*ingredient))
}

// Delete removes the user's ingredient.
func (h *IngredientHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.ingredients.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "ingredient not found"})
			return
		}
		slog.Error("failed to delete ingredient", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
