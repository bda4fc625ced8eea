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

// TagUsecase defines the usecase operations for tags.
type TagUsecase interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]entity.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*entity.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	tags TagUsecase
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tags TagUsecase) *TagHandler {
	return &TagHandler{tags: tags}
}

// assignedOnly reads the assigned_only query parameter. Only "1" and "true"
// enable the filter, anything else falls back to listing everything.
func assignedOnly(c *gin.Context) bool {
	v := c.Query("assigned_only")
	return v == "1" || v == "true"
}

// List returns the user's tags, reverse name order. With assigned_only=1
// only tags attached to at least one recipe are returned.
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	tags, err := h.tags.List(c.Request.Context(), userID, assignedOnly(c))
	if err != nil {
		slog.Error("failed to list tags", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list tags"})
		return
	}

	out := make([]dto.TagRes, 0, len(tags))
	for _, tag := range tags {
		out = append(out, dto.NewTagRes(tag))
	}
	c.JSON(http.StatusOK, out)
}

// Update renames the user's tag. PUT and PATCH are both routed here.
func (h *TagHandler) Update(c *gin.Context) {
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

	tag, err := h.tags.Update(c.Request.Context(), userID, id, req.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "tag not found"})
			return
		}
		slog.Error("failed to update tag", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTagRes(*tag))
}

// Delete removes the user's tag.
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "tag not found"})
			return
		}
		slog.Error("failed to delete tag", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
