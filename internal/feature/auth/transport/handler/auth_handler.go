// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
	"recipe_backend/internal/feature/auth/domain/entity"
	"recipe_backend/internal/feature/auth/transport/http/dto"
	"recipe_backend/internal/feature/auth/usecase"
	jwtmw "recipe_backend/internal/platform/jwt"
)

// AuthUsecase defines the usecase operations for authentication and profiles.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user with the given email, password and name.
	Register(ctx context.Context, email, password, name string) (*entity.User, error)
	// Login authenticates the user and returns access and refresh tokens.
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error)
	// Refresh rotates a refresh token and returns a new token pair.
	Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (string, string, error)
	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
	// Profile returns the user identified by id.
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile updates name and/or password; nil leaves a field unchanged.
	UpdateProfile(ctx context.Context, userID uint, name, password *string) (*entity.User, error)
}

// AuthHandler handles HTTP requests for registration, tokens and the profile.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// userRes maps a user entity to its response DTO. The password hash never
// crosses this boundary.
func userRes(u *entity.User) dto.UserRes {
	return dto.UserRes{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Register handles the user registration endpoint.
// - Binds the request JSON to RegisterReq
// - Returns 400 on validation errors or duplicate email
// - Returns 201 with the created profile on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("registration validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		slog.Warn("registration failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email: a user with this email already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, userRes(user))
}

// Token handles the login endpoint.
// - Returns 400 on validation errors
// - Returns 401 with a generic message on any credential mismatch
// - Returns 200 with access and refresh tokens on success
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	access, refresh, err := h.auth.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// Do not expose which of email/password was wrong.
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: access, RefreshToken: refresh})
}

// Refresh handles refresh token rotation.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Warn("token refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Token: access, RefreshToken: refresh})
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		// Revoking an unknown token is not an error worth reporting to the client.
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
	}
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, userRes(user))
}

// UpdateMe updates the authenticated user's name and/or password.
// Both PUT and PATCH are routed here; absent fields are left unchanged.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}
	var req dto.UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, userRes(user))
}
