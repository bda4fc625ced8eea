// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipe_backend/internal/api"
	"recipe_backend/internal/app/config"
	authhandler "recipe_backend/internal/feature/auth/transport/handler"
	recipehandler "recipe_backend/internal/feature/recipe/transport/handler"
	jwtmw "recipe_backend/internal/platform/jwt"
	"recipe_backend/internal/shared/ratelimiter"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Recipes     *recipehandler.RecipeHandler
	Tags        *recipehandler.TagHandler
	Ingredients *recipehandler.IngredientHandler
}

// NewRouter builds the gin engine with all routes attached.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, api.ErrorResponse{Error: "method not allowed"})
	})

	r.Use(cors.Default())

	// Uploaded images are served from disk unless S3 is configured, then the
	// recipes carry absolute S3 URLs instead.
	if cfg.S3Bucket == "" {
		r.Static("/media", cfg.MediaDir)
	}

	r.GET("/healthz", health)

	// Registration and login take the brunt of credential stuffing, so they
	// sit behind a per-IP limiter.
	authLimiter := ratelimiter.NewIPRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	r.POST("/user/create", authLimiter.Middleware(), h.Auth.Register)
	r.POST("/user/token", authLimiter.Middleware(), h.Auth.Token)
	r.POST("/user/token/refresh", h.Auth.Refresh)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/user/logout", h.Auth.Logout)
		auth.GET("/user/me", h.Auth.Me)
		auth.PUT("/user/me", h.Auth.UpdateMe)
		auth.PATCH("/user/me", h.Auth.UpdateMe)

		auth.GET("/recipes", h.Recipes.List)
		auth.POST("/recipes", h.Recipes.Create)
		auth.GET("/recipes/:id", h.Recipes.Get)
		auth.PUT("/recipes/:id", h.Recipes.Replace)
		auth.PATCH("/recipes/:id", h.Recipes.Update)
		auth.DELETE("/recipes/:id", h.Recipes.Delete)
		auth.POST("/recipes/:id/upload-image", h.Recipes.UploadImage)

		auth.GET("/tags", h.Tags.List)
		auth.PUT("/tags/:id", h.Tags.Update)
		auth.PATCH("/tags/:id", h.Tags.Update)
		auth.DELETE("/tags/:id", h.Tags.Delete)

		auth.GET("/ingredients", h.Ingredients.List)
		auth.PUT("/ingredients/:id", h.Ingredients.Update)
		auth.PATCH("/ingredients/:id", h.Ingredients.Update)
		auth.DELETE("/ingredients/:id", h.Ingredients.Delete)
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
