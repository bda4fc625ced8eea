package main

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"recipe_backend/internal/app/config"
	"recipe_backend/internal/app/router"
	authadapters "recipe_backend/internal/feature/auth/adapters"
	authhandler "recipe_backend/internal/feature/auth/transport/handler"
	authusecase "recipe_backend/internal/feature/auth/usecase"
	recipeadapters "recipe_backend/internal/feature/recipe/adapters"
	recipehandler "recipe_backend/internal/feature/recipe/transport/handler"
	recipeusecase "recipe_backend/internal/feature/recipe/usecase"
	"recipe_backend/internal/platform/cache"
	platformdb "recipe_backend/internal/platform/db"
	jwtmw "recipe_backend/internal/platform/jwt"
	platformredis "recipe_backend/internal/platform/redis"
	"recipe_backend/internal/platform/session"
	"recipe_backend/internal/platform/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := platformdb.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis is optional. Without it sessions live in the database and the
	// recipe list cache is bypassed.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable, running without cache")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repositories
	userRepo := authadapters.NewUserRepository(db)
	var sessionRepo authusecase.SessionRepository
	if rdb != nil {
		sessionRepo = session.NewSessionRedis(rdb, "sessions")
	} else {
		sessionRepo = authadapters.NewSessionRepository(db)
	}
	// Label writes invalidate the same cached lists, tag and ingredient
	// names are embedded in them.
	recipeRepo := cache.NewCachingRecipeRepository(rdb, cfg.CacheTTL,
		recipeadapters.NewRecipeRepository(db), "recipes")
	tagRepo := cache.NewCachingTagRepository(rdb, recipeadapters.NewTagRepository(db), "recipes")
	ingredientRepo := cache.NewCachingIngredientRepository(rdb, recipeadapters.NewIngredientRepository(db), "recipes")

	// Image store
	var imageStore recipeusecase.ImageStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			slog.Error("failed to set up S3 image store", "error", err)
			os.Exit(1)
		}
		imageStore = s3Store
	} else {
		imageStore = storage.NewLocalStore(cfg.MediaDir)
	}

	// Usecases
	tokenGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen, cfg.SessionTTL)
	recipeUC := recipeusecase.NewRecipeUsecase(recipeRepo, tagRepo, ingredientRepo, imageStore)
	tagUC := recipeusecase.NewTagUsecase(tagRepo)
	ingredientUC := recipeusecase.NewIngredientUsecase(ingredientRepo)

	// Handlers
	r := router.NewRouter(cfg, router.Handlers{
		Auth:        authhandler.NewAuthHandler(authUC),
		Recipes:     recipehandler.NewRecipeHandler(recipeUC),
		Tags:        recipehandler.NewTagHandler(tagUC),
		Ingredients: recipehandler.NewIngredientHandler(ingredientUC),
	})

	slog.Info("server starting", "addr", cfg.AppAddr)
	if err := r.Run(cfg.AppAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
