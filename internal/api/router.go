package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/FatimaZahraMH/blog-backend/docs"
	"github.com/FatimaZahraMH/blog-backend/internal/api/handler"
	"github.com/FatimaZahraMH/blog-backend/internal/api/middleware"
	"github.com/FatimaZahraMH/blog-backend/internal/core/service"
	"github.com/FatimaZahraMH/blog-backend/internal/infrastructure/config"
	mongorepo "github.com/FatimaZahraMH/blog-backend/internal/infrastructure/db/mongo"
	redisrepo "github.com/FatimaZahraMH/blog-backend/internal/infrastructure/db/redis"
	"github.com/FatimaZahraMH/blog-backend/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	articleRepo := mongorepo.NewArticleRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)
	articleCache := redisrepo.NewArticleCache(rdb, log)

	imageStore, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return nil, err
	}

	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	articleService := service.NewArticleService(articleRepo, commentRepo, imageStore, articleCache, log)
	commentService := service.NewCommentService(commentRepo, articleRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)
	commentHandler := handler.NewCommentHandler(commentService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	policy := middleware.DefaultPolicy()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))
	e.Use(middleware.Identity(tokenService, userRepo, policy))
	e.Use(middleware.Authorize(policy))

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Article routes ---
	e.POST("/api/articles", articleHandler.Create)
	e.GET("/api/articles/search", articleHandler.Search)
	e.GET("/api/articles/slug/:slug", articleHandler.GetBySlug)
	e.GET("/api/articles/author/:authorId", articleHandler.ListByAuthor)
	e.GET("/api/articles/:id", articleHandler.GetByID)
	e.PUT("/api/articles/:id", articleHandler.Update)
	e.DELETE("/api/articles/:id", articleHandler.Delete)
	e.POST("/api/articles/:id/cover-image", articleHandler.UploadCoverImage)
	e.DELETE("/api/articles/:id/cover-image", articleHandler.RemoveCoverImage)

	// --- Comment routes ---
	e.GET("/api/articles/:id/comments", commentHandler.ListByArticle)
	e.POST("/api/articles/:id/comments", commentHandler.Add)
	e.PUT("/api/comments/:id", commentHandler.Update)
	e.DELETE("/api/comments/:id", commentHandler.Delete)

	// --- Static cover images ---
	e.Static("/images", cfg.Upload.Dir)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
