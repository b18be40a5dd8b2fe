package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/config"
	"github.com/pageza/recipe-realm/backend/internal/api"
	"github.com/pageza/recipe-realm/backend/internal/database"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/realtime"
	"github.com/pageza/recipe-realm/backend/internal/router"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	redis  *redis.Client
	hub    *realtime.Hub
	router *gin.Engine
	http   *http.Server
}

// New wires services and routes. redisClient and s3Config may be nil; the
// server then falls back to in-process limiters and session storage and
// rejects image uploads.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, logger *zap.Logger) *Server {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := realtime.NewHub(cfg.AllowedOrigins, logger)

	var (
		cache    service.RecipeCache
		sessions service.SessionStore = service.NewMemorySessionStore()
	)
	if redisClient != nil {
		cache = service.NewRedisRecipeCache(redisClient)
		sessions = service.NewRedisSessionStore(redisClient)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	recipeService := service.NewRecipeService(db, cache, logger)

	var imageService *service.ImageService
	if s3Config != nil {
		imageService = service.NewImageService(service.NewS3ImageStore(s3Config), recipeService, logger)
	}

	s := &Server{cfg: cfg, logger: logger, db: db, redis: redisClient, hub: hub}
	s.router = router.SetupRouter(router.Options{
		Logger:         logger,
		Metrics:        middleware.NewMetrics(),
		AllowedOrigins: cfg.AllowedOrigins,
		Health:         s.health,
		Deps: api.Dependencies{
			Auth:      authService,
			Recipes:   recipeService,
			Reviews:   service.NewReviewService(db, recipeService, hub, logger),
			MealPlans: service.NewMealPlanService(db, logger),
			Cooking:   service.NewCookingService(db, recipeService, sessions, logger),
			Analytics: service.NewAnalyticsService(db),
			Assistant: service.NewAssistantService(recipeService, cfg.DefaultPageSize),
			Images:    imageService,
			Hub:       hub,
			Pagination: api.Pagination{
				DefaultPageSize: cfg.DefaultPageSize,
				MaxPageSize:     cfg.MaxPageSize,
			},
			CreateLimiter: middleware.NewLimiter(redisClient,
				middleware.RecipeCreationLimit(cfg.RecipeCreateLimit, cfg.RateLimitWindow), logger),
			ModifyLimiter: middleware.NewLimiter(redisClient,
				middleware.RecipeModificationLimit(cfg.RecipeModifyLimit, cfg.RateLimitWindow), logger),
		},
	})
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	status := http.StatusOK
	if err := database.HealthCheck(ctx, s.db); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if s.redis != nil {
		checks["redis"] = "ok"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			// redis is optional, report but stay healthy
			checks["redis"] = err.Error()
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("starting server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
