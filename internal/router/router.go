// Package router assembles the gin engine and its middleware chain.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/api"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"go.uber.org/zap"
)

// Options configures the engine
type Options struct {
	Logger         *zap.Logger
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	Health         gin.HandlerFunc
	Deps           api.Dependencies
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()

	// order matters: the request id must exist before anything logs
	router.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Recovery(opts.Logger),
		opts.Metrics.Middleware(),
		middleware.CORS(opts.AllowedOrigins),
		middleware.ErrorHandler(opts.Logger),
	)

	router.GET("/health", opts.Health)
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	opts.Deps.Metrics = opts.Metrics
	api.RegisterRoutes(router, opts.Deps)

	return router
}
