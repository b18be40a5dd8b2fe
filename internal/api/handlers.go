package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/realtime"
	"github.com/pageza/recipe-realm/backend/internal/service"
)

// Dependencies are the services the HTTP layer is built from.
// Images, Hub, Metrics and the limiters are optional.
type Dependencies struct {
	Auth       service.IAuthService
	Recipes    service.IRecipeService
	Reviews    service.IReviewService
	MealPlans  *service.MealPlanService
	Cooking    *service.CookingService
	Analytics  *service.AnalyticsService
	Assistant  *service.AssistantService
	Images     *service.ImageService
	Hub        *realtime.Hub
	Metrics    *middleware.Metrics
	Pagination Pagination

	CreateLimiter middleware.Limiter
	ModifyLimiter middleware.Limiter
}

// RegisterRoutes registers all API routes under /api/v1
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	RegisterValidators()

	v1 := router.Group("/api/v1")

	NewAuthHandler(deps.Auth, deps.Metrics).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Auth, deps.Images, deps.Metrics, deps.Pagination,
		deps.CreateLimiter, deps.ModifyLimiter).RegisterRoutes(v1)
	NewReviewHandler(deps.Reviews, deps.Auth, deps.Metrics).RegisterRoutes(v1)
	NewMealPlanHandler(deps.MealPlans, deps.Auth).RegisterRoutes(v1)
	NewCookingHandler(deps.Cooking, deps.Analytics, deps.Auth, deps.Metrics).RegisterRoutes(v1)
	NewAssistantHandler(deps.Assistant).RegisterRoutes(v1)

	if deps.Hub != nil {
		v1.GET("/ws", gin.WrapF(deps.Hub.ServeWS))
	}
	if deps.CreateLimiter != nil && deps.ModifyLimiter != nil {
		RegisterRateLimitRoutes(v1, deps.Auth, deps.CreateLimiter, deps.ModifyLimiter)
	}
}

// RegisterRateLimitRoutes registers endpoints for checking rate limit status
func RegisterRateLimitRoutes(router *gin.RouterGroup, authService service.IAuthService, creationLimiter, modificationLimiter middleware.Limiter) {
	rateLimits := router.Group("/rate-limits", middleware.AuthMiddleware(authService))
	{
		rateLimits.GET("/recipe-creation", func(c *gin.Context) {
			userID, ok := currentUser(c)
			if !ok {
				return
			}
			respondRemaining(c, creationLimiter, userID.String(), gin.H{})
		})

		rateLimits.GET("/recipe-modification/:id", func(c *gin.Context) {
			userID, ok := currentUser(c)
			if !ok {
				return
			}
			recipeID, ok := parseID(c, "id", "Recipe")
			if !ok {
				return
			}
			key := userID.String() + ":" + recipeID.String()
			respondRemaining(c, modificationLimiter, key, gin.H{"recipe_id": recipeID})
		})
	}
}

func respondRemaining(c *gin.Context, l middleware.Limiter, key string, extra gin.H) {
	remaining, resetTime, err := l.GetRemainingRequests(c.Request.Context(), key)
	if err != nil {
		fail(c, err, "Rate limit")
		return
	}
	cfg := l.Config()
	body := gin.H{
		"limit":      cfg.Limit,
		"remaining":  remaining,
		"reset_time": resetTime.Unix(),
		"window":     cfg.Window.String(),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
