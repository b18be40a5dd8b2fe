package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// CookingHandler drives live cooking sessions and reports on past ones
type CookingHandler struct {
	cookingService   *service.CookingService
	analyticsService *service.AnalyticsService
	authService      service.IAuthService
	metrics          *middleware.Metrics
}

func NewCookingHandler(cookingService *service.CookingService, analyticsService *service.AnalyticsService,
	authService service.IAuthService, metrics *middleware.Metrics) *CookingHandler {
	return &CookingHandler{
		cookingService:   cookingService,
		analyticsService: analyticsService,
		authService:      authService,
		metrics:          metrics,
	}
}

func (h *CookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	router.POST("/recipes/:id/cook", auth, h.StartSession)
	cooking := router.Group("/cooking", auth)
	{
		cooking.GET("/:session_id", h.GetSession)
		cooking.POST("/:session_id/commands", h.SendCommand)
		cooking.POST("/:session_id/finish", h.FinishSession)
	}
	router.GET("/analytics", auth, h.GetAnalytics)
}

func (h *CookingHandler) StartSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}

	state, err := h.cookingService.Start(c.Request.Context(), userID, recipeID)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *CookingHandler) GetSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	state, err := h.cookingService.Get(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		fail(c, err, "Cooking session")
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *CookingHandler) SendCommand(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.CookingCommandRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Command == "" && req.Transcript == "" {
		fail(c, apperr.BadRequest("Either command or transcript is required"), "Cooking session")
		return
	}

	state, err := h.cookingService.Apply(c.Request.Context(), userID, c.Param("session_id"), req.Command, req.Transcript)
	if err != nil {
		fail(c, err, "Cooking session")
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *CookingHandler) FinishSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	session, err := h.cookingService.Finish(c.Request.Context(), userID, c.Param("session_id"))
	if err != nil {
		fail(c, err, "Cooking session")
		return
	}
	h.metrics.CookingFinished(session.Completed)
	c.JSON(http.StatusCreated, session)
}

func (h *CookingHandler) GetAnalytics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := h.analyticsService.Summarize(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "Analytics")
		return
	}
	c.JSON(http.StatusOK, summary)
}
