package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// ReviewHandler serves recipe reviews
type ReviewHandler struct {
	reviewService service.IReviewService
	authService   service.IAuthService
	metrics       *middleware.Metrics
}

func NewReviewHandler(reviewService service.IReviewService, authService service.IAuthService, metrics *middleware.Metrics) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, authService: authService, metrics: metrics}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes/:id/reviews", h.ListReviews)
	router.POST("/recipes/:id/reviews", middleware.AuthMiddleware(h.authService), h.CreateReview)
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	reviews, err := h.reviewService.ListReviews(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	var req types.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, middleware.Username(c), id, &req)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	h.metrics.ReviewCreated()
	c.JSON(http.StatusCreated, review)
}
