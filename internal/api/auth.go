package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// AuthHandler serves registration, login and the caller's own account
type AuthHandler struct {
	authService service.IAuthService
	metrics     *middleware.Metrics
}

func NewAuthHandler(authService service.IAuthService, metrics *middleware.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: metrics}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)

		me := users.Group("/me", middleware.AuthMiddleware(h.authService))
		me.GET("", h.GetMe)
		me.PUT("", h.UpdateMe)
		me.DELETE("", h.DeleteMe)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		fail(c, err, "User")
		return
	}
	h.metrics.UserRegistered()

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Identifier() == "" {
		fail(c, apperr.BadRequest("Username or email is required"), "User")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Identifier(), req.Password)
	if err != nil {
		fail(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.authService.DeleteUser(c.Request.Context(), userID); err != nil {
		fail(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
