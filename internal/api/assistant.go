package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// AssistantHandler turns free-text requests into recipe searches
type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

func (h *AssistantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/search/assistant", h.Search)
}

func (h *AssistantHandler) Search(c *gin.Context) {
	var req types.AssistantSearchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.assistantService.Search(c.Request.Context(), req.Query)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, result)
}
