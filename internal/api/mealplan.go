package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// MealPlanHandler serves weekly meal plans and their grocery lists
type MealPlanHandler struct {
	mealPlanService *service.MealPlanService
	authService     service.IAuthService
}

func NewMealPlanHandler(mealPlanService *service.MealPlanService, authService service.IAuthService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService, authService: authService}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	plans := router.Group("/meal-plans", auth)
	{
		plans.GET("/current", h.GetCurrentPlan)
		plans.GET("/:id", h.GetPlan)
		plans.PUT("/:id/meals", h.SetMeal)
		plans.DELETE("/:id/meals/:day/:meal_time", h.ClearMeal)
		plans.POST("/:id/grocery-list", h.GenerateGroceryList)
	}

	lists := router.Group("/grocery-lists", auth)
	{
		lists.GET("/:id", h.GetGroceryList)
		lists.PATCH("/:id/items/:item_id/toggle", h.ToggleGroceryItem)
	}
}

// mealPlanResponse exposes the plan as day -> meal time -> recipe id
type mealPlanResponse struct {
	ID    uuid.UUID                       `json:"id"`
	Week  string                          `json:"week"`
	Meals map[string]map[string]uuid.UUID `json:"meals"`
}

func planResponse(plan *model.MealPlan) mealPlanResponse {
	return mealPlanResponse{ID: plan.ID, Week: plan.Week, Meals: plan.Meals()}
}

type groceryListResponse struct {
	*model.GroceryList
	ByCategory map[string][]model.GroceryItem `json:"by_category"`
}

func listResponse(list *model.GroceryList) groceryListResponse {
	return groceryListResponse{GroceryList: list, ByCategory: list.ByCategory()}
}

func (h *MealPlanHandler) GetCurrentPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	week, err := h.mealPlanService.ParseWeek(c.Query("week"))
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}

	plan, err := h.mealPlanService.GetOrCreatePlan(c.Request.Context(), userID, week)
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseID(c, "id", "Meal plan")
	if !ok {
		return
	}
	plan, err := h.mealPlanService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

func (h *MealPlanHandler) SetMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseID(c, "id", "Meal plan")
	if !ok {
		return
	}
	var req types.SetMealRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.mealPlanService.SetMeal(c.Request.Context(), userID, planID, req.Day, req.MealTime, req.RecipeID)
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

func (h *MealPlanHandler) ClearMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseID(c, "id", "Meal plan")
	if !ok {
		return
	}

	plan, err := h.mealPlanService.ClearMeal(c.Request.Context(), userID, planID, c.Param("day"), c.Param("meal_time"))
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

func (h *MealPlanHandler) GenerateGroceryList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	planID, ok := parseID(c, "id", "Meal plan")
	if !ok {
		return
	}

	list, err := h.mealPlanService.GenerateGroceryList(c.Request.Context(), userID, planID)
	if err != nil {
		fail(c, err, "Meal plan")
		return
	}
	c.JSON(http.StatusCreated, listResponse(list))
}

func (h *MealPlanHandler) GetGroceryList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id", "Grocery list")
	if !ok {
		return
	}
	list, err := h.mealPlanService.GetGroceryList(c.Request.Context(), userID, listID)
	if err != nil {
		fail(c, err, "Grocery list")
		return
	}
	c.JSON(http.StatusOK, listResponse(list))
}

func (h *MealPlanHandler) ToggleGroceryItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := parseID(c, "id", "Grocery list")
	if !ok {
		return
	}
	list, err := h.mealPlanService.ToggleGroceryItem(c.Request.Context(), userID, listID, c.Param("item_id"))
	if err != nil {
		fail(c, err, "Grocery list")
		return
	}
	c.JSON(http.StatusOK, listResponse(list))
}
