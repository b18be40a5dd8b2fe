package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// Pagination bounds the page_size a client may ask for
type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

// RecipeHandler serves recipe CRUD, favorites and per-recipe views
type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	imageService  *service.ImageService
	metrics       *middleware.Metrics
	pagination    Pagination
	createLimiter middleware.Limiter
	modifyLimiter middleware.Limiter
}

// NewRecipeHandler wires the handler. imageService and the limiters may be nil.
func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService, imageService *service.ImageService,
	metrics *middleware.Metrics, pagination Pagination, createLimiter, modifyLimiter middleware.Limiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		imageService:  imageService,
		metrics:       metrics,
		pagination:    pagination,
		createLimiter: createLimiter,
		modifyLimiter: modifyLimiter,
	}
}

func limit(l middleware.Limiter, perResource bool) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l, perResource)
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/categories", h.GetCategories)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/nutrition", h.GetNutrition)
		recipes.POST("", auth, limit(h.createLimiter, false), h.CreateRecipe)
		recipes.PUT("/:id", auth, limit(h.modifyLimiter, true), h.UpdateRecipe)
		recipes.DELETE("/:id", auth, limit(h.modifyLimiter, true), h.DeleteRecipe)
		recipes.POST("/:id/favorite", auth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", auth, h.UnfavoriteRecipe)
		recipes.POST("/:id/image", auth, limit(h.modifyLimiter, true), h.UploadImage)
	}
	router.GET("/favorites", auth, h.GetFavorites)
}

// parseFilter reads the list query string. Malformed numbers are a 400.
func (h *RecipeHandler) parseFilter(c *gin.Context) (*types.RecipeFilter, error) {
	f := &types.RecipeFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Page:       1,
		PageSize:   h.pagination.DefaultPageSize,
	}
	if raw := c.Query("dietary"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				f.Dietary = append(f.Dietary, d)
			}
		}
	}

	ints := []struct {
		name string
		dst  *int
		min  int
	}{
		{"page", &f.Page, 1},
		{"page_size", &f.PageSize, 1},
		{"max_cook_time", &f.MaxCookTime, 0},
	}
	for _, p := range ints {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < p.min {
			return nil, apperr.BadRequest(p.name + " must be a whole number of at least " + strconv.Itoa(p.min))
		}
		*p.dst = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"max_calories", &f.MaxCalories},
		{"min_rating", &f.MinRating},
	}
	for _, p := range floats {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, apperr.BadRequest(p.name + " must be a non-negative number")
		}
		*p.dst = v
	}

	if h.pagination.MaxPageSize > 0 && f.PageSize > h.pagination.MaxPageSize {
		f.PageSize = h.pagination.MaxPageSize
	}
	return f, nil
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}

	page, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) GetCategories(c *gin.Context) {
	catalogue, err := h.recipeService.Catalogue(c.Request.Context())
	if err != nil {
		fail(c, err, "Catalogue")
		return
	}
	c.JSON(http.StatusOK, catalogue)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) GetNutrition(c *gin.Context) {
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, service.BreakdownNutrition(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	h.metrics.RecipeCreated()
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	if err := h.recipeService.FavoriteRecipe(c.Request.Context(), userID, id); err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe favorited successfully"})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}
	if err := h.recipeService.UnfavoriteRecipe(c.Request.Context(), userID, id); err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe unfavorited successfully"})
}

func (h *RecipeHandler) GetFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipes, err := h.recipeService.GetFavoriteRecipes(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
