package types

import "github.com/pageza/recipe-realm/backend/internal/model"

// RecipeFilter holds the list filters accepted by GET /recipes
type RecipeFilter struct {
	Search      string
	AnyTerms    []string // at least one must match
	Category    string
	Difficulty  string
	MaxCookTime int
	Dietary     []string
	MaxCalories float64
	MinRating   float64
	Page        int
	PageSize    int
}

// RecipePage is one page of a filtered recipe listing
type RecipePage struct {
	Recipes  []model.Recipe `json:"recipes"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Catalogue lists the browse facets offered to clients
type Catalogue struct {
	Categories     []string `json:"categories"`
	Difficulties   []string `json:"difficulties"`
	DietaryOptions []string `json:"dietary_options"`
}
