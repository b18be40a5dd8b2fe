package service

import (
	"context"
	"strings"

	"github.com/pageza/recipe-realm/backend/internal/types"
)

var assistantRules = []struct {
	keyword string
	phrases []string
}{
	{"vegetarian", []string{"vegetarian"}},
	{"vegan", []string{"vegan"}},
	{"gluten-free", []string{"gluten-free", "gluten free"}},
	{"keto", []string{"keto"}},
	{"healthy", []string{"healthy", "low calorie"}},
	{"breakfast", []string{"breakfast"}},
	{"lunch", []string{"lunch"}},
	{"dinner", []string{"dinner"}},
	{"dessert", []string{"dessert"}},
}

var commonIngredients = []string{"chicken", "beef", "fish", "pasta", "rice", "vegetables", "cheese", "eggs"}

// ExtractKeywords pulls known diet, meal and ingredient words out of a free-text request
func ExtractKeywords(query string) []string {
	lower := strings.ToLower(query)
	keywords := []string{}
	for _, rule := range assistantRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lower, phrase) {
				keywords = append(keywords, rule.keyword)
				break
			}
		}
	}
	for _, ingredient := range commonIngredients {
		if strings.Contains(lower, ingredient) {
			keywords = append(keywords, ingredient)
		}
	}
	return keywords
}

type AssistantResult struct {
	Query       string            `json:"query"`
	Keywords    []string          `json:"keywords"`
	SearchQuery string            `json:"search_query"`
	Results     *types.RecipePage `json:"results"`
}

// AssistantService answers natural-language recipe requests with keyword search
type AssistantService struct {
	recipes  IRecipeService
	pageSize int
}

func NewAssistantService(recipes IRecipeService, pageSize int) *AssistantService {
	if pageSize < 1 {
		pageSize = 20
	}
	return &AssistantService{recipes: recipes, pageSize: pageSize}
}

// Search returns the first page of recipes matching any extracted keyword.
// With no keywords the newest recipes are returned.
func (s *AssistantService) Search(ctx context.Context, query string) (*AssistantResult, error) {
	keywords := ExtractKeywords(query)
	page, err := s.recipes.ListRecipes(ctx, &types.RecipeFilter{
		AnyTerms: keywords,
		Page:     1,
		PageSize: s.pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &AssistantResult{
		Query:       query,
		Keywords:    keywords,
		SearchQuery: strings.Join(keywords, " "),
		Results:     page,
	}, nil
}
