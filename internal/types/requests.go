package types

import (
	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
)

// NutritionInput carries whole-recipe nutrition values
type NutritionInput struct {
	Calories *float64 `json:"calories" binding:"required,gte=0"`
	Protein  *float64 `json:"protein" binding:"required,gte=0"`
	Carbs    *float64 `json:"carbs" binding:"required,gte=0"`
	Fat      *float64 `json:"fat" binding:"required,gte=0"`
	Fiber    *float64 `json:"fiber" binding:"required,gte=0"`
	Sugar    *float64 `json:"sugar" binding:"required,gte=0"`
}

// ToModel converts validated input into model.Nutrition
func (n NutritionInput) ToModel() model.Nutrition {
	return model.Nutrition{
		Calories: deref(n.Calories),
		Protein:  deref(n.Protein),
		Carbs:    deref(n.Carbs),
		Fat:      deref(n.Fat),
		Fiber:    deref(n.Fiber),
		Sugar:    deref(n.Sugar),
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// RecipeRequest is the body for creating or replacing a recipe
type RecipeRequest struct {
	Title               string          `json:"title" binding:"required,notblank,max=255"`
	Description         string          `json:"description" binding:"required,notblank"`
	Image               string          `json:"image" binding:"required,notblank,max=512"`
	CookTime            int             `json:"cook_time" binding:"required,gt=0"`
	Servings            int             `json:"servings" binding:"required,gt=0"`
	Difficulty          string          `json:"difficulty" binding:"required,difficulty"`
	Category            string          `json:"category" binding:"required,notblank,max=50"`
	Ingredients         []string        `json:"ingredients" binding:"required,min=1,dive,notblank"`
	Instructions        []string        `json:"instructions" binding:"required,min=1,dive,notblank"`
	Tags                []string        `json:"tags"`
	Nutrition           *NutritionInput `json:"nutrition" binding:"required"`
	DietaryRestrictions []string        `json:"dietary_restrictions"`
}

// ReviewRequest is the body for posting a review
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,notblank,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest accepts either a username or an email as identifier
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Identifier returns whichever of username or email was supplied
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// UpdateUserRequest carries optional account changes
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// SetMealRequest assigns a recipe to one meal-plan slot
type SetMealRequest struct {
	Day      string    `json:"day" binding:"required,weekday"`
	MealTime string    `json:"meal_time" binding:"required,mealtime"`
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
}

// CookingCommandRequest holds either a command or a voice transcript
type CookingCommandRequest struct {
	Command    string `json:"command"`
	Transcript string `json:"transcript"`
}

// AssistantSearchRequest is the free-text query for the search assistant
type AssistantSearchRequest struct {
	Query string `json:"query" binding:"required,notblank"`
}
