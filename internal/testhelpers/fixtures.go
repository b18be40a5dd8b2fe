package testhelpers

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every user made by CreateUser
const TestPassword = "password123"

// CreateUser inserts a user with a random username and email
func CreateUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Username:     gofakeit.Username() + gofakeit.DigitN(4),
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// RecipeOption customizes a recipe built by CreateRecipe
type RecipeOption func(*model.Recipe)

// CreateRecipe inserts a valid recipe, authored by authorID when not nil
func CreateRecipe(t *testing.T, db *gorm.DB, authorID *uuid.UUID, opts ...RecipeOption) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Title:               gofakeit.Dessert(),
		Description:         gofakeit.Sentence(8),
		Image:               gofakeit.URL(),
		CookTime:            25,
		Servings:            4,
		Difficulty:          model.DifficultyEasy,
		Category:            "Pasta",
		Ingredients:         model.JSONBStringArray{"400g pasta", "2 cloves garlic"},
		Instructions:        model.JSONBStringArray{"Cook pasta", "Mix everything"},
		Tags:                model.JSONBStringArray{"quick"},
		Nutrition:           model.Nutrition{Calories: 400, Protein: 20, Carbs: 50, Fat: 10, Fiber: 4, Sugar: 6},
		DietaryRestrictions: model.JSONBStringArray{},
		AuthorID:            authorID,
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Omit("Author").Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	return recipe
}
