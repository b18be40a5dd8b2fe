package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/types"
)

// Broadcaster fans an event out to every live client
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// ImageStore persists an uploaded image and returns its public URL
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, identifier, password string) (*model.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, f *types.RecipeFilter) (*types.RecipePage, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	SetImage(ctx context.Context, userID, id uuid.UUID, imageURL string) (*model.Recipe, error)
	CheckOwner(ctx context.Context, userID, id uuid.UUID) error
	FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
	Catalogue(ctx context.Context) (*types.Catalogue, error)
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	ListReviews(ctx context.Context, recipeID uuid.UUID) ([]model.Review, error)
	CreateReview(ctx context.Context, userID uuid.UUID, username string, recipeID uuid.UUID, req *types.ReviewRequest) (*model.Review, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
	_ IReviewService = (*ReviewService)(nil)
)
