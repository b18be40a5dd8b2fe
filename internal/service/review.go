package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventUpdateReviews is pushed to live clients after a review lands
const EventUpdateReviews = "update-reviews"

type ReviewService struct {
	db          *gorm.DB
	recipes     *RecipeService
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewReviewService(db *gorm.DB, recipes *RecipeService, broadcaster Broadcaster, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		db:          db,
		recipes:     recipes,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// ListReviews returns the reviews of a recipe, newest first
func (s *ReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]model.Review, error) {
	if err := s.recipes.exists(ctx, recipeID); err != nil {
		return nil, err
	}
	reviews := []model.Review{}
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("date DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview stores the review and refreshes the recipe's rating and
// review count in the same transaction.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, username string, recipeID uuid.UUID, req *types.ReviewRequest) (*model.Review, error) {
	comment := strings.TrimSpace(req.Comment)
	if req.Rating == 0 || comment == "" {
		return nil, apperr.BadRequest("Please provide both a rating and comment")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	review := model.Review{
		RecipeID: recipeID,
		UserID:   userID,
		UserName: username,
		Rating:   req.Rating,
		Comment:  comment,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe model.Recipe
		if err := tx.Clauses(lockingClause(tx)...).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
			return apperr.From(err, "Recipe")
		}
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var stats struct {
			Average float64
			Count   int
		}
		if err := tx.Model(&model.Review{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("recipe_id = ?", recipeID).
			Scan(&stats).Error; err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}

		return tx.Model(&model.Recipe{}).Where("id = ?", recipeID).Updates(map[string]interface{}{
			"rating":       stats.Average,
			"review_count": stats.Count,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.recipes.Invalidate(ctx, recipeID)
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(EventUpdateReviews, &review)
	}
	s.logger.Info("review created",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("rating", review.Rating))
	return &review, nil
}

// lockingClause serializes concurrent reviews of one recipe on postgres
func lockingClause(tx *gorm.DB) []clause.Expression {
	if tx.Dialector.Name() == "postgres" {
		return []clause.Expression{clause.Locking{Strength: "UPDATE"}}
	}
	return nil
}
