package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MealPlanService manages weekly meal plans and the grocery lists built from them
type MealPlanService struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewMealPlanService(db *gorm.DB, logger *zap.Logger) *MealPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MealPlanService{db: db, logger: logger, now: time.Now}
}

// ParseWeek normalizes a YYYY-MM-DD date (or today when empty) to its Monday
func (s *MealPlanService) ParseWeek(raw string) (string, error) {
	if raw == "" {
		return model.WeekStart(s.now()), nil
	}
	day, err := time.Parse(model.WeekLayout, raw)
	if err != nil {
		return "", apperr.BadRequest("week must be a date formatted YYYY-MM-DD")
	}
	return model.WeekStart(day), nil
}

// GetOrCreatePlan returns the user's plan for the week, creating an empty one on first access
func (s *MealPlanService) GetOrCreatePlan(ctx context.Context, userID uuid.UUID, week string) (*model.MealPlan, error) {
	plan := model.MealPlan{UserID: userID, Week: week}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "week"}}, DoNothing: true}).
		Create(&plan).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create meal plan: %w", err)
	}

	var stored model.MealPlan
	if err := s.db.WithContext(ctx).Preload("Entries").
		Where("user_id = ? AND week = ?", userID, week).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	return &stored, nil
}

// ownedPlan loads a plan with its entries, hiding plans of other users
func (s *MealPlanService) ownedPlan(ctx context.Context, db *gorm.DB, userID, planID uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := db.WithContext(ctx).Preload("Entries").First(&plan, "id = ?", planID).Error
	if err != nil {
		return nil, apperr.From(err, "Meal plan")
	}
	if plan.UserID != userID {
		return nil, apperr.Forbidden("Meal plan belongs to another user")
	}
	return &plan, nil
}

func (s *MealPlanService) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*model.MealPlan, error) {
	return s.ownedPlan(ctx, s.db, userID, planID)
}

// SetMeal puts a recipe in a slot, replacing whatever was there
func (s *MealPlanService) SetMeal(ctx context.Context, userID, planID uuid.UUID, day, mealTime string, recipeID uuid.UUID) (*model.MealPlan, error) {
	if !model.IsWeekDay(day) || !model.IsMealTime(mealTime) {
		return nil, apperr.Validation(fmt.Sprintf("invalid slot %s/%s", day, mealTime))
	}
	if _, err := s.ownedPlan(ctx, s.db, userID, planID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up recipe: %w", err)
	}
	if count == 0 {
		return nil, apperr.NotFound("Recipe")
	}

	entry := model.MealPlanEntry{MealPlanID: planID, Day: day, MealTime: mealTime, RecipeID: recipeID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meal_plan_id"}, {Name: "day"}, {Name: "meal_time"}},
		DoUpdates: clause.AssignmentColumns([]string{"recipe_id"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to set meal: %w", err)
	}
	return s.ownedPlan(ctx, s.db, userID, planID)
}

// ClearMeal empties a slot; clearing an empty slot is a no-op
func (s *MealPlanService) ClearMeal(ctx context.Context, userID, planID uuid.UUID, day, mealTime string) (*model.MealPlan, error) {
	if !model.IsWeekDay(day) || !model.IsMealTime(mealTime) {
		return nil, apperr.Validation(fmt.Sprintf("invalid slot %s/%s", day, mealTime))
	}
	if _, err := s.ownedPlan(ctx, s.db, userID, planID); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).
		Where("meal_plan_id = ? AND day = ? AND meal_time = ?", planID, day, mealTime).
		Delete(&model.MealPlanEntry{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to clear meal: %w", err)
	}
	return s.ownedPlan(ctx, s.db, userID, planID)
}

// GenerateGroceryList builds and stores a grocery list from the plan's meals
func (s *MealPlanService) GenerateGroceryList(ctx context.Context, userID, planID uuid.UUID) (*model.GroceryList, error) {
	plan, err := s.ownedPlan(ctx, s.db, userID, planID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		ids = append(ids, e.RecipeID)
	}
	recipes := make(map[uuid.UUID]*model.Recipe, len(ids))
	if len(ids) > 0 {
		var found []model.Recipe
		if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to load planned recipes: %w", err)
		}
		for i := range found {
			recipes[found[i].ID] = &found[i]
		}
	}

	list := model.GroceryList{
		UserID:     userID,
		MealPlanID: planID,
		Items:      BuildGroceryItems(plan, recipes),
	}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to save grocery list: %w", err)
	}
	s.logger.Info("grocery list generated",
		zap.String("meal_plan_id", planID.String()),
		zap.Int("items", len(list.Items)))
	return &list, nil
}

func (s *MealPlanService) ownedList(ctx context.Context, db *gorm.DB, userID, listID uuid.UUID) (*model.GroceryList, error) {
	var list model.GroceryList
	if err := db.WithContext(ctx).First(&list, "id = ?", listID).Error; err != nil {
		return nil, apperr.From(err, "Grocery list")
	}
	if list.UserID != userID {
		return nil, apperr.Forbidden("Grocery list belongs to another user")
	}
	return &list, nil
}

func (s *MealPlanService) GetGroceryList(ctx context.Context, userID, listID uuid.UUID) (*model.GroceryList, error) {
	return s.ownedList(ctx, s.db, userID, listID)
}

var errItemNotFound = errors.New("grocery item not found")

// ToggleGroceryItem flips one item's checked flag. The list is complete once every item is checked.
func (s *MealPlanService) ToggleGroceryItem(ctx context.Context, userID, listID uuid.UUID, itemID string) (*model.GroceryList, error) {
	var updated *model.GroceryList
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		list, err := s.ownedList(ctx, tx.Clauses(lockingClause(tx)...), userID, listID)
		if err != nil {
			return err
		}

		found := false
		allChecked := len(list.Items) > 0
		for i := range list.Items {
			if list.Items[i].ID == itemID {
				list.Items[i].Checked = !list.Items[i].Checked
				found = true
			}
			allChecked = allChecked && list.Items[i].Checked
		}
		if !found {
			return apperr.NotFound("Grocery item").WithCause(errItemNotFound)
		}
		list.Completed = allChecked

		if err := tx.Model(list).Updates(map[string]interface{}{
			"items":     list.Items,
			"completed": list.Completed,
		}).Error; err != nil {
			return fmt.Errorf("failed to update grocery list: %w", err)
		}
		updated = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
