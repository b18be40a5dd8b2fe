package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/catalog"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	cache  RecipeCache
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. cache may be nil.
func NewRecipeService(db *gorm.DB, cache RecipeCache, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// CanonicalDifficulty maps any casing of a difficulty onto its stored form
func CanonicalDifficulty(d string) string {
	return cases.Title(language.English).String(strings.TrimSpace(d))
}

// IsDifficulty reports whether d names a known difficulty, ignoring case
func IsDifficulty(d string) bool {
	switch CanonicalDifficulty(d) {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return true
	}
	return false
}

func (s *RecipeService) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

// jsonText renders a JSON column as text for LIKE matching
func (s *RecipeService) jsonText(column string) string {
	if s.isPostgres() {
		return column + "::text"
	}
	return column
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func containsPattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

// applyFilters narrows a recipe query; every filter combines with AND
func (s *RecipeService) applyFilters(q *gorm.DB, f *types.RecipeFilter) *gorm.DB {
	if search := strings.TrimSpace(f.Search); search != "" {
		like := containsPattern(search)
		q = q.Where(fmt.Sprintf(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(%s) LIKE ? ESCAPE '\'`, s.jsonText("tags")),
			like, like, like)
	}
	if len(f.AnyTerms) > 0 {
		var clauses []string
		var args []interface{}
		for _, term := range f.AnyTerms {
			like := containsPattern(term)
			clauses = append(clauses, fmt.Sprintf(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(%s) LIKE ? ESCAPE '\'`, s.jsonText("tags")))
			args = append(args, like, like, like)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, catalog.AllOption) {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if d := strings.TrimSpace(f.Difficulty); d != "" && !strings.EqualFold(d, catalog.AllOption) {
		q = q.Where("difficulty = ?", CanonicalDifficulty(d))
	}
	if f.MaxCookTime > 0 {
		q = q.Where("cook_time <= ?", f.MaxCookTime)
	}
	for _, restriction := range f.Dietary {
		restriction = strings.TrimSpace(restriction)
		if restriction == "" {
			continue
		}
		pattern := `%"` + escapeLike(strings.ToLower(restriction)) + `"%`
		q = q.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, s.jsonText("dietary_restrictions")), pattern)
	}
	if f.MaxCalories > 0 {
		q = q.Where("nutrition_calories <= ?", f.MaxCalories)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}
	return q
}

func withAuthor(q *gorm.DB) *gorm.DB {
	return q.Preload("Author")
}

// ListRecipes returns one page of recipes matching the filter, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, f *types.RecipeFilter) (*types.RecipePage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	var total int64
	if err := s.applyFilters(s.db.WithContext(ctx).Model(&model.Recipe{}), f).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	q := withAuthor(s.applyFilters(s.db.WithContext(ctx).Model(&model.Recipe{}), f))
	if search := strings.TrimSpace(f.Search); search != "" && s.isPostgres() {
		// Closest embeddings first among the substring matches
		q = q.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ? NULLS LAST", Vars: []interface{}{GenerateEmbedding(search)}},
		})
	}
	q = q.Order("created_at DESC").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize)

	recipes := []model.Recipe{}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return &types.RecipePage{
		Recipes:  recipes,
		Total:    total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}

// GetRecipe retrieves a recipe by ID, consulting the cache first
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	if s.cache != nil {
		if recipe, ok := s.cache.Get(ctx, id); ok {
			return recipe, nil
		}
	}

	recipe, err := s.loadRecipe(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recipe); err != nil {
			s.logger.Warn("failed to cache recipe", zap.String("recipe_id", id.String()), zap.Error(err))
		}
	}
	return recipe, nil
}

func (s *RecipeService) loadRecipe(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := withAuthor(db.WithContext(ctx)).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, apperr.From(err, "Recipe")
	}
	return &recipe, nil
}

func applyRecipeRequest(recipe *model.Recipe, req *types.RecipeRequest) {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Description = strings.TrimSpace(req.Description)
	recipe.Image = strings.TrimSpace(req.Image)
	recipe.CookTime = req.CookTime
	recipe.Servings = req.Servings
	recipe.Difficulty = CanonicalDifficulty(req.Difficulty)
	recipe.Category = strings.TrimSpace(req.Category)
	recipe.Ingredients = model.JSONBStringArray(req.Ingredients)
	recipe.Instructions = model.JSONBStringArray(req.Instructions)
	recipe.Tags = model.JSONBStringArray(nonNil(req.Tags))
	recipe.DietaryRestrictions = model.JSONBStringArray(nonNil(req.DietaryRestrictions))
	if req.Nutrition != nil {
		recipe.Nutrition = req.Nutrition.ToModel()
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (s *RecipeService) setEmbedding(recipe *model.Recipe) {
	if s.isPostgres() {
		vec := RecipeEmbedding(recipe)
		recipe.Embedding = &vec
	}
}

// CreateRecipe stores a new recipe owned by authorID
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	recipe := &model.Recipe{AuthorID: &authorID}
	applyRecipeRequest(recipe, req)
	s.setEmbedding(recipe)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return s.loadRecipe(ctx, s.db, recipe.ID)
}

// ownedRecipe loads a recipe and checks that userID authored it
func (s *RecipeService) ownedRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, apperr.From(err, "Recipe")
	}
	if !recipe.IsAuthor(userID) {
		return nil, apperr.Forbidden("Only the author can modify this recipe")
	}
	return &recipe, nil
}

// UpdateRecipe replaces the editable fields of a recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyRecipeRequest(recipe, req)
	s.setEmbedding(recipe)

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidate(ctx, id)
	return s.loadRecipe(ctx, s.db, id)
}

// DeleteRecipe removes a recipe together with its reviews and favorites
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, userID, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.MealPlanEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// SetImage points the recipe at an uploaded image
func (s *RecipeService) SetImage(ctx context.Context, userID, id uuid.UUID, imageURL string) (*model.Recipe, error) {
	if _, err := s.ownedRecipe(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Update("image", imageURL).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe image: %w", err)
	}
	s.invalidate(ctx, id)
	return s.loadRecipe(ctx, s.db, id)
}

// CheckOwner returns nil when userID may modify the recipe
func (s *RecipeService) CheckOwner(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.ownedRecipe(ctx, userID, id)
	return err
}

// Invalidate drops any cached copy of the recipe
func (s *RecipeService) Invalidate(ctx context.Context, id uuid.UUID) {
	s.invalidate(ctx, id)
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate recipe cache", zap.String("recipe_id", id.String()), zap.Error(err))
	}
}

// FavoriteRecipe marks a recipe as a favorite; repeating it is a no-op
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.exists(ctx, recipeID); err != nil {
		return err
	}
	favorite := model.RecipeFavorite{UserID: userID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}}, DoNothing: true}).
		Create(&favorite).Error
	if err != nil {
		return fmt.Errorf("failed to favorite recipe: %w", err)
	}
	return nil
}

// UnfavoriteRecipe removes a favorite; removing a missing one is a no-op
func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.exists(ctx, recipeID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.RecipeFavorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to unfavorite recipe: %w", err)
	}
	return nil
}

// GetFavoriteRecipes lists the user's favorites, most recently favorited first
func (s *RecipeService) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	err := withAuthor(s.db.WithContext(ctx)).
		Joins("JOIN recipe_favorites ON recipe_favorites.recipe_id = recipes.id").
		Where("recipe_favorites.user_id = ?", userID).
		Order("recipe_favorites.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) exists(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up recipe: %w", err)
	}
	if count == 0 {
		return apperr.NotFound("Recipe")
	}
	return nil
}

// Catalogue returns the browse facets. Categories also include any
// category present in the database that the starter list lacks.
func (s *RecipeService) Catalogue(ctx context.Context) (*types.Catalogue, error) {
	var stored []string
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Distinct().Order("category").Pluck("category", &stored).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := append([]string{}, catalog.Categories...)
	for _, c := range stored {
		if !containsFold(categories, c) {
			categories = append(categories, c)
		}
	}

	return &types.Catalogue{
		Categories:     categories,
		Difficulties:   append([]string{}, catalog.Difficulties...),
		DietaryOptions: append([]string{}, catalog.DietaryOptions...),
	}, nil
}

func containsFold(values []string, v string) bool {
	for _, existing := range values {
		if strings.EqualFold(existing, v) {
			return true
		}
	}
	return false
}
