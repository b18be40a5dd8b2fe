package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"gorm.io/gorm"
)

const (
	unknownRecipeName     = "Unknown Recipe"
	unknownRecipeCategory = "Other"
	mostCookedLimit       = 5
	favoriteRecipesLimit  = 3
	trendDays             = 7
)

type RecipeCount struct {
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Category string `json:"category"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DailyCooking struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Sessions    int    `json:"sessions"`
	AvgDuration int    `json:"avg_duration"`
}

// CookingAnalytics summarizes a user's cooking history
type CookingAnalytics struct {
	TotalSessions     int             `json:"total_sessions"`
	CompletedSessions int             `json:"completed_sessions"`
	AvgCookingTime    int             `json:"avg_cooking_time"`
	MostCooked        []RecipeCount   `json:"most_cooked"`
	FavoriteRecipes   []model.Recipe  `json:"favorite_recipes"`
	Categories        []CategoryCount `json:"categories"`
	Last7Days         []DailyCooking  `json:"last_7_days"`
}

type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// roundHalfUp rounds .5 upwards, matching how the dashboard figures are displayed
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func average(durations []int) int {
	if len(durations) == 0 {
		return 0
	}
	sum := 0
	for _, d := range durations {
		sum += d
	}
	return roundHalfUp(float64(sum) / float64(len(durations)))
}

// Summarize computes the analytics for userID
func (s *AnalyticsService) Summarize(ctx context.Context, userID uuid.UUID) (*CookingAnalytics, error) {
	var sessions []model.CookingSession
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("started_at ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to load cooking sessions: %w", err)
	}

	out := &CookingAnalytics{
		TotalSessions:   len(sessions),
		MostCooked:      []RecipeCount{},
		FavoriteRecipes: []model.Recipe{},
	}

	durations := make([]int, 0, len(sessions))
	counts := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, session := range sessions {
		if session.Completed {
			out.CompletedSessions++
		}
		durations = append(durations, session.Duration)
		if counts[session.RecipeID] == 0 {
			order = append(order, session.RecipeID)
		}
		counts[session.RecipeID]++
	}
	out.AvgCookingTime = average(durations)

	// ties keep first-cooked order
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	recipes := make(map[uuid.UUID]*model.Recipe)
	if len(order) > 0 {
		var found []model.Recipe
		if err := s.db.WithContext(ctx).Where("id IN ?", order).Find(&found).Error; err != nil {
			return nil, fmt.Errorf("failed to load cooked recipes: %w", err)
		}
		for i := range found {
			recipes[found[i].ID] = &found[i]
		}
	}

	for i, id := range order {
		recipe := recipes[id]
		if i < mostCookedLimit {
			entry := RecipeCount{Name: unknownRecipeName, Count: counts[id], Category: unknownRecipeCategory}
			if recipe != nil {
				entry.Name = recipe.Title
				entry.Category = recipe.Category
			}
			out.MostCooked = append(out.MostCooked, entry)
		}
		if i < favoriteRecipesLimit && recipe != nil {
			out.FavoriteRecipes = append(out.FavoriteRecipes, *recipe)
		}
	}

	categories, err := s.categoryDistribution(ctx)
	if err != nil {
		return nil, err
	}
	out.Categories = categories
	out.Last7Days = s.lastDays(sessions)
	return out, nil
}

func (s *AnalyticsService) categoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	categories := []CategoryCount{}
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("category AS name, COUNT(*) AS value").
		Group("category").
		Order("category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	return categories, nil
}

// lastDays buckets sessions by UTC start date, oldest day first
func (s *AnalyticsService) lastDays(sessions []model.CookingSession) []DailyCooking {
	today := s.now().UTC()
	byDate := make(map[string][]int)
	for _, session := range sessions {
		date := session.StartedAt.UTC().Format(model.WeekLayout)
		byDate[date] = append(byDate[date], session.Duration)
	}

	days := make([]DailyCooking, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		date := day.Format(model.WeekLayout)
		days = append(days, DailyCooking{
			Date:        date,
			Weekday:     day.Format("Mon"),
			Sessions:    len(byDate[date]),
			AvgDuration: average(byDate[date]),
		})
	}
	return days
}
