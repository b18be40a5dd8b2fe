package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsSummarize(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateUser(t, db)
	pasta := testhelpers.CreateRecipe(t, db, nil, func(r *model.Recipe) { r.Title = "Pasta"; r.Category = "Pasta" })
	cake := testhelpers.CreateRecipe(t, db, nil, func(r *model.Recipe) { r.Title = "Cake"; r.Category = "Dessert" })
	missing := uuid.New()

	today := time.Date(2024, 3, 17, 12, 0, 0, 0, time.UTC)
	sessions := []model.CookingSession{
		{UserID: user.ID, RecipeID: cake.ID, StartedAt: today.AddDate(0, 0, -10), Duration: 40, Completed: true},
		{UserID: user.ID, RecipeID: pasta.ID, StartedAt: today.AddDate(0, 0, -2), Duration: 20, Completed: true},
		{UserID: user.ID, RecipeID: pasta.ID, StartedAt: today.AddDate(0, 0, -2).Add(time.Hour), Duration: 25},
		{UserID: user.ID, RecipeID: missing, StartedAt: today, Duration: 10, Completed: true},
		{UserID: uuid.New(), RecipeID: cake.ID, StartedAt: today, Duration: 99},
	}
	require.NoError(t, db.Create(&sessions).Error)

	svc := NewAnalyticsService(db)
	svc.now = func() time.Time { return today }

	got, err := svc.Summarize(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalSessions)
	assert.Equal(t, 3, got.CompletedSessions)
	assert.Equal(t, 24, got.AvgCookingTime) // 95 / 4 = 23.75

	assert.Equal(t, []RecipeCount{
		{Name: "Pasta", Count: 2, Category: "Pasta"},
		{Name: "Cake", Count: 1, Category: "Dessert"},
		{Name: unknownRecipeName, Count: 1, Category: unknownRecipeCategory},
	}, got.MostCooked)

	require.Len(t, got.FavoriteRecipes, 2)
	assert.Equal(t, pasta.ID, got.FavoriteRecipes[0].ID)

	assert.Equal(t, []CategoryCount{{Name: "Dessert", Value: 1}, {Name: "Pasta", Value: 1}}, got.Categories)

	require.Len(t, got.Last7Days, 7)
	assert.Equal(t, "2024-03-11", got.Last7Days[0].Date)
	assert.Equal(t, "Mon", got.Last7Days[0].Weekday)
	assert.Equal(t, DailyCooking{Date: "2024-03-15", Weekday: "Fri", Sessions: 2, AvgDuration: 23}, got.Last7Days[4])
	assert.Equal(t, DailyCooking{Date: "2024-03-17", Weekday: "Sun", Sessions: 1, AvgDuration: 10}, got.Last7Days[6])
}

func TestAnalyticsEmpty(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	got, err := NewAnalyticsService(db).Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, got.TotalSessions)
	assert.Zero(t, got.AvgCookingTime)
	assert.Empty(t, got.MostCooked)
	assert.Len(t, got.Last7Days, 7)
}
