package integration

import (
	"context"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/seed"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeededRecipesRankBySimilarity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	_, err := seed.New(db, zap.NewNop()).Run(ctx, seed.Options{Password: "seedpass"})
	require.NoError(t, err)

	var missing int64
	require.NoError(t, db.Model(&model.Recipe{}).Where("embedding IS NULL").Count(&missing).Error)
	assert.Zero(t, missing)

	page, err := service.NewRecipeService(db, nil, zap.NewNop()).ListRecipes(ctx, &types.RecipeFilter{Search: "fresh"})
	require.NoError(t, err)
	require.NotEmpty(t, page.Recipes)
	for _, r := range page.Recipes {
		assert.Contains(t, r.Title+" "+r.Description, "resh")
	}
}
