package service_test

import (
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestBreakdownNutrition(t *testing.T) {
	recipe := &model.Recipe{
		Servings:  4,
		Nutrition: model.Nutrition{Calories: 520, Protein: 18, Carbs: 65, Fat: 22, Fiber: 3, Sugar: 8},
	}

	got := service.BreakdownNutrition(recipe)
	assert.Equal(t, service.PerServing{Calories: 130, Protein: 5, Carbs: 16, Fat: 6, Fiber: 1, Sugar: 2}, got.PerServing)

	// 5g*4 + 16g*4 + 6g*9 = 138 kcal
	assert.Equal(t, "Protein", got.Macros[0].Name)
	assert.Equal(t, 20, got.Macros[0].Calories)
	assert.InDelta(t, 14.5, got.Macros[0].Percent, 0.001)
	assert.InDelta(t, 46.4, got.Macros[1].Percent, 0.001)
	assert.InDelta(t, 39.1, got.Macros[2].Percent, 0.001)
}

func TestBreakdownNutritionGuardsServings(t *testing.T) {
	got := service.BreakdownNutrition(&model.Recipe{Nutrition: model.Nutrition{Calories: 100}})
	assert.Equal(t, 1, got.Servings)
	assert.Equal(t, 100, got.PerServing.Calories)
	for _, m := range got.Macros {
		assert.Zero(t, m.Percent)
	}
}
