package api_test

import (
	"net/http"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealPlanAndGroceryList(t *testing.T) {
	env := setupEnv(t)
	_, token := env.userWithToken(t)
	_, otherToken := env.userWithToken(t)

	pasta := testhelpers.CreateRecipe(t, env.db, nil, func(r *model.Recipe) {
		r.Ingredients = model.JSONBStringArray{"400g pasta", "2 cloves garlic"}
	})
	salad := testhelpers.CreateRecipe(t, env.db, nil, func(r *model.Recipe) {
		r.Ingredients = model.JSONBStringArray{"1 cucumber", "1 clove garlic"}
	})

	w := env.do(t, http.MethodGet, path("/meal-plans/current?week=2024-03-06"), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode(t, w)
	planID := plan["id"].(string)
	assert.Equal(t, "2024-03-04", plan["week"])
	assert.Len(t, plan["meals"], 7)

	w = env.do(t, http.MethodGet, path("/meal-plans/current?week=2024-03-10"), token, nil)
	assert.Equal(t, planID, decode(t, w)["id"])

	w = env.do(t, http.MethodGet, path("/meal-plans/current?week=March"), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, path("/meal-plans/%s/meals", planID), token, map[string]string{
		"day": "Funday", "meal_time": "dinner", "recipe_id": pasta.ID.String(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["details"], "day must be a day from Monday to Sunday")

	for _, slot := range []struct{ day, meal, recipe string }{
		{"Monday", "dinner", pasta.ID.String()},
		{"Tuesday", "lunch", salad.ID.String()},
	} {
		w = env.do(t, http.MethodPut, path("/meal-plans/%s/meals", planID), token, map[string]string{
			"day": slot.day, "meal_time": slot.meal, "recipe_id": slot.recipe,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	meals := decode(t, w)["meals"].(map[string]interface{})
	assert.Equal(t, pasta.ID.String(), meals["Monday"].(map[string]interface{})["dinner"])

	w = env.do(t, http.MethodPut, path("/meal-plans/%s/meals", planID), otherToken, map[string]string{
		"day": "Monday", "meal_time": "lunch", "recipe_id": pasta.ID.String(),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, path("/meal-plans/%s/grocery-list", planID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	list := decode(t, w)
	listID := list["id"].(string)
	items := list["items"].([]interface{})
	require.Len(t, items, 4)
	garlic := items[1].(map[string]interface{})
	assert.Equal(t, "cloves garlic", garlic["name"])
	byCategory := list["by_category"].(map[string]interface{})
	assert.Contains(t, byCategory, "Grains & Bread")

	w = env.do(t, http.MethodGet, path("/grocery-lists/%s", listID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, item := range items {
		id := item.(map[string]interface{})["id"].(string)
		w = env.do(t, http.MethodPatch, path("/grocery-lists/%s/items/%s/toggle", listID, id), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Equal(t, true, decode(t, w)["completed"])

	w = env.do(t, http.MethodPatch, path("/grocery-lists/%s/items/item-99/toggle", listID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, path("/meal-plans/%s/meals/Monday/dinner", planID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	meals = decode(t, w)["meals"].(map[string]interface{})
	assert.Empty(t, meals["Monday"])
}
