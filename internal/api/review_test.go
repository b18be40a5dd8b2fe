package api_test

import (
	"net/http"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewEndpoints(t *testing.T) {
	env := setupEnv(t)
	user, token := env.userWithToken(t)
	_, otherToken := env.userWithToken(t)
	recipe := testhelpers.CreateRecipe(t, env.db, nil)

	w := env.do(t, http.MethodPost, path("/recipes/%s/reviews", recipe.ID), token, map[string]interface{}{"rating": 4, "comment": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please provide both a rating and comment", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, path("/recipes/%s/reviews", recipe.ID), token, map[string]interface{}{"rating": 9, "comment": "Wow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, path("/recipes/%s/reviews", recipe.ID), token, map[string]interface{}{"rating": 5, "comment": "Lovely"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, user.Username, decode(t, w)["user_name"])

	w = env.do(t, http.MethodPost, path("/recipes/%s/reviews", recipe.ID), otherToken, map[string]interface{}{"rating": 2, "comment": "Too salty"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, path("/recipes/%s/reviews", recipe.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["reviews"], 2)

	w = env.do(t, http.MethodGet, path("/recipes/%s", recipe.ID), "", nil)
	updated := decode(t, w)
	assert.Equal(t, 3.5, updated["rating"])
	assert.Equal(t, float64(2), updated["review_count"])

	w = env.do(t, http.MethodGet, path("/recipes/00000000-0000-0000-0000-000000000001/reviews"), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssistantSearch(t *testing.T) {
	env := setupEnv(t)
	testhelpers.CreateRecipe(t, env.db, nil, func(r *model.Recipe) {
		r.Title = "Vegetarian Lasagne"
		r.Description = "Layers of spinach and ricotta"
		r.Tags = model.JSONBStringArray{"comfort"}
	})
	testhelpers.CreateRecipe(t, env.db, nil, func(r *model.Recipe) {
		r.Title = "Beef Tacos"
		r.Description = "Crispy shells"
		r.Tags = model.JSONBStringArray{"mexican"}
	})

	w := env.do(t, http.MethodPost, path("/search/assistant"), "", map[string]string{"query": "a quick vegetarian pasta dinner"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.Contains(t, result["keywords"], "vegetarian")
	assert.Contains(t, result["keywords"], "pasta")
	results := result["results"].(map[string]interface{})
	assert.Equal(t, float64(1), results["total"])
	recipes := results["recipes"].([]interface{})
	assert.Equal(t, "Vegetarian Lasagne", recipes[0].(map[string]interface{})["title"])

	w = env.do(t, http.MethodPost, path("/search/assistant"), "", map[string]string{"query": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
