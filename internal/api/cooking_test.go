package api_test

import (
	"net/http"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveCookingAndAnalytics(t *testing.T) {
	env := setupEnv(t)
	_, token := env.userWithToken(t)
	_, otherToken := env.userWithToken(t)
	recipe := testhelpers.CreateRecipe(t, env.db, nil, func(r *model.Recipe) {
		r.Instructions = model.JSONBStringArray{"Bake the cake", "Chop the nuts"}
	})

	w := env.do(t, http.MethodPost, path("/recipes/%s/cook", recipe.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	state := decode(t, w)
	sessionID := state["id"].(string)
	assert.Equal(t, float64(50), state["progress"])
	assert.Equal(t, "Step 1: Bake the cake", state["spoken"])
	steps := state["steps"].([]interface{})
	assert.Equal(t, float64(30), steps[0].(map[string]interface{})["duration"])
	assert.Equal(t, float64(5), steps[1].(map[string]interface{})["duration"])

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, path("/cooking/%s", sessionID), otherToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path("/cooking/unknown"), token, nil).Code)

	w = env.do(t, http.MethodPost, path("/cooking/%s/commands", sessionID), token, map[string]string{"command": "start_timer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state = decode(t, w)
	assert.Equal(t, true, state["timer_running"])
	assert.InDelta(t, 1800, state["timer_remaining"], 2)

	w = env.do(t, http.MethodPost, path("/cooking/%s/commands", sessionID), token, map[string]string{"transcript": "OK, next step please"})
	require.Equal(t, http.StatusOK, w.Code)
	state = decode(t, w)
	assert.Equal(t, float64(1), state["current_step"])
	assert.Equal(t, false, state["timer_running"])
	assert.Equal(t, "Step 2: Chop the nuts", state["spoken"])

	w = env.do(t, http.MethodPost, path("/cooking/%s/commands", sessionID), token, map[string]string{"transcript": "sing a song"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, http.MethodPost, path("/cooking/%s/commands", sessionID), token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, path("/cooking/%s", sessionID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100), decode(t, w)["progress"])

	w = env.do(t, http.MethodPost, path("/cooking/%s/finish", sessionID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	finished := decode(t, w)
	assert.Equal(t, false, finished["completed"])
	assert.Equal(t, recipe.ID.String(), finished["recipe_id"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPost, path("/cooking/%s/finish", sessionID), token, nil).Code)

	w = env.do(t, http.MethodGet, path("/analytics"), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode(t, w)
	assert.Equal(t, float64(1), summary["total_sessions"])
	assert.Equal(t, float64(0), summary["completed_sessions"])
	mostCooked := summary["most_cooked"].([]interface{})
	require.Len(t, mostCooked, 1)
	assert.Equal(t, recipe.Title, mostCooked[0].(map[string]interface{})["name"])
	assert.Len(t, summary["last_7_days"], 7)
}
