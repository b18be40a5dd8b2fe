package api_test

import (
	"net/http"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, path("/users/register"), "", map[string]string{
		"username": "basilfan", "email": "Basil@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "basilfan", user["username"])
	assert.Equal(t, "basil@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	w = env.do(t, http.MethodPost, path("/users/register"), "", map[string]string{
		"username": "basilfan", "email": "other@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["error"])

	w = env.do(t, http.MethodPost, path("/users/register"), "", map[string]string{
		"username": "shorty", "email": "not-an-email", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	invalid := decode(t, w)
	assert.Equal(t, "VALIDATION_FAILED", invalid["code"])
	assert.Contains(t, invalid["details"], "email must be a valid email")
	assert.Contains(t, invalid["details"], "password must be at least 6")

	tests := []struct {
		name   string
		body   map[string]string
		status int
		errMsg string
	}{
		{"by username", map[string]string{"username": "basilfan", "password": "secret1"}, http.StatusOK, ""},
		{"by email", map[string]string{"email": "basil@example.com", "password": "secret1"}, http.StatusOK, ""},
		{"wrong password", map[string]string{"username": "basilfan", "password": "nope123"}, http.StatusBadRequest, "Invalid credentials"},
		{"unknown user", map[string]string{"username": "ghost", "password": "secret1"}, http.StatusBadRequest, "User not found"},
		{"no identifier", map[string]string{"password": "secret1"}, http.StatusBadRequest, "Username or email is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, path("/users/login"), "", tt.body)
			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, resp["error"])
				return
			}
			assert.Equal(t, "Logged in successfully", resp["message"])
			assert.NotEmpty(t, resp["token"])
		})
	}
}

func TestCurrentUserEndpoints(t *testing.T) {
	env := setupEnv(t)
	user, token := env.userWithToken(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path("/users/me"), "", nil).Code)

	w := env.do(t, http.MethodGet, path("/users/me"), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.Username, decode(t, w)["username"])

	w = env.do(t, http.MethodPut, path("/users/me"), token, map[string]string{"username": "renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "renamed", decode(t, w)["username"])

	w = env.do(t, http.MethodPost, path("/users/login"), "", map[string]string{
		"username": "renamed", "password": testhelpers.TestPassword,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, path("/users/me"), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully", decode(t, w)["message"])

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path("/users/me"), token, nil).Code)
}

func TestDeletedAccountTokenIsRejected(t *testing.T) {
	env := setupEnv(t)
	_, token := env.userWithToken(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path("/users/me"), token, nil).Code)

	w := env.do(t, http.MethodPost, path("/recipes"), token, recipeBody("Ghost Stew"))
	assert.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path("/meal-plans/current"), token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path("/favorites"), token, nil).Code)

	var count int64
	require.NoError(t, env.db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewUsesCurrentUsername(t *testing.T) {
	env := setupEnv(t)
	user, token := env.userWithToken(t)
	recipe := testhelpers.CreateRecipe(t, env.db, &user.ID)

	w := env.do(t, http.MethodPut, path("/users/me"), token, map[string]string{"username": "renamed_cook"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, path("/recipes/%s/reviews", recipe.ID), token, map[string]interface{}{
		"rating": 4, "comment": "Still tasty",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "renamed_cook", decode(t, w)["user_name"])
}
