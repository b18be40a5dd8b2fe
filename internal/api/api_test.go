package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/api"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecret = "api-test-secret"

type fakeImageStore struct {
	keys []string
}

func (f *fakeImageStore) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.keys = append(f.keys, key)
	return "https://images.test/" + key, nil
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	images *fakeImageStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	logger := zap.NewNop()

	auth := service.NewAuthService(db, testSecret, time.Hour)
	recipes := service.NewRecipeService(db, nil, logger)
	images := &fakeImageStore{}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	api.RegisterRoutes(router, api.Dependencies{
		Auth:          auth,
		Recipes:       recipes,
		Reviews:       service.NewReviewService(db, recipes, nil, logger),
		MealPlans:     service.NewMealPlanService(db, logger),
		Cooking:       service.NewCookingService(db, recipes, service.NewMemorySessionStore(), logger),
		Analytics:     service.NewAnalyticsService(db),
		Assistant:     service.NewAssistantService(recipes, 20),
		Images:        service.NewImageService(images, recipes, logger),
		Metrics:       middleware.NewMetrics(),
		Pagination:    api.Pagination{DefaultPageSize: 20, MaxPageSize: 100},
		CreateLimiter: middleware.NewLocalRateLimiter(middleware.RecipeCreationLimit(3, time.Hour)),
		ModifyLimiter: middleware.NewLocalRateLimiter(middleware.RecipeModificationLimit(10, time.Hour)),
	})

	return &testEnv{router: router, db: db, auth: auth, images: images}
}

// userWithToken creates a user and signs a token for it
func (e *testEnv) userWithToken(t *testing.T) (*model.User, string) {
	t.Helper()
	user := testhelpers.CreateUser(t, e.db)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, path, token string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func recipeBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":        title,
		"description":  "A quick weeknight dish",
		"image":        "/assets/pasta-dish.jpg",
		"cook_time":    25,
		"servings":     4,
		"difficulty":   "easy",
		"category":     "Pasta",
		"ingredients":  []string{"400g pasta", "2 cloves garlic"},
		"instructions": []string{"Boil the pasta", "Mix with garlic"},
		"tags":         []string{"quick"},
		"nutrition": map[string]float64{
			"calories": 520, "protein": 18, "carbs": 65, "fat": 22, "fiber": 3, "sugar": 8,
		},
		"dietary_restrictions": []string{"vegetarian"},
	}
}

func path(format string, args ...interface{}) string {
	return fmt.Sprintf("/api/v1"+format, args...)
}
