package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) Broadcast(event string, payload interface{}) {
	m.Called(event, payload)
}

func TestCreateReviewUpdatesRating(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateUser(t, db)
	recipe := testhelpers.CreateRecipe(t, db, nil)

	hub := &mockBroadcaster{}
	hub.On("Broadcast", service.EventUpdateReviews, mock.AnythingOfType("*model.Review")).Twice()

	recipes := service.NewRecipeService(db, nil, nil)
	svc := service.NewReviewService(db, recipes, hub, nil)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, user.ID, user.Username, recipe.ID, &types.ReviewRequest{Rating: 5, Comment: "Lovely"})
	require.NoError(t, err)
	review, err := svc.CreateReview(ctx, user.ID, user.Username, recipe.ID, &types.ReviewRequest{Rating: 2, Comment: "  Too salty "})
	require.NoError(t, err)
	assert.Equal(t, "Too salty", review.Comment)
	assert.Equal(t, user.Username, review.UserName)

	var stored model.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.InDelta(t, 3.5, stored.Rating, 0.0001)
	assert.Equal(t, 2, stored.ReviewCount)

	reviews, err := svc.ListReviews(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Too salty", reviews[0].Comment)

	hub.AssertExpectations(t)
}

func TestCreateReviewValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateUser(t, db)
	recipe := testhelpers.CreateRecipe(t, db, nil)
	svc := service.NewReviewService(db, service.NewRecipeService(db, nil, nil), nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  types.ReviewRequest
		code apperr.Code
	}{
		{"missing rating", types.ReviewRequest{Comment: "ok"}, apperr.CodeBadRequest},
		{"blank comment", types.ReviewRequest{Rating: 3, Comment: "   "}, apperr.CodeBadRequest},
		{"rating too high", types.ReviewRequest{Rating: 6, Comment: "ok"}, apperr.CodeValidationFailed},
		{"rating negative", types.ReviewRequest{Rating: -1, Comment: "ok"}, apperr.CodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.CreateReview(ctx, user.ID, user.Username, recipe.ID, &req)
			requireCode(t, err, tt.code)
		})
	}

	_, err := svc.CreateReview(ctx, user.ID, user.Username, uuid.New(), &types.ReviewRequest{Rating: 3, Comment: "ok"})
	requireCode(t, err, apperr.CodeNotFound)

	_, err = svc.ListReviews(ctx, uuid.New())
	requireCode(t, err, apperr.CodeNotFound)
}
