package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/pageza/recipe-realm/backend/internal/testhelpers"
	"github.com/pageza/recipe-realm/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.From(err, "")
	assert.Equal(t, code, appErr.Code, err.Error())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &types.RegisterRequest{
		Username: "chefmarco",
		Email:    "Marco@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "marco@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "chefmarco", claims.Username)

	t.Run("by username", func(t *testing.T) {
		got, _, err := svc.Login(ctx, "chefmarco", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("by email", func(t *testing.T) {
		got, _, err := svc.Login(ctx, "marco@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "chefmarco", "nope")
		requireCode(t, err, apperr.CodeBadRequest)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "secret1")
		requireCode(t, err, apperr.CodeBadRequest)
		assert.Contains(t, err.Error(), "User not found")
	})
}

func TestAuthRegisterDuplicate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, &types.RegisterRequest{Username: "a", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, &types.RegisterRequest{Username: "a", Email: "other@example.com", Password: "secret1"})
	requireCode(t, err, apperr.CodeConflict)

	_, _, err = svc.Register(ctx, &types.RegisterRequest{Username: "b", Email: "A@example.com", Password: "secret1"})
	requireCode(t, err, apperr.CodeConflict)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	issuer := service.NewAuthService(db, "one-secret", time.Hour)
	verifier := service.NewAuthService(db, "other-secret", time.Hour)

	token, err := issuer.GenerateToken(&model.User{ID: testhelpers.CreateUser(t, db).ID, Username: "x"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)

	_, err = issuer.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthUpdateAndDeleteUser(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db)
	other := testhelpers.CreateUser(t, db)
	recipe := testhelpers.CreateRecipe(t, db, &user.ID)

	_, err := svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Username: strPtr(other.Username)})
	requireCode(t, err, apperr.CodeConflict)

	updated, err := svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{
		Username: strPtr("renamed"),
		Password: strPtr("newpass1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)

	_, _, err = svc.Login(ctx, "renamed", "newpass1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = svc.GetUser(ctx, user.ID)
	requireCode(t, err, apperr.CodeNotFound)

	var kept model.Recipe
	require.NoError(t, db.First(&kept, "id = ?", recipe.ID).Error)
	assert.Nil(t, kept.AuthorID)
}

func TestValidateTokenTracksAccount(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, &types.RegisterRequest{Username: "lena", Email: "lena@example.com", Password: "secret1"})
	require.NoError(t, err)

	renamed := "lena_cooks"
	_, err = svc.UpdateUser(ctx, user.ID, &types.UpdateUserRequest{Username: &renamed})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "lena_cooks", claims.Username)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = svc.ValidateToken(token)
	assert.EqualError(t, err, "token user no longer exists")
}

func TestDuplicateUserInsertIsConflict(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	existing := testhelpers.CreateUser(t, db)

	// what a registration that loses the availability race hits
	dup := model.User{Username: existing.Username, Email: "other@example.com", PasswordHash: "x"}
	err := db.Create(&dup).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	appErr := apperr.From(err, "User")
	assert.Equal(t, apperr.CodeConflict, appErr.Code)
	assert.Equal(t, "User already exists", appErr.Message)
}
