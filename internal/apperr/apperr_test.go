package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusCodes(t *testing.T) {
	cases := map[*AppError]int{
		BadRequest("bad"):       http.StatusBadRequest,
		Validation("title"):     http.StatusBadRequest,
		Unauthorized(""):        http.StatusUnauthorized,
		Forbidden(""):           http.StatusForbidden,
		NotFound("Recipe"):      http.StatusNotFound,
		Conflict("dup"):         http.StatusConflict,
		TooManyRequests("slow"): http.StatusTooManyRequests,
		Internal(""):            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.StatusCode(), err.Error())
	}
}

func TestFromMapsRecordNotFound(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)

	got := From(wrapped, "Recipe")
	assert.Equal(t, CodeNotFound, got.Code)
	assert.Equal(t, "Recipe not found", got.Message)
	assert.True(t, errors.Is(got, gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(wrapped))
}

func TestFromKeepsAppError(t *testing.T) {
	orig := Forbidden("only the author can edit this recipe")
	got := From(fmt.Errorf("update: %w", orig), "Recipe")
	assert.Same(t, orig, got)
}

func TestFromUnknownIsInternal(t *testing.T) {
	got := From(errors.New("connection reset"), "Recipe")
	assert.Equal(t, CodeInternal, got.Code)
	assert.Equal(t, "Server error", got.Message)
	assert.Nil(t, From(nil, "Recipe"))
}

func TestFromMapsDuplicateKeyToConflict(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)

	got := From(wrapped, "User")
	assert.Equal(t, CodeConflict, got.Code)
	assert.Equal(t, "User already exists", got.Message)
	assert.Equal(t, http.StatusConflict, got.StatusCode())
	assert.True(t, errors.Is(got, gorm.ErrDuplicatedKey))

	assert.Equal(t, "Resource already exists", From(gorm.ErrDuplicatedKey, "").Message)
}
