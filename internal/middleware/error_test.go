package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(ErrorHandler(zap.New(core)))
	router.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperr.From(gorm.ErrRecordNotFound, "Recipe"))
	})
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("connection refused"))
	})
	router.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/missing", http.StatusNotFound, `{"code":"NOT_FOUND","error":"Recipe not found"}`},
		{"/boom", http.StatusInternalServerError, `{"code":"INTERNAL_ERROR","error":"Server error"}`},
		{"/written", http.StatusTeapot, `{"ok":true}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, tt.path)
		assert.JSONEq(t, tt.body, w.Body.String(), tt.path)
	}

	// internal causes reach the log, not the client
	assert.Equal(t, 2, logs.Len())
}
