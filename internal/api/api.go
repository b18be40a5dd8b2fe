// Package api exposes the HTTP handlers of the recipe service.
package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/middleware"
)

// fail hands err to the error middleware and stops the chain
func fail(c *gin.Context, err error, resource string) {
	_ = c.Error(apperr.From(err, resource))
	c.Abort()
}

// parseID reads a uuid route parameter
func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		fail(c, apperr.BadRequest(fmt.Sprintf("Invalid %s id", strings.ToLower(resource))), resource)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user id set by the auth middleware
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		fail(c, apperr.Unauthorized(""), "User")
	}
	return userID, ok
}

// bindJSON decodes and validates the body, reporting failures as 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, validationError(err), "Request")
		return false
	}
	return true
}

func validationError(err error) *apperr.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.BadRequest("Invalid request body").WithCause(err)
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeField(fe))
	}
	return apperr.Validation(strings.Join(details, "; ")).WithCause(err)
}

func describeField(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "min", "gt", "gte":
		return fmt.Sprintf("%s must be at least %s", field, minBound(fe))
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "difficulty":
		return field + " must be Easy, Medium or Hard"
	case "weekday":
		return field + " must be a day from Monday to Sunday"
	case "mealtime":
		return field + " must be breakfast, lunch or dinner"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func minBound(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return "more than " + fe.Param()
	}
	return fe.Param()
}
