package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/service"
)

// imageField is the multipart form field carrying the file
const imageField = "image"

// UploadImage stores a multipart image for the recipe and returns the updated recipe
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		fail(c, apperr.Internal("Image storage is not configured"), "Recipe")
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "Recipe")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)
	fileHeader, err := c.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, apperr.BadRequest("Image exceeds the 5MB limit"), "Recipe")
			return
		}
		fail(c, apperr.BadRequest("An image file is required in the \"image\" field").WithCause(err), "Recipe")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	defer file.Close()

	recipe, err := h.imageService.UploadRecipeImage(c.Request.Context(), userID, id, file)
	if err != nil {
		fail(c, err, "Recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}
