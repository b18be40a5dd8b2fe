package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipesAreComplete(t *testing.T) {
	for _, seed := range Recipes() {
		r := seed.Recipe
		assert.NotEmpty(t, seed.Author, r.Title)
		assert.NotEmpty(t, r.Ingredients, r.Title)
		assert.NotEmpty(t, r.Instructions, r.Title)
		assert.Positive(t, r.CookTime, r.Title)
		assert.Positive(t, r.Servings, r.Title)
		assert.Contains(t, Categories, r.Category, r.Title)
		assert.Contains(t, Difficulties, r.Difficulty, r.Title)
		for _, d := range r.DietaryRestrictions {
			assert.Contains(t, DietaryOptions, d, r.Title)
		}
	}
}

func TestRecipesReturnsCopies(t *testing.T) {
	first := Recipes()
	first[0].Recipe.Title = "changed"
	assert.Equal(t, "Creamy Basil Pasta", Recipes()[0].Recipe.Title)
}
