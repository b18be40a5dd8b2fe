package service_test

import (
	"math"
	"testing"

	"github.com/pageza/recipe-realm/backend/internal/model"
	"github.com/pageza/recipe-realm/backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestGenerateEmbeddingIsUnitLength(t *testing.T) {
	vec := service.GenerateEmbedding("Creamy Basil Pasta").Slice()
	assert.Len(t, vec, service.EmbeddingDims)
	assert.InDelta(t, 1.0, math.Sqrt(cosine(vec, vec)), 1e-6)

	assert.Equal(t, vec, service.GenerateEmbedding("creamy, basil -- PASTA!").Slice())
	assert.Equal(t, make([]float32, service.EmbeddingDims), service.GenerateEmbedding("a !").Slice())
}

func TestGenerateEmbeddingSeparatesWords(t *testing.T) {
	pasta := service.GenerateEmbedding("pasta").Slice()
	salad := service.GenerateEmbedding("salad").Slice()
	assert.NotEqual(t, pasta, salad)

	query := service.GenerateEmbedding("basil pasta").Slice()
	related := service.GenerateEmbedding("Creamy Basil Pasta with tomatoes").Slice()
	unrelated := service.GenerateEmbedding("Chocolate lava cake").Slice()
	assert.Greater(t, cosine(query, related), cosine(query, unrelated))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"400g", "pasta", "gluten", "free"}, service.Tokenize("400g Pasta, a gluten-free"))
	assert.Empty(t, service.Tokenize(" - "))
}

func TestRecipeEmbeddingUsesTagsAndIngredients(t *testing.T) {
	a := service.RecipeEmbedding(&model.Recipe{Title: "Soup"})
	b := service.RecipeEmbedding(&model.Recipe{Title: "Soup", Tags: model.JSONBStringArray{"spicy"}})
	c := service.RecipeEmbedding(&model.Recipe{Title: "Soup", Ingredients: model.JSONBStringArray{"2 leeks"}})
	assert.NotEqual(t, a.Slice(), b.Slice())
	assert.NotEqual(t, a.Slice(), c.Slice())
}
