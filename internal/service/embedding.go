package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/pageza/recipe-realm/backend/internal/model"
	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDims is the width of the recipe embedding column
const EmbeddingDims = 256

// Tokenize lowercases text and splits it into words of two or more letters or digits
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			words = append(words, f)
		}
	}
	return words
}

// GenerateEmbedding hashes the words of text into a signed term-frequency
// vector of EmbeddingDims buckets and scales it to unit length. Texts that
// share words point in similar directions; text without words maps to zero.
func GenerateEmbedding(text string) pgvector.Vector {
	values := make([]float64, EmbeddingDims)
	for _, word := range Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		sum := h.Sum32()

		sign := 1.0
		if sum&(1<<31) != 0 {
			sign = -1
		}
		values[sum%EmbeddingDims] += sign
	}

	var norm float64
	for _, v := range values {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, EmbeddingDims)
	if norm > 0 {
		for i, v := range values {
			out[i] = float32(v / norm)
		}
	}
	return pgvector.NewVector(out)
}

// RecipeEmbedding embeds the searchable text of a recipe
func RecipeEmbedding(r *model.Recipe) pgvector.Vector {
	parts := []string{r.Title, r.Description, r.Category}
	parts = append(parts, r.Tags...)
	parts = append(parts, r.Ingredients...)
	return GenerateEmbedding(strings.Join(parts, " "))
}
