package domain_test

import (
	"testing"

	"github.com/2loga/logbeauty/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFromDocument(t *testing.T) {

	t.Run("TypedFields", func(t *testing.T) {
		doc := domain.ProductDocument{
			ID: "p1",
			Fields: map[string]any{
				"name":        "Blush",
				"description": "matte finish",
				"price":       25.5,
				"imageUrl":    "https://img.example/blush.png",
				"rating":      int64(4),
				"isNew":       false,
				"stock":       int64(0),
			},
		}

		p := domain.ProductFromDocument(doc)

		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, "Blush", p.Name)
		assert.Equal(t, "matte finish", p.Description)
		assert.Equal(t, 25.5, p.Price)
		assert.Equal(t, "https://img.example/blush.png", p.ImageURL)
		assert.Equal(t, 4, p.Rating)
		assert.False(t, p.IsNew)
		assert.Equal(t, 0, p.Stock)
		assert.False(t, p.InStock())
	})

	t.Run("StringNumerics", func(t *testing.T) {
		// The store enforces no schema: numbers may arrive as strings.
		doc := domain.ProductDocument{
			ID: "p2",
			Fields: map[string]any{
				"name":   "Aurora",
				"price":  "40",
				"rating": " 5 ",
				"stock":  "3",
				"isNew":  "true",
			},
		}

		p := domain.ProductFromDocument(doc)

		assert.Equal(t, 40.0, p.Price)
		assert.Equal(t, 5, p.Rating)
		assert.Equal(t, 3, p.Stock)
		assert.True(t, p.IsNew)
		assert.True(t, p.InStock())
	})

	t.Run("MalformedFieldsFallToZero", func(t *testing.T) {
		doc := domain.ProductDocument{
			ID: "p3",
			Fields: map[string]any{
				"name":   "Velvet",
				"price":  "not-a-number",
				"rating": nil,
				"stock":  []string{"nope"},
				"isNew":  "maybe",
			},
		}

		p := domain.ProductFromDocument(doc)

		assert.Equal(t, 0.0, p.Price)
		assert.Equal(t, 0, p.Rating)
		assert.Equal(t, 0, p.Stock)
		assert.False(t, p.IsNew)
	})

	t.Run("Idempotent", func(t *testing.T) {
		doc := domain.ProductDocument{
			ID: "p4",
			Fields: map[string]any{
				"name":   "Silk",
				"price":  "19.9",
				"rating": float64(3),
				"stock":  "7",
				"isNew":  int64(1),
			},
		}

		first := domain.ProductFromDocument(doc)
		second := domain.ProductFromDocument(doc)
		require.Equal(t, first, second)
	})
}

func TestFormFromProduct(t *testing.T) {
	p := domain.Product{
		ID:          "p1",
		Name:        "Blush",
		Description: "matte finish",
		Price:       25.5,
		ImageURL:    "https://img.example/blush.png",
		Rating:      4,
		IsNew:       true,
		Stock:       2,
	}

	form := domain.FormFromProduct(p)

	assert.Equal(t, "Blush", form.Name)
	assert.Equal(t, "25.5", form.Price)
	assert.Equal(t, "4", form.Rating)
	assert.Equal(t, "2", form.Stock)
	assert.Equal(t, p.ImageURL, form.ImageURL)
	assert.Nil(t, form.Image)

	form.Reset()
	assert.Equal(t, domain.ProductForm{}, form)
}
