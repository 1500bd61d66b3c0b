package domain

import (
	"strconv"
	"strings"
)

type (
	// A Product is the application's read-only copy of a catalog document.
	// The remote store owns the entity; ID is assigned on creation and
	// never changes.
	Product struct {
		ID          string
		Name        string
		Description string
		Price       float64
		ImageURL    string
		Rating      int
		IsNew       bool
		Stock       int
	}

	// A ProductDocument is a raw, schema-less document as delivered by the
	// remote catalog store.
	ProductDocument struct {
		ID     string
		Fields map[string]any
	}

	// ProductFields is the outgoing document payload for create and update
	// mutations.
	ProductFields map[string]any
)

// InStock reports whether the product has remaining stock. Zero stock only
// changes display treatment, it never blocks anything.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// ProductFromDocument decodes a raw store document into a Product.
//
// The store does not enforce a schema: numeric fields may arrive as strings
// or as any numeric width, so every field is coerced defensively. Coercion
// is deterministic, decoding the same document twice yields equal values.
func ProductFromDocument(d ProductDocument) Product {
	return Product{
		ID:          d.ID,
		Name:        coerceString(d.Fields["name"]),
		Description: coerceString(d.Fields["description"]),
		Price:       coerceFloat(d.Fields["price"]),
		ImageURL:    coerceString(d.Fields["imageUrl"]),
		Rating:      coerceInt(d.Fields["rating"]),
		IsNew:       coerceBool(d.Fields["isNew"]),
		Stock:       coerceInt(d.Fields["stock"]),
	}
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return false
	}
}
