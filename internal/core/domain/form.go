package domain

import "strconv"

type (
	// An ImageFile is a binary image attached to the product form in place
	// of a direct URL.
	ImageFile struct {
		Name string
		Data []byte
	}

	// A ProductForm carries raw admin input for create and update
	// mutations. Numeric fields stay strings until validation parses them.
	ProductForm struct {
		Name        string
		Description string
		Price       string
		ImageURL    string
		Image       *ImageFile
		Rating      string
		IsNew       bool
		Stock       string
	}
)

// Reset restores the form to its empty defaults.
func (f *ProductForm) Reset() {
	*f = ProductForm{}
}

// FormFromProduct preloads a form with an existing product's values for
// editing. The attached image is always empty, keeping the current
// ImageURL unless the admin supplies a new source.
func FormFromProduct(p Product) ProductForm {
	return ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       formatFloat(p.Price),
		ImageURL:    p.ImageURL,
		Rating:      formatInt(p.Rating),
		IsNew:       p.IsNew,
		Stock:       formatInt(p.Stock),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
