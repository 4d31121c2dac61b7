// Package model defines the core domain models used throughout the application.
package model

// DefaultCurrency is applied to every catalog product.
const DefaultCurrency = "SGD"

// Image is a product image reference.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Dimensions are a product's footprint and height in meters.
type Dimensions struct {
	Unit   string  `json:"unit"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Product is an immutable catalog entry.
type Product struct {
	OriginalPrice       *float64   `json:"originalPrice,omitempty"`
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	DetailedDescription string     `json:"detailedDescription,omitempty"`
	Currency            string     `json:"currency"`
	Category            Category   `json:"category"`
	Delivery            string     `json:"delivery"`
	ExternalURL         string     `json:"externalUrl"`
	Images              []Image    `json:"images"`
	Tags                []string   `json:"tags"`
	Dimensions          Dimensions `json:"dimensions"`
	Price               float64    `json:"price"`
	InStock             bool       `json:"inStock"`
}

// Footprint returns the floor area the product covers in square meters.
func (p Product) Footprint() float64 {
	return p.Dimensions.Width * p.Dimensions.Depth
}
