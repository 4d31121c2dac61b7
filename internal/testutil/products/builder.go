// Package products provides a fluent builder for catalog products in tests.
//
// Example usage:
//
//	items := products.NewBuilder(t).
//		WithSofa("Harper Sofa", 1200).
//		WithTable("Round Table", 400).
//		Build()
//
//	cat := catalog.New(items)
package products

import (
	"fmt"
	"testing"

	"github.com/Veraticus/roomcraft/internal/model"
)

// Builder provides a fluent interface for constructing test products.
// IDs are assigned in insertion order as product-1, product-2, ...
type Builder interface {
	// WithProduct adds a fully specified product; its ID is overwritten.
	WithProduct(p model.Product) Builder

	// WithSofa adds a 2.0 x 0.9 m sofa.
	WithSofa(name string, price float64, tags ...string) Builder

	// WithChair adds a 0.8 x 0.8 m chair.
	WithChair(name string, price float64, tags ...string) Builder

	// WithTable adds a 1.2 x 0.6 m table.
	WithTable(name string, price float64, tags ...string) Builder

	// WithBed adds a 1.6 x 2.0 m bed.
	WithBed(name string, price float64, tags ...string) Builder

	// WithStorage adds a 1.0 x 0.45 m storage unit.
	WithStorage(name string, price float64, tags ...string) Builder

	// WithFixture adds every product of a fixture.
	WithFixture(f Fixture) Builder

	// Build returns the products in insertion order.
	Build() []model.Product
}

type productBuilder struct {
	t        *testing.T
	products []model.Product
}

// NewBuilder creates a new product builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &productBuilder{t: t}
}

func (b *productBuilder) WithProduct(p model.Product) Builder {
	p.ID = fmt.Sprintf("product-%d", len(b.products)+1)
	if p.Currency == "" {
		p.Currency = model.DefaultCurrency
	}
	if p.Dimensions.Unit == "" {
		p.Dimensions.Unit = "meters"
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.InStock = true
	b.products = append(b.products, p)
	return b
}

func (b *productBuilder) add(category model.Category, dims model.Dimensions, name string, price float64, tags []string) Builder {
	if price < 0 {
		b.t.Fatalf("product %q: negative price %v", name, price)
	}
	return b.WithProduct(model.Product{
		Name:       name,
		Category:   category,
		Price:      price,
		Tags:       tags,
		Dimensions: dims,
	})
}

func (b *productBuilder) WithSofa(name string, price float64, tags ...string) Builder {
	return b.add(model.CategorySofa, model.Dimensions{Width: 2.0, Depth: 0.9, Height: 0.85}, name, price, tags)
}

func (b *productBuilder) WithChair(name string, price float64, tags ...string) Builder {
	return b.add(model.CategoryChair, model.Dimensions{Width: 0.8, Depth: 0.8, Height: 0.85}, name, price, tags)
}

func (b *productBuilder) WithTable(name string, price float64, tags ...string) Builder {
	return b.add(model.CategoryTable, model.Dimensions{Width: 1.2, Depth: 0.6, Height: 0.75}, name, price, tags)
}

func (b *productBuilder) WithBed(name string, price float64, tags ...string) Builder {
	return b.add(model.CategoryBed, model.Dimensions{Width: 1.6, Depth: 2.0, Height: 1.0}, name, price, tags)
}

func (b *productBuilder) WithStorage(name string, price float64, tags ...string) Builder {
	return b.add(model.CategoryStorage, model.Dimensions{Width: 1.0, Depth: 0.45, Height: 1.8}, name, price, tags)
}

func (b *productBuilder) WithFixture(f Fixture) Builder {
	for _, p := range f.Products() {
		b.WithProduct(p)
	}
	return b
}

func (b *productBuilder) Build() []model.Product {
	out := make([]model.Product, len(b.products))
	copy(out, b.products)
	return out
}
