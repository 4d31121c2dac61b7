package products

import "github.com/Veraticus/roomcraft/internal/model"

// Fixture is a predefined product set.
type Fixture interface {
	Name() string
	Products() []model.Product
}

type fixture struct {
	name     string
	products []model.Product
}

func (f *fixture) Name() string { return f.name }

func (f *fixture) Products() []model.Product {
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out
}

func item(name string, category model.Category, price, width, depth float64, tags ...string) model.Product {
	return model.Product{
		Name:       name,
		Category:   category,
		Price:      price,
		Tags:       tags,
		Dimensions: model.Dimensions{Width: width, Depth: depth, Height: 0.8},
	}
}

// FixtureLivingRoom is a small mixed catalog covering every living room
// priority category.
var FixtureLivingRoom = &fixture{
	name: "LivingRoom",
	products: []model.Product{
		item("Harper 3 Seater Sofa", model.CategorySofa, 1299, 2.0, 0.9, "Harper"),
		item("Dawson 2 Seater Sofa", model.CategorySofa, 899, 1.6, 0.9, "Dawson"),
		item("Marlow Coffee Table", model.CategoryTable, 449, 1.2, 0.6, "Marlow"),
		item("Round Table", model.CategoryTable, 399, 1.0, 1.0, "Marlow"),
		item("Jonah Armchair", model.CategoryChair, 599, 0.8, 0.8, "Harper"),
		item("Sloane Storage Cabinet", model.CategoryStorage, 749, 1.0, 0.45, "Sloane"),
	},
}

// FixtureBedroom is a small bedroom catalog.
var FixtureBedroom = &fixture{
	name: "Bedroom",
	products: []model.Product{
		item("Adams Queen Bed", model.CategoryBed, 1599, 1.6, 2.1, "Adams"),
		item("Adams Bedside Storage", model.CategoryStorage, 399, 0.5, 0.4, "Adams"),
		item("Seb Lounge Chair", model.CategoryChair, 499, 0.7, 0.75, "Seb"),
	},
}
