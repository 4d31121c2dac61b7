package model

// Category is a canonical furniture category.
type Category string

// Canonical categories. Every catalog product carries exactly one of these.
const (
	CategorySofa      Category = "sofa"
	CategoryChair     Category = "chair"
	CategoryTable     Category = "table"
	CategoryBed       Category = "bed"
	CategoryStorage   Category = "storage"
	CategoryFurniture Category = "furniture"
)

// CategoryDesk only appears as a room-type priority key; catalog products
// with desk in their label normalize into CategoryTable.
const CategoryDesk Category = "desk"

// CanonicalCategories lists the canonical categories in rule order.
var CanonicalCategories = []Category{
	CategorySofa,
	CategoryChair,
	CategoryTable,
	CategoryBed,
	CategoryStorage,
	CategoryFurniture,
}

// IsCanonical reports whether c is one of the canonical categories.
func (c Category) IsCanonical() bool {
	for _, canonical := range CanonicalCategories {
		if c == canonical {
			return true
		}
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// CategorySummary is a category present in the catalog with its product count.
type CategorySummary struct {
	ID           Category `json:"id"`
	Name         string   `json:"name"`
	ProductCount int      `json:"productCount"`
}

// CategoryPriority is an entry in a room-type priority list.
type CategoryPriority struct {
	ID       Category `json:"id"`
	Name     string   `json:"name"`
	Priority int      `json:"priority"`
}
