// Package catalog holds the in-memory product catalog and answers filtered
// queries against it. A Catalog is immutable once loaded and safe for
// concurrent readers.
package catalog

import (
	"strings"

	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/service"
)

var _ service.ProductCatalog = (*Catalog)(nil)

// Catalog is a read-only product collection in source order.
type Catalog struct {
	byID     map[string]int
	products []model.Product
}

// Empty returns a catalog with no products.
func Empty() *Catalog {
	return newCatalog(nil)
}

// New builds a catalog from already-normalized products. Products keep their
// IDs and order; a later duplicate ID is dropped.
func New(products []model.Product) *Catalog {
	return newCatalog(products)
}

func newCatalog(products []model.Product) *Catalog {
	c := &Catalog{
		byID:     make(map[string]int, len(products)),
		products: make([]model.Product, 0, len(products)),
	}
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns every product in catalog order.
func (c *Catalog) All() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID looks up a single product.
func (c *Catalog) ProductByID(id string) (model.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[idx], true
}

// ProductsByIDs returns the products for ids in the order given. Unknown IDs
// are skipped.
func (c *Catalog) ProductsByIDs(ids []string) []model.Product {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.ProductByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Search filters the catalog. Filters apply in order: product IDs, query,
// categories, collections, max price. The limit is applied last.
func (c *Catalog) Search(params model.SearchParams) []model.Product {
	var candidates []model.Product
	if len(params.ProductIDs) > 0 {
		wanted := make(map[string]bool, len(params.ProductIDs))
		for _, id := range params.ProductIDs {
			wanted[id] = true
		}
		for _, p := range c.products {
			if wanted[p.ID] {
				candidates = append(candidates, p)
			}
		}
	} else {
		candidates = c.All()
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	limit := params.EffectiveLimit()
	results := make([]model.Product, 0, min(limit, len(candidates)))

	for _, p := range candidates {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if len(params.Categories) > 0 && !MatchesCategory(p.Category, params.Categories) {
			continue
		}
		if len(params.Collections) > 0 && !MatchesCollection(p.Tags, params.Collections) {
			continue
		}
		if params.MaxPrice != nil && p.Price > *params.MaxPrice {
			continue
		}
		results = append(results, p)
		if len(results) == limit {
			break
		}
	}

	return results
}

var categoryDisplayNames = map[model.Category]string{
	model.CategorySofa:      "Sofas",
	model.CategoryChair:     "Chairs",
	model.CategoryTable:     "Tables",
	model.CategoryBed:       "Beds",
	model.CategoryStorage:   "Storage",
	model.CategoryFurniture: "Furniture",
	model.CategoryDesk:      "Desks",
}

// DisplayName returns the human-readable category name, or the raw ID when
// no display name is known.
func DisplayName(c model.Category) string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// Categories returns the categories present in the catalog with product
// counts, in order of first appearance.
func (c *Catalog) Categories() []model.CategorySummary {
	counts := make(map[model.Category]int)
	var order []model.Category
	for _, p := range c.products {
		if _, seen := counts[p.Category]; !seen {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	out := make([]model.CategorySummary, 0, len(order))
	for _, cat := range order {
		out = append(out, model.CategorySummary{
			ID:           cat,
			Name:         DisplayName(cat),
			ProductCount: counts[cat],
		})
	}
	return out
}
