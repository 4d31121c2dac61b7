package catalog

import (
	"strings"

	"github.com/Veraticus/roomcraft/internal/model"
)

// InCategory returns the products whose canonical category matches the
// normalized category, in catalog order.
func (c *Catalog) InCategory(category string) []model.Product {
	target := NormalizeCategory(category)
	var out []model.Product
	for _, p := range c.products {
		if p.Category == target {
			out = append(out, p)
		}
	}
	return out
}

// NextInCategory returns the product after currentName in the category's
// catalog order, wrapping around and skipping excluded IDs. It reports false
// when currentName is not in the category or no other candidate remains.
// The scan is bounded by the category size.
func (c *Catalog) NextInCategory(category, currentName string, excludeIDs []string) (model.Product, bool) {
	cycle := c.InCategory(category)
	if len(cycle) == 0 {
		return model.Product{}, false
	}

	current := -1
	for i, p := range cycle {
		if strings.EqualFold(p.Name, currentName) {
			current = i
			break
		}
	}
	if current < 0 {
		return model.Product{}, false
	}

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	for step := 1; step <= len(cycle); step++ {
		candidate := cycle[(current+step)%len(cycle)]
		if excluded[candidate.ID] {
			continue
		}
		if candidate.ID == cycle[current].ID {
			// Back to where we started.
			return model.Product{}, false
		}
		return candidate, true
	}

	return model.Product{}, false
}
