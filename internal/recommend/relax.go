package recommend

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/service"
)

// relaxation is one step of the candidate search. Each step loosens the
// parameters left by the previous one; skip reports that the step would not
// change anything.
type relaxation struct {
	name  string
	relax func(p model.SearchParams) (model.SearchParams, bool)
}

// relaxations are tried in order until a search returns products.
var relaxations = []relaxation{
	{
		name: "as requested",
		relax: func(p model.SearchParams) (model.SearchParams, bool) {
			return p, false
		},
	},
	{
		name: "without categories",
		relax: func(p model.SearchParams) (model.SearchParams, bool) {
			if len(p.Categories) == 0 {
				return p, true
			}
			p.Categories = nil
			return p, false
		},
	},
	{
		name: "without collections",
		relax: func(p model.SearchParams) (model.SearchParams, bool) {
			if len(p.Collections) == 0 {
				return p, true
			}
			p.Collections = nil
			return p, false
		},
	},
	{
		name: "without max price",
		relax: func(p model.SearchParams) (model.SearchParams, bool) {
			if p.MaxPrice == nil {
				return p, true
			}
			p.MaxPrice = nil
			return p, false
		},
	},
	{
		name: "all products",
		relax: func(p model.SearchParams) (model.SearchParams, bool) {
			return model.SearchParams{Limit: p.Limit}, false
		},
	},
}

// searchResult is the outcome of a relaxed search.
type searchResult struct {
	step     string
	products []model.Product
	relaxed  bool
}

// relaxedSearch runs the relaxation steps against the catalog and returns
// the first non-empty result. It fails with ErrNoProducts only when every
// step comes back empty.
func relaxedSearch(products service.ProductCatalog, params model.SearchParams) (searchResult, error) {
	current := params
	for i, step := range relaxations {
		next, skip := step.relax(current)
		if skip {
			continue
		}
		current = next

		found := products.Search(current)
		if i > 0 {
			slog.Info("Relaxed product search", "step", step.name, "found", len(found))
		}
		if len(found) > 0 {
			return searchResult{products: found, step: step.name, relaxed: i > 0}, nil
		}
	}
	return searchResult{}, fmt.Errorf("%w: catalog has %d products", common.ErrNoProducts, products.Len())
}
