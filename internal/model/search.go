package model

// DefaultSearchLimit caps search results when no limit is given.
const DefaultSearchLimit = 10

// SearchParams filters a catalog search. Empty fields do not filter.
type SearchParams struct {
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Query       string   `json:"query,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Collections []string `json:"collections,omitempty"`
	ProductIDs  []string `json:"productIds,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}

// EffectiveLimit returns the limit applied to results.
func (p SearchParams) EffectiveLimit() int {
	if p.Limit <= 0 {
		return DefaultSearchLimit
	}
	return p.Limit
}
