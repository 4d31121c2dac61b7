package recommend

import (
	"github.com/Veraticus/roomcraft/internal/catalog"
	"github.com/Veraticus/roomcraft/internal/model"
)

// RoomContext is what a product is scored against. Dimensions must already
// be in meters.
type RoomContext struct {
	Collections []string
	Dimensions  model.RoomDimensions
}

// Score is a per-product score breakdown.
type Score struct {
	PriceFit   int `json:"priceFit"`
	SpatialFit int `json:"spatialFit"`
	Collection int `json:"collection"`
}

// Total returns the summed score.
func (s Score) Total() int {
	return s.PriceFit + s.SpatialFit + s.Collection
}

// ScoreProduct scores p against the room. remaining is the budget left for
// this pick, or nil when there is no budget.
func ScoreProduct(p model.Product, room RoomContext, remaining *float64) Score {
	return Score{
		PriceFit:   priceFit(p.Price, remaining),
		SpatialFit: spatialFit(p.Footprint(), room.Dimensions.Area()),
		Collection: collectionAffinity(p.Tags, room.Collections),
	}
}

func priceFit(price float64, remaining *float64) int {
	if remaining == nil {
		return 20
	}
	if *remaining <= 0 {
		return 10
	}
	ratio := price / *remaining
	switch {
	case ratio >= 0.6 && ratio <= 0.8:
		return 30
	case ratio >= 0.4 && ratio <= 0.9:
		return 20
	default:
		return 10
	}
}

func spatialFit(footprint, roomArea float64) int {
	if roomArea <= 0 {
		return 10
	}
	ratio := footprint / roomArea
	switch {
	case ratio <= 0.15:
		return 30
	case ratio <= 0.25:
		return 20
	default:
		return 10
	}
}

func collectionAffinity(tags, collections []string) int {
	if len(collections) == 0 {
		return 0
	}
	if catalog.MatchesCollection(tags, collections) {
		return 40
	}
	return 0
}

// SelectBestProduct returns the highest scoring product that fits within
// remaining. Ties go to the earlier candidate. It reports false when no
// candidate is affordable.
func SelectBestProduct(products []model.Product, room RoomContext, remaining *float64) (model.Product, bool) {
	var (
		best      model.Product
		bestScore = -1
	)
	for _, p := range products {
		if remaining != nil && p.Price > *remaining {
			continue
		}
		if s := ScoreProduct(p, room, remaining).Total(); s > bestScore {
			best, bestScore = p, s
		}
	}
	return best, bestScore >= 0
}

// Explain scores each recommended product the way selection saw it: against
// the room and the budget left before that product was picked.
func (e *Engine) Explain(req model.RecommendationRequest, recs []model.Recommendation) (map[string]Score, error) {
	room, err := prepare(req)
	if err != nil {
		return nil, err
	}

	roomCtx := RoomContext{Dimensions: room, Collections: req.Preferences.SelectedCollections}
	remaining := req.BudgetAmount()
	scores := make(map[string]Score, len(recs))
	for _, rec := range recs {
		p, ok := e.catalog.ProductByID(rec.ProductID)
		if !ok {
			continue
		}
		scores[rec.ProductID] = ScoreProduct(p, roomCtx, remaining)
		if remaining != nil {
			left := *remaining - p.Price
			remaining = &left
		}
	}
	return scores, nil
}
