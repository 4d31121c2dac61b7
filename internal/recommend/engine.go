// Package recommend selects furniture for a room, places it and evaluates
// the selection against the budget.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Veraticus/roomcraft/internal/catalog"
	"github.com/Veraticus/roomcraft/internal/common"
	"github.com/Veraticus/roomcraft/internal/model"
	"github.com/Veraticus/roomcraft/internal/service"
)

// Reasoning used when selection falls back.
const (
	relaxedReasoning = "No products match your specific criteria. Here are some general recommendations."
)

// defaultPriorities applies to room types without their own priority list.
var defaultPriorities = []model.Category{model.CategorySofa, model.CategoryTable, model.CategoryChair}

// Config holds configuration options for the engine.
type Config struct {
	Planner        Planner
	CandidateLimit int
	RuleBasedLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Planner:        NewPlanner(),
		CandidateLimit: 50,
		RuleBasedLimit: 8,
	}
}

// Engine orchestrates candidate search, selection, placement and budget
// evaluation. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	catalog service.ProductCatalog
	advisor Advisor
	planner Planner
	config  Config
}

// New creates an engine with the default configuration. advisor may be nil,
// in which case smart recommendations always use the rule-based path.
func New(products service.ProductCatalog, advisor Advisor) *Engine {
	return NewWithConfig(products, advisor, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(products service.ProductCatalog, advisor Advisor, config Config) *Engine {
	defaults := DefaultConfig()
	if config.CandidateLimit <= 0 {
		config.CandidateLimit = defaults.CandidateLimit
	}
	if config.RuleBasedLimit <= 0 {
		config.RuleBasedLimit = defaults.RuleBasedLimit
	}
	return &Engine{
		catalog: products,
		advisor: advisor,
		planner: config.Planner,
		config:  config,
	}
}

// prepare validates the request and returns the room in meters.
func prepare(req model.RecommendationRequest) (model.RoomDimensions, error) {
	if err := req.Validate(); err != nil {
		return model.RoomDimensions{}, fmt.Errorf("%w: %w", common.ErrInvalidRequest, err)
	}
	room, err := req.Dimensions.ToMeters()
	if err != nil {
		return model.RoomDimensions{}, fmt.Errorf("%w: %w", common.ErrUnsupportedDimensions, err)
	}
	return room, nil
}

// searchParams builds the candidate query. limit caps the candidate set;
// the per-category paths pass the catalog size so that a crowded category
// cannot push the others out.
func (e *Engine) searchParams(req model.RecommendationRequest, categories []string, limit int) model.SearchParams {
	return model.SearchParams{
		Categories:  categories,
		Collections: req.Preferences.SelectedCollections,
		ProductIDs:  req.Preferences.PreferredProducts,
		MaxPrice:    req.BudgetAmount(),
		Limit:       limit,
	}
}

// uncapped is the candidate limit that admits the whole catalog.
func (e *Engine) uncapped() int {
	return max(e.catalog.Len(), 1)
}

// Recommend furnishes the room by category priority: one product per
// priority category, best-scoring within the remaining budget, placed
// sequentially along the walls.
func (e *Engine) Recommend(ctx context.Context, req model.RecommendationRequest) (model.RecommendationResult, error) {
	room, err := prepare(req)
	if err != nil {
		return model.RecommendationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.RecommendationResult{}, err
	}

	slog.Info("Generating recommendations", "room_type", req.RoomType)

	found, err := relaxedSearch(e.catalog, e.searchParams(req, req.Preferences.SelectedCategories, e.uncapped()))
	if err != nil {
		return model.RecommendationResult{}, err
	}

	roomCtx := RoomContext{Dimensions: room, Collections: req.Preferences.SelectedCollections}
	priorities := catalog.RoomTypePriorities(req.RoomType)
	if len(priorities) == 0 {
		priorities = defaultPriorities
	}

	selected := selectByCategory(found.products, priorities, roomCtx, req.BudgetAmount())
	if len(selected) == 0 {
		// Nothing in the priority categories; take the single best candidate.
		if p, ok := SelectBestProduct(found.products, roomCtx, req.BudgetAmount()); ok {
			selected = append(selected, p)
		}
	}

	recs := e.planner.PlaceSequential(selected, room)
	strategy := model.StrategyRuleBased
	reasoning := fmt.Sprintf("Selected %d products for %s by category priority.", len(recs), req.RoomType)
	if found.relaxed {
		strategy = model.StrategyRelaxed
		reasoning = relaxedReasoning
	}

	result := evaluate(recs, req.Budget, strategy, reasoning)
	slog.Info("Generated recommendations",
		"count", len(result.Recommendations),
		"total", result.TotalPrice,
		"strategy", result.Strategy,
		"budget_exceeded", result.BudgetExceeded)
	return result, nil
}

// RecommendFromDetected picks one product for each detected category and
// places it by category. Unrecognized detected labels are ignored.
func (e *Engine) RecommendFromDetected(ctx context.Context, req model.RecommendationRequest, detected []string) (model.RecommendationResult, error) {
	room, err := prepare(req)
	if err != nil {
		return model.RecommendationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.RecommendationResult{}, err
	}

	categories := FilterDetected(detected)
	if len(categories) == 0 {
		return model.RecommendationResult{}, fmt.Errorf("%w: %s", common.ErrNoDetectedCategories, strings.Join(detected, ", "))
	}

	slog.Info("Generating recommendations for detected categories", "categories", categories)

	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = string(c)
	}
	found, err := relaxedSearch(e.catalog, e.searchParams(req, labels, e.uncapped()))
	if err != nil {
		return model.RecommendationResult{}, err
	}

	roomCtx := RoomContext{Dimensions: room, Collections: req.Preferences.SelectedCollections}
	selected := selectByCategory(found.products, categories, roomCtx, req.BudgetAmount())

	recs := e.planner.PlaceDetected(selected, room)
	reasoning := fmt.Sprintf("Matched %d of %d detected categories.", len(recs), len(categories))
	if found.relaxed {
		reasoning = relaxedReasoning
	}
	return evaluate(recs, req.Budget, model.StrategyDetected, reasoning), nil
}

// SmartRecommend asks the advisor to choose from the candidate set and
// falls back to rule-based selection when the advisor is missing, fails or
// returns nothing usable.
func (e *Engine) SmartRecommend(ctx context.Context, req model.RecommendationRequest) (model.SmartResult, error) {
	room, err := prepare(req)
	if err != nil {
		return model.SmartResult{}, err
	}

	found, err := relaxedSearch(e.catalog, e.searchParams(req, req.Preferences.SelectedCategories, e.config.CandidateLimit))
	if err != nil {
		return model.SmartResult{}, err
	}

	roomCtx := RoomContext{Dimensions: room, Collections: req.Preferences.SelectedCollections}
	fallback := func() model.SmartResult {
		return e.ruleBased(found.products, roomCtx, req.BudgetAmount())
	}

	if found.relaxed {
		slog.Warn("No candidates matched the request, using general recommendations", "step", found.step)
		result := fallback()
		result.Strategy = model.StrategyRelaxed
		result.Reasoning = relaxedReasoning
		return result, nil
	}

	if e.advisor == nil {
		return fallback(), nil
	}

	advice, err := e.advisor.Advise(ctx, AdviceRequest{Request: req, Candidates: found.products})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return model.SmartResult{}, err
		}
		slog.Warn("AI recommendation failed, falling back to rule-based", "error", err)
		return fallback(), nil
	}
	if !advice.OK() {
		slog.Warn("AI recommendation unusable, falling back to rule-based",
			"kind", advice.Kind,
			"reason", advice.Reason)
		return fallback(), nil
	}

	products := pickCandidates(found.products, advice.ProductIDs)
	if len(products) == 0 {
		slog.Warn("AI recommended no known candidates, falling back to rule-based",
			"ids", advice.ProductIDs)
		return fallback(), nil
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	reasoning := advice.Reasoning
	if reasoning == "" {
		reasoning = advice.Raw
	}

	return model.SmartResult{
		Success:               true,
		RecommendedProductIDs: ids,
		Reasoning:             reasoning,
		Products:              products,
		Strategy:              model.StrategyAI,
	}, nil
}

// pickCandidates returns the candidates named by ids, in ids order. Unknown
// and repeated IDs are dropped.
func pickCandidates(candidates []model.Product, ids []string) []model.Product {
	byID := make(map[string]model.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}
	picked := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		picked = append(picked, p)
		delete(byID, id)
	}
	return picked
}

// ruleBased ranks candidates by score against the room and the whole budget,
// keeping candidate order among equal scores, and returns the top
// RuleBasedLimit.
func (e *Engine) ruleBased(candidates []model.Product, room RoomContext, budget *float64) model.SmartResult {
	ranked := make([]model.Product, len(candidates))
	copy(ranked, candidates)
	scores := make(map[string]int, len(ranked))
	for _, p := range ranked {
		scores[p.ID] = ScoreProduct(p, room, budget).Total()
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})

	n := min(e.config.RuleBasedLimit, len(ranked))
	selected := ranked[:n]

	ids := make([]string, n)
	for i, p := range selected {
		ids[i] = p.ID
	}
	return model.SmartResult{
		Success:               true,
		RecommendedProductIDs: ids,
		Reasoning:             fmt.Sprintf("Selected %d products based on your preferences and room type.", n),
		Products:              selected,
		Strategy:              model.StrategyRuleBased,
	}
}

// selectByCategory picks the best affordable product for each category in
// order, tracking the budget spent so far. Categories with no affordable
// product are skipped; a category is never filled twice.
func selectByCategory(candidates []model.Product, categories []model.Category, room RoomContext, budget *float64) []model.Product {
	var (
		selected []model.Product
		spent    float64
	)
	filled := make(map[model.Category]bool, len(categories))

	for _, key := range categories {
		category := catalog.NormalizeCategory(string(key))
		if filled[category] {
			continue
		}

		var inCategory []model.Product
		for _, p := range candidates {
			if p.Category == category {
				inCategory = append(inCategory, p)
			}
		}
		if len(inCategory) == 0 {
			continue
		}

		var remaining *float64
		if budget != nil {
			left := *budget - spent
			remaining = &left
		}

		best, ok := SelectBestProduct(inCategory, room, remaining)
		if !ok {
			slog.Debug("No affordable product in category", "category", category)
			continue
		}
		selected = append(selected, best)
		spent += best.Price
		filled[category] = true
	}

	return selected
}

func evaluate(recs []model.Recommendation, budget *model.Budget, strategy model.SelectionStrategy, reasoning string) model.RecommendationResult {
	total := TotalPrice(recs)
	check := CheckBudget(total, budget)
	return model.RecommendationResult{
		Recommendations: recs,
		TotalPrice:      total,
		BudgetExceeded:  check.Exceeded,
		ExceededAmount:  check.ExceededAmount,
		Strategy:        strategy,
		Reasoning:       reasoning,
	}
}

// FilterDetected turns detected furniture labels into canonical categories,
// dropping labels that do not map to a known category and duplicates.
func FilterDetected(detected []string) []model.Category {
	var out []model.Category
	seen := make(map[model.Category]bool, len(detected))
	for _, label := range detected {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		category := catalog.NormalizeCategory(label)
		if category == model.CategoryFurniture && label != string(model.CategoryFurniture) {
			continue
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, category)
	}
	return out
}
