package model

import (
	"fmt"
)

// Recommendation is a selected product together with its placement.
type Recommendation struct {
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Reasoning   string   `json:"reasoning"`
	Position    Position `json:"position"`
	Rotation    float64  `json:"rotation"`
	Price       float64  `json:"price"`
}

// Preferences are the optional user choices attached to a request.
type Preferences struct {
	SelectedCategories  []string `json:"selectedCategories,omitempty"`
	SelectedCollections []string `json:"selectedCollections,omitempty"`
	PreferredProducts   []string `json:"preferredProducts,omitempty"`
}

// RecommendationRequest carries everything needed to furnish a room.
type RecommendationRequest struct {
	Budget      *Budget        `json:"budget,omitempty"`
	RoomType    RoomType       `json:"roomType"`
	Language    string         `json:"language,omitempty"`
	Preferences Preferences    `json:"preferences"`
	Dimensions  RoomDimensions `json:"dimensions"`
}

// Validate checks the request shape.
func (r RecommendationRequest) Validate() error {
	if !r.RoomType.IsValid() {
		return fmt.Errorf("unsupported room type %q", r.RoomType)
	}
	if err := r.Dimensions.Validate(); err != nil {
		return err
	}
	if r.Budget != nil {
		if err := r.Budget.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BudgetAmount returns the budget amount, or nil when no budget was given.
func (r RecommendationRequest) BudgetAmount() *float64 {
	if r.Budget == nil {
		return nil
	}
	amount := r.Budget.Amount
	return &amount
}

// BudgetCheck reports whether a total exceeds the budget.
type BudgetCheck struct {
	ExceededAmount *float64 `json:"exceededAmount,omitempty"`
	Exceeded       bool     `json:"exceeded"`
}

// SelectionStrategy names the path that produced a selection.
type SelectionStrategy string

// Selection strategies.
const (
	StrategyRuleBased SelectionStrategy = "rule_based"
	StrategyDetected  SelectionStrategy = "detected"
	StrategyAI        SelectionStrategy = "ai"
	StrategyRelaxed   SelectionStrategy = "relaxed"
)

// RecommendationResult is the response to a recommendation request.
type RecommendationResult struct {
	ExceededAmount  *float64          `json:"exceededAmount,omitempty"`
	Strategy        SelectionStrategy `json:"strategy"`
	Reasoning       string            `json:"reasoning,omitempty"`
	Recommendations []Recommendation  `json:"recommendations"`
	TotalPrice      float64           `json:"totalPrice"`
	BudgetExceeded  bool              `json:"budgetExceeded"`
}

// SmartResult is the response to an AI-assisted selection request.
type SmartResult struct {
	Strategy              SelectionStrategy `json:"strategy"`
	Reasoning             string            `json:"reasoning,omitempty"`
	RecommendedProductIDs []string          `json:"recommendedProductIds"`
	Products              []Product         `json:"products"`
	Success               bool              `json:"success"`
}
