package recommend

import (
	"context"

	"github.com/Veraticus/roomcraft/internal/model"
)

// AdviceKind tags the outcome of parsing an advisor response.
type AdviceKind int

// Advice outcomes.
const (
	AdviceParseError AdviceKind = iota
	AdviceOK
)

// String returns the kind name for logs.
func (k AdviceKind) String() string {
	if k == AdviceOK {
		return "ok"
	}
	return "parse_error"
}

// AdviceRequest is what an advisor chooses from.
type AdviceRequest struct {
	Request    model.RecommendationRequest
	Candidates []model.Product
}

// AdviceResult is the validated outcome of an advisor call. ProductIDs only
// ever contains IDs from the candidate set. Reason explains a parse error.
type AdviceResult struct {
	Reasoning  string
	Reason     string
	Raw        string
	ProductIDs []string
	Kind       AdviceKind
}

// OK reports whether the advice can be used.
func (r AdviceResult) OK() bool {
	return r.Kind == AdviceOK && len(r.ProductIDs) > 0
}

// Advisor selects products from a candidate set, typically by asking an LLM.
type Advisor interface {
	Advise(ctx context.Context, req AdviceRequest) (AdviceResult, error)
}
