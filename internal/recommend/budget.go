package recommend

import "github.com/Veraticus/roomcraft/internal/model"

// TotalPrice sums recommendation prices.
func TotalPrice(recs []model.Recommendation) float64 {
	var total float64
	for _, r := range recs {
		total += r.Price
	}
	return total
}

// CheckBudget reports whether total exceeds the budget. No budget is never
// exceeded, and a total equal to the budget is within it.
func CheckBudget(total float64, budget *model.Budget) model.BudgetCheck {
	if budget == nil || total <= budget.Amount {
		return model.BudgetCheck{}
	}
	over := total - budget.Amount
	return model.BudgetCheck{Exceeded: true, ExceededAmount: &over}
}
