package domain

// Status is the terminal verdict of one optimization request.
type Status string

const (
	// StatusOptimal means a minimum-cost combination was found.
	StatusOptimal Status = "optimal"
	// StatusInfeasible means no combination of quantities satisfies every bound.
	StatusInfeasible Status = "infeasible"
	// StatusUnbounded means the cost can be driven arbitrarily low.
	// With non-negative costs this indicates a constraint-modeling mistake.
	StatusUnbounded Status = "unbounded"
	// StatusSolverError means the solver failed to converge or ran out of
	// its time budget. The diagnostic carries the underlying reason.
	StatusSolverError Status = "solver_error"
)

// Portion is one food's share of an optimal solution.
type Portion struct {
	FoodName      string  `json:"food_name"`
	Quantity100g  float64 `json:"quantity_100g"`
	QuantityGrams float64 `json:"quantity_grams"`
	Cost          float64 `json:"cost"`
}

// Outcome is the immutable result of one optimization request.
//
// Portions, NutrientTotals and ConstraintMet are populated only when Status
// is StatusOptimal. Diagnostic is populated only for StatusSolverError.
type Outcome struct {
	Status Status `json:"status"`

	// TotalCost echoes the solver's objective value rather than recomputing
	// it, so the reported cost never drifts from the optimum by rounding.
	TotalCost float64 `json:"total_cost,omitempty"`

	// Portions lists every food with a quantity above the noise epsilon,
	// in catalog order. Effectively-zero allocations are omitted.
	Portions []Portion `json:"portions,omitempty"`

	// NutrientTotals maps nutrient id to the achieved total, recomputed
	// from the optimal quantities and the original food vectors.
	NutrientTotals map[string]float64 `json:"nutrient_totals,omitempty"`

	// ConstraintMet maps nutrient id to whether the achieved total lies
	// within its bounds, judged with the configured tolerance.
	ConstraintMet map[string]bool `json:"constraint_met,omitempty"`

	Diagnostic string `json:"diagnostic,omitempty"`
}
