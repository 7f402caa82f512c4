package engine

import (
	"math"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Tolerance is the numerical slack used when judging whether an achieved
// total lies within its bounds: relative to the bound's magnitude, with an
// absolute floor for bounds at or near zero.
type Tolerance struct {
	Abs float64
	Rel float64
}

// Within reports whether total satisfies bounds under the tolerance.
func (t Tolerance) Within(total float64, bounds domain.Bounds) bool {
	return total >= bounds.Min-t.slack(bounds.Min) &&
		total <= bounds.Max+t.slack(bounds.Max)
}

func (t Tolerance) slack(bound float64) float64 {
	s := t.Rel * math.Abs(bound)
	if t.Abs > s {
		s = t.Abs
	}
	return s
}

// Interpreter turns a raw solver outcome back into domain terms.
// It reads the original catalog but never mutates it.
type Interpreter struct {
	schema  *nutrient.Schema
	epsilon float64
	tol     Tolerance
}

// NewInterpreter creates an Interpreter.
// epsilon suppresses effectively-zero quantities from the reported solution.
func NewInterpreter(schema *nutrient.Schema, epsilon float64, tol Tolerance) *Interpreter {
	return &Interpreter{schema: schema, epsilon: epsilon, tol: tol}
}

// Decode maps the solver verdict onto the outcome decision table.
// Non-optimal verdicts carry a status (and, for failures, a diagnostic) only.
func (in *Interpreter) Decode(sol ports.Solution, foods []domain.Food, cons domain.Constraints) domain.Outcome {
	switch sol.Kind {
	case ports.SolutionInfeasible:
		return domain.Outcome{Status: domain.StatusInfeasible}
	case ports.SolutionUnbounded:
		return domain.Outcome{Status: domain.StatusUnbounded}
	case ports.SolutionFailed:
		return domain.Outcome{Status: domain.StatusSolverError, Diagnostic: sol.Message}
	}

	out := domain.Outcome{
		Status: domain.StatusOptimal,
		// Echo the solver's objective value rather than recomputing it,
		// so the reported cost never drifts from the optimum by rounding.
		TotalCost:      sol.Objective,
		NutrientTotals: make(map[string]float64, in.schema.Len()),
		ConstraintMet:  make(map[string]bool, in.schema.Len()),
	}

	// Quantities at or below epsilon are solver noise: omitted entirely,
	// not reported as zero-cost entries. Totals are recomputed from the
	// quantities the caller actually sees, so re-deriving them from the
	// reported portions reproduces these numbers exactly.
	quantities := make([]float64, len(foods))
	for i, f := range foods {
		if i >= len(sol.X) {
			break
		}
		x := sol.X[i]
		if x <= in.epsilon {
			continue
		}
		quantities[i] = x
		out.Portions = append(out.Portions, domain.Portion{
			FoodName:      f.Name,
			Quantity100g:  x,
			QuantityGrams: x * 100,
			Cost:          x * f.CostPer100g,
		})
	}

	for j := 0; j < in.schema.Len(); j++ {
		total := 0.0
		for i, f := range foods {
			total += quantities[i] * f.NutrientAt(j)
		}
		id := in.schema.At(j).ID
		out.NutrientTotals[id] = total
		out.ConstraintMet[id] = in.tol.Within(total, cons.At(j))
	}
	return out
}
