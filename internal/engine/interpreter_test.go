package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/ports"
)

func TestTolerance_Within(t *testing.T) {
	tol := Tolerance{Abs: 1e-9, Rel: 1e-6}
	b := domain.Bounds{Min: 30, Max: 200}

	assert.True(t, tol.Within(30, b))
	assert.True(t, tol.Within(200, b))
	// Just outside the bound but inside the relative slack.
	assert.True(t, tol.Within(30-1e-6, b))
	assert.True(t, tol.Within(200+1e-5, b))
	// Clearly outside.
	assert.False(t, tol.Within(29.9, b))
	assert.False(t, tol.Within(200.1, b))

	// A zero bound falls back to the absolute floor.
	zb := domain.Bounds{Min: 0, Max: 0}
	assert.True(t, tol.Within(1e-10, zb))
	assert.False(t, tol.Within(1e-3, zb))
}

func TestDecode_NonOptimalVerdicts(t *testing.T) {
	in := NewInterpreter(testSchema(), 1e-9, Tolerance{Abs: 1e-9, Rel: 1e-6})
	foods, cons := validInput()

	out := in.Decode(ports.Solution{Kind: ports.SolutionInfeasible}, foods, cons)
	assert.Equal(t, domain.StatusInfeasible, out.Status)
	assert.Empty(t, out.Portions)
	assert.Nil(t, out.NutrientTotals)

	out = in.Decode(ports.Solution{Kind: ports.SolutionUnbounded}, foods, cons)
	assert.Equal(t, domain.StatusUnbounded, out.Status)

	out = in.Decode(ports.Solution{Kind: ports.SolutionFailed, Message: "pivot tolerance exhausted"}, foods, cons)
	assert.Equal(t, domain.StatusSolverError, out.Status)
	assert.Equal(t, "pivot tolerance exhausted", out.Diagnostic)
}

func TestDecode_OptimalReportsPortionsAndTotals(t *testing.T) {
	in := NewInterpreter(testSchema(), 1e-9, Tolerance{Abs: 1e-9, Rel: 1e-6})
	foods, cons := validInput()

	sol := ports.Solution{
		Kind:      ports.SolutionOptimal,
		X:         []float64{1.0, 2.0},
		Objective: 1.0*2.5 + 2.0*0.5,
	}
	out := in.Decode(sol, foods, cons)

	require.Equal(t, domain.StatusOptimal, out.Status)
	assert.Equal(t, 3.5, out.TotalCost)
	require.Len(t, out.Portions, 2)

	assert.Equal(t, "chicken", out.Portions[0].FoodName)
	assert.Equal(t, 1.0, out.Portions[0].Quantity100g)
	assert.Equal(t, 100.0, out.Portions[0].QuantityGrams)
	assert.Equal(t, 2.5, out.Portions[0].Cost)

	assert.Equal(t, "rice", out.Portions[1].FoodName)
	assert.Equal(t, 200.0, out.Portions[1].QuantityGrams)

	// Totals: calories 165*1 + 130*2, protein 31*1 + 2.7*2.
	assert.InDelta(t, 425.0, out.NutrientTotals["calories"], 1e-12)
	assert.InDelta(t, 36.4, out.NutrientTotals["protein"], 1e-12)
	assert.True(t, out.ConstraintMet["calories"])
	assert.True(t, out.ConstraintMet["protein"])
}

func TestDecode_EpsilonSuppressesNoise(t *testing.T) {
	in := NewInterpreter(testSchema(), 1e-9, Tolerance{Abs: 1e-9, Rel: 1e-6})
	foods, cons := validInput()

	sol := ports.Solution{
		Kind:      ports.SolutionOptimal,
		X:         []float64{1e-12, 1.5},
		Objective: 1e-12*2.5 + 1.5*0.5,
	}
	out := in.Decode(sol, foods, cons)

	require.Len(t, out.Portions, 1, "noise quantity must be omitted, not zeroed")
	assert.Equal(t, "rice", out.Portions[0].FoodName)

	// Totals come from the reported quantities only, so recomputing them
	// from the payload reproduces these numbers exactly.
	assert.Equal(t, 1.5*130, out.NutrientTotals["calories"])
	assert.Equal(t, 1.5*2.7, out.NutrientTotals["protein"])
}

func TestDecode_FlagsMissedConstraints(t *testing.T) {
	in := NewInterpreter(testSchema(), 1e-9, Tolerance{Abs: 1e-9, Rel: 1e-6})
	foods, cons := validInput()

	// A quantity that undershoots the protein minimum of 30.
	sol := ports.Solution{
		Kind:      ports.SolutionOptimal,
		X:         []float64{0.5, 0},
		Objective: 0.5 * 2.5,
	}
	out := in.Decode(sol, foods, cons)

	assert.Equal(t, domain.StatusOptimal, out.Status)
	assert.True(t, out.ConstraintMet["calories"])
	assert.False(t, out.ConstraintMet["protein"], "15.5g of protein is under the 30g minimum")
}
