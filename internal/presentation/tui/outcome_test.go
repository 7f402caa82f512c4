package tui

import (
	"strings"
	"testing"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

func TestOutcomeMarkdown_Optimal(t *testing.T) {
	schema := nutrient.MustNew(
		nutrient.Nutrient{ID: "protein", Label: "Protein", Unit: "g"},
	)
	out := domain.Outcome{
		Status:    domain.StatusOptimal,
		TotalCost: 2.42,
		Portions: []domain.Portion{
			{FoodName: "chicken_breast", Quantity100g: 0.97, QuantityGrams: 96.8, Cost: 2.42},
		},
		NutrientTotals: map[string]float64{"protein": 30},
		ConstraintMet:  map[string]bool{"protein": true},
	}

	md := OutcomeMarkdown(out, schema)

	for _, want := range []string{"Shopping List", "chicken_breast", "96.8", "Protein", "yes"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestOutcomeMarkdown_NonOptimalIsTerse(t *testing.T) {
	schema := nutrient.Default()

	md := OutcomeMarkdown(domain.Outcome{Status: domain.StatusInfeasible}, schema)
	if strings.Contains(md, "Shopping List") {
		t.Error("infeasible outcome must not render a shopping list")
	}
	if !strings.Contains(md, "infeasible") {
		t.Errorf("status missing from output:\n%s", md)
	}

	md = OutcomeMarkdown(domain.Outcome{
		Status:     domain.StatusSolverError,
		Diagnostic: "solver time budget exceeded",
	}, schema)
	if !strings.Contains(md, "solver time budget exceeded") {
		t.Errorf("diagnostic missing from output:\n%s", md)
	}
}
