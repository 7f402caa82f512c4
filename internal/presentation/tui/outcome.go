package tui

import (
	"fmt"
	"strings"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

// OutcomeMarkdown formats an optimization outcome as a markdown document,
// ready for the glamour renderer.
func OutcomeMarkdown(out domain.Outcome, schema *nutrient.Schema) string {
	var b strings.Builder

	b.WriteString("# Diet Optimization Result\n\n")
	b.WriteString(fmt.Sprintf("**Status:** %s\n\n", out.Status))

	switch out.Status {
	case domain.StatusInfeasible:
		b.WriteString("No combination of the given foods satisfies every nutritional range.\n")
		return b.String()
	case domain.StatusUnbounded:
		b.WriteString("The cost can be driven arbitrarily low; check the constraint model.\n")
		return b.String()
	case domain.StatusSolverError:
		b.WriteString(fmt.Sprintf("Solver failure: %s\n", out.Diagnostic))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("**Total cost:** %.2f\n\n", out.TotalCost))

	b.WriteString("## Shopping List\n\n")
	b.WriteString("| Food | Grams | Cost |\n|---|---|---|\n")
	for _, p := range out.Portions {
		b.WriteString(fmt.Sprintf("| %s | %.1f | %.2f |\n", p.FoodName, p.QuantityGrams, p.Cost))
	}

	b.WriteString("\n## Nutrition\n\n")
	b.WriteString("| Nutrient | Total | Unit | Within Bounds |\n|---|---|---|---|\n")
	for _, n := range schema.Nutrients() {
		mark := "yes"
		if !out.ConstraintMet[n.ID] {
			mark = "NO"
		}
		b.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s |\n", n.Label, out.NutrientTotals[n.ID], n.Unit, mark))
	}
	return b.String()
}
