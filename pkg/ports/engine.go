package ports

import (
	"context"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

// Optimizer is the engine contract consumed by transport adapters
// (HTTP, MCP, CLI). Every call is stateless and side-effect free.
type Optimizer interface {
	// Optimize finds the cheapest combination of food quantities satisfying
	// the constraints. Input faults surface as validation errors; solver
	// verdicts (infeasible, unbounded, failure) surface as Outcome statuses.
	Optimize(ctx context.Context, foods []domain.Food, cons domain.Constraints) (domain.Outcome, error)

	// Schema returns the nutrient schema every request must align to.
	Schema() *nutrient.Schema
}
