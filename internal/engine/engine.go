package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/mealplanr/dietopt/internal/logging"
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Options tunes the engine. Zero values fall back to sane defaults.
type Options struct {
	MaxFoods  int
	Epsilon   float64
	Tolerance Tolerance
	Timeout   time.Duration
	Logger    *slog.Logger
	Hooks     domain.LifecycleHooks
}

// Engine wires the problem builder, the LP solver port and the result
// interpreter into one stateless Optimize operation. It keeps no per-request
// state: concurrent calls share only the immutable schema and configuration.
type Engine struct {
	schema  *nutrient.Schema
	builder *Builder
	interp  *Interpreter
	solver  ports.Solver
	timeout time.Duration
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// New creates an Engine bound to a schema and a solver.
func New(schema *nutrient.Schema, solver ports.Solver, opts Options) *Engine {
	if opts.Epsilon == 0 {
		opts.Epsilon = 1e-9
	}
	if opts.Tolerance == (Tolerance{}) {
		opts.Tolerance = Tolerance{Abs: 1e-9, Rel: 1e-6}
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Engine{
		schema:  schema,
		builder: NewBuilder(schema, opts.MaxFoods),
		interp:  NewInterpreter(schema, opts.Epsilon, opts.Tolerance),
		solver:  solver,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		hooks:   opts.Hooks,
	}
}

// Schema returns the nutrient schema every request must align to.
func (e *Engine) Schema() *nutrient.Schema {
	return e.schema
}

// Optimize validates, builds the LP, solves it under the time budget and
// decodes the verdict. Input faults return a validation error before the
// solver is ever invoked; every solver verdict flows through the uniform
// Outcome shape.
func (e *Engine) Optimize(ctx context.Context, foods []domain.Food, cons domain.Constraints) (domain.Outcome, error) {
	start := time.Now()
	event := &domain.OptimizeEvent{FoodCount: len(foods)}
	if e.hooks.OnOptimizeStart != nil {
		e.hooks.OnOptimizeStart(ctx, event)
	}

	if err := e.builder.Validate(foods, cons); err != nil {
		e.logger.Warn("request rejected", "err", err)
		return domain.Outcome{}, err
	}

	prob := e.builder.Build(foods, cons)
	e.logger.Debug("problem built",
		"foods", len(foods),
		"rows", prob.Rows(),
	)

	solveCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	sol, err := e.solver.Solve(solveCtx, prob)
	if err != nil {
		// A solver that rejects a well-formed program is a fault of the
		// solving step, not of the caller's request.
		sol = ports.Solution{Kind: ports.SolutionFailed, Message: err.Error()}
	}

	out := e.interp.Decode(sol, foods, cons)

	event.Status = out.Status
	event.Duration = time.Since(start)
	if e.hooks.OnOptimizeEnd != nil {
		e.hooks.OnOptimizeEnd(ctx, event)
	}
	e.logger.Info("optimization finished",
		"status", out.Status,
		"foods", len(foods),
		"duration", event.Duration,
	)
	return out, nil
}
