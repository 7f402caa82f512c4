package dietopt

import (
	"context"
	"log/slog"

	"github.com/mealplanr/dietopt/internal/adapters/simplex"
	"github.com/mealplanr/dietopt/internal/config"
	"github.com/mealplanr/dietopt/internal/engine"
	"github.com/mealplanr/dietopt/internal/logging"
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Version is the library version, overridden at build time via -ldflags.
var Version = "0.1.0"

// Optimizer is the high-level entry point for the dietopt library.
// It wraps the internal engine and provides a simplified API for consumers.
type Optimizer struct {
	engine *engine.Engine
	schema *nutrient.Schema
	solver ports.Solver
	cfg    *config.Config
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option defines a functional option for configuring the Optimizer.
type Option func(*Optimizer)

// WithSchema swaps the nutrient schema (default: nutrient.Default()).
func WithSchema(s *nutrient.Schema) Option {
	return func(o *Optimizer) {
		o.schema = s
	}
}

// WithSolver injects a custom LP solver, bypassing the default simplex.
func WithSolver(s ports.Solver) Option {
	return func(o *Optimizer) {
		o.solver = s
	}
}

// WithConfig applies runtime settings (time budget, tolerances, limits).
func WithConfig(cfg *config.Config) Option {
	return func(o *Optimizer) {
		o.cfg = cfg
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Optimizer) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Optimizer) {
		o.hooks = hooks
	}
}

// New initializes an Optimizer with the default schema, solver and settings
// unless overridden by options.
func New(opts ...Option) (*Optimizer, error) {
	o := &Optimizer{}
	for _, opt := range opts {
		opt(o)
	}

	if o.schema == nil {
		o.schema = nutrient.Default()
	}
	if o.cfg == nil {
		o.cfg = config.Default()
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.solver == nil {
		o.solver = simplex.New(
			simplex.WithPivotTol(o.cfg.PivotTol),
			simplex.WithLogger(o.logger),
		)
	}

	o.engine = engine.New(o.schema, o.solver, engine.Options{
		MaxFoods: o.cfg.MaxFoods,
		Epsilon:  o.cfg.QuantityEpsilon,
		Tolerance: engine.Tolerance{
			Abs: o.cfg.ToleranceAbs,
			Rel: o.cfg.ToleranceRel,
		},
		Timeout: o.cfg.SolverTimeout,
		Logger:  o.logger,
		Hooks:   o.hooks,
	})
	return o, nil
}

var _ ports.Optimizer = (*Optimizer)(nil)

// Optimize finds the cheapest combination of food quantities satisfying the
// constraints. See ports.Optimizer for the contract.
func (o *Optimizer) Optimize(ctx context.Context, foods []domain.Food, cons domain.Constraints) (domain.Outcome, error) {
	return o.engine.Optimize(ctx, foods, cons)
}

// Schema returns the nutrient schema every request must align to.
func (o *Optimizer) Schema() *nutrient.Schema {
	return o.schema
}
