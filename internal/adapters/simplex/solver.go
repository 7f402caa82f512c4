// Package simplex adapts gonum's dense simplex routine to the engine's
// solver port. It converts the canonical inequality form into the standard
// equality form gonum expects, enforces the caller's time budget and maps
// gonum's verdicts onto the four-way solution contract.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/mealplanr/dietopt/internal/logging"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Solver solves linear programs with gonum's simplex method.
// The zero value is not usable; construct with New.
type Solver struct {
	pivotTol float64
	logger   *slog.Logger
}

// Option configures the Solver.
type Option func(*Solver)

// WithPivotTol overrides the simplex pivot tolerance.
func WithPivotTol(tol float64) Option {
	return func(s *Solver) {
		s.pivotTol = tol
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		pivotTol: 1e-10,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Solver = (*Solver)(nil)

type simplexResult struct {
	objective float64
	x         []float64
	err       error
}

// Solve runs the simplex method under the context's deadline.
//
// gonum's iteration cannot be interrupted, so the solve runs on its own
// goroutine; when the context expires first the goroutine is abandoned (it
// finishes and its result is discarded) and a failed verdict is returned.
// A partial or stale point is never reported.
func (s *Solver) Solve(ctx context.Context, p ports.LinearProgram) (ports.Solution, error) {
	if err := checkDimensions(p); err != nil {
		return ports.Solution{}, err
	}

	pre, verdict := preprocess(p)
	if verdict != nil {
		return *verdict, nil
	}
	if len(pre.rows) == 0 {
		// Every constraint was vacuous: with x >= 0 and the preprocessor
		// having ruled out negative-cost free variables, the optimum is
		// the origin.
		return ports.Solution{
			Kind: ports.SolutionOptimal,
			X:    make([]float64, p.Variables()),
		}, nil
	}

	c, a, b := standardForm(p, pre)

	ch := make(chan simplexResult, 1)
	go func() {
		objective, x, err := lp.Simplex(c, a, b, s.pivotTol, nil)
		ch <- simplexResult{objective: objective, x: x, err: err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("solve abandoned", "err", ctx.Err())
		return ports.Solution{
			Kind:    ports.SolutionFailed,
			Message: fmt.Sprintf("solver time budget exceeded: %v", ctx.Err()),
		}, nil
	case r := <-ch:
		return s.decode(r, p, pre), nil
	}
}

func (s *Solver) decode(r simplexResult, p ports.LinearProgram, pre preprocessed) ports.Solution {
	switch {
	case errors.Is(r.err, lp.ErrInfeasible):
		return ports.Solution{Kind: ports.SolutionInfeasible}
	case errors.Is(r.err, lp.ErrUnbounded):
		return ports.Solution{Kind: ports.SolutionUnbounded}
	case r.err != nil:
		s.logger.Warn("simplex failed", "err", r.err)
		return ports.Solution{
			Kind:    ports.SolutionFailed,
			Message: r.err.Error(),
		}
	}

	// Scatter the solved columns back into catalog order; variables the
	// preprocessor fixed at zero stay zero.
	x := make([]float64, p.Variables())
	for k, i := range pre.cols {
		x[i] = r.x[k]
	}
	return ports.Solution{
		Kind:      ports.SolutionOptimal,
		X:         x,
		Objective: r.objective,
	}
}

func checkDimensions(p ports.LinearProgram) error {
	if p.Variables() == 0 {
		return fmt.Errorf("linear program has no variables")
	}
	if len(p.B) != len(p.A) {
		return fmt.Errorf("inequality bounds length %d does not match %d rows", len(p.B), len(p.A))
	}
	for i, row := range p.A {
		if len(row) != p.Variables() {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), p.Variables())
		}
	}
	return nil
}

// preprocessed records which rows and columns of the original program
// survive preprocessing. cols maps solved-column positions back to the
// original variable indices.
type preprocessed struct {
	rows []int
	cols []int
}

// preprocess strips structurally trivial parts that gonum's simplex rejects
// outright (ErrZeroRow / ErrZeroColumn):
//
//   - an all-zero row is infeasible when its bound is negative (a lower
//     bound no variable can contribute to) and vacuous otherwise;
//   - an all-zero column is a variable no constraint touches: unbounded if
//     its cost is negative, otherwise optimally zero.
//
// A non-nil verdict short-circuits the solve.
func preprocess(p ports.LinearProgram) (preprocessed, *ports.Solution) {
	var pre preprocessed
	for i, row := range p.A {
		if allZero(row) {
			if p.B[i] < 0 {
				return pre, &ports.Solution{Kind: ports.SolutionInfeasible}
			}
			continue
		}
		pre.rows = append(pre.rows, i)
	}
	for j := 0; j < p.Variables(); j++ {
		zero := true
		for _, i := range pre.rows {
			if p.A[i][j] != 0 {
				zero = false
				break
			}
		}
		if zero {
			if p.Objective[j] < 0 {
				return pre, &ports.Solution{Kind: ports.SolutionUnbounded}
			}
			continue
		}
		pre.cols = append(pre.cols, j)
	}
	return pre, nil
}

func allZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// standardForm appends one slack variable per surviving row, turning
// A x <= b into [A I] [x; s] = b with all variables >= 0.
func standardForm(p ports.LinearProgram, pre preprocessed) ([]float64, *mat.Dense, []float64) {
	m := len(pre.rows)
	n := len(pre.cols)

	c := make([]float64, n+m)
	for k, j := range pre.cols {
		c[k] = p.Objective[j]
	}

	a := mat.NewDense(m, n+m, nil)
	b := make([]float64, m)
	for r, i := range pre.rows {
		for k, j := range pre.cols {
			a.Set(r, k, p.A[i][j])
		}
		a.Set(r, n+r, 1)
		b[r] = p.B[i]
	}
	return c, a, b
}
