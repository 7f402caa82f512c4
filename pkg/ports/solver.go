package ports

import "context"

// LinearProgram is a minimization problem in canonical inequality form:
//
//	minimize  Objective . x
//	s.t.      A x <= B        (row i of A against B[i])
//	          x >= 0
//
// Variables are continuous and bounded below by zero only.
type LinearProgram struct {
	// Objective holds one cost coefficient per variable.
	Objective []float64

	// A holds the inequality rows; every row has len(Objective) columns.
	A [][]float64

	// B holds one upper bound per row of A.
	B []float64
}

// Variables returns the number of decision variables.
func (p LinearProgram) Variables() int {
	return len(p.Objective)
}

// Rows returns the number of inequality constraints.
func (p LinearProgram) Rows() int {
	return len(p.A)
}

// SolutionKind distinguishes the four solver verdicts. The engine must never
// conflate them: each maps to a different domain status.
type SolutionKind int

const (
	// SolutionOptimal means an optimal point was found.
	SolutionOptimal SolutionKind = iota
	// SolutionInfeasible means no point satisfies every constraint.
	SolutionInfeasible
	// SolutionUnbounded means the objective decreases without limit.
	SolutionUnbounded
	// SolutionFailed means the solver did not converge or ran out of its
	// time budget; Message carries the reason.
	SolutionFailed
)

func (k SolutionKind) String() string {
	switch k {
	case SolutionOptimal:
		return "optimal"
	case SolutionInfeasible:
		return "infeasible"
	case SolutionUnbounded:
		return "unbounded"
	case SolutionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Solution is the raw outcome of one solve.
// X and Objective are meaningful only when Kind is SolutionOptimal.
type Solution struct {
	Kind      SolutionKind
	X         []float64
	Objective float64
	Message   string
}

// Solver is the LP-solving capability consumed by the engine.
//
// Solve must honor ctx as the time budget: when the context expires before
// convergence, it returns a SolutionFailed verdict rather than a partial
// result. The returned error is reserved for malformed programs (dimension
// mismatches), never for solver verdicts.
type Solver interface {
	Solve(ctx context.Context, p LinearProgram) (Solution, error)
}
