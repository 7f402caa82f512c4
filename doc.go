/*
Package dietopt solves the classic diet problem: given a catalog of foods
with per-100g costs and nutrient yields, and an acceptable range for every
tracked nutrient, it finds the cheapest combination of food quantities that
satisfies every range simultaneously, or reports definitively that none
exists.

The core is a small linear-programming pipeline: a problem builder that
validates the catalog against a fixed, ordered nutrient schema and emits the
canonical LP form, a pluggable solver port (backed by gonum's simplex by
default), and a result interpreter that maps the solver verdict back into
domain terms (quantities, totals, per-nutrient satisfaction).

Every optimization is a pure, stateless computation: no catalogs or results
are persisted, and concurrent requests share nothing but the immutable
schema. Transport surfaces (HTTP, MCP, CLI) are thin adapters around the
same engine.

# Usage

	opt, err := dietopt.New()
	if err != nil {
		log.Fatal(err)
	}
	outcome, err := opt.Optimize(ctx, foods, constraints)

Configure with functional options: WithSchema swaps the nutrient table,
WithSolver injects a custom LP solver, WithConfig tunes tolerances and the
solver time budget.
*/
package dietopt
