// Package domain contains the core types of the diet optimization engine:
// foods, nutritional constraints, optimization outcomes and the validation
// error taxonomy. It has no dependencies on adapters or the solver.
package domain
