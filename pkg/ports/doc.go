// Package ports defines the interfaces between the optimization engine and
// its collaborators (LP solver, transport adapters), following a hexagonal
// layout: the engine owns the contracts, adapters implement or consume them.
package ports
