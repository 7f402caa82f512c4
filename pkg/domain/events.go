package domain

import (
	"context"
	"time"
)

// OptimizeEvent describes one optimization request for observability hooks.
type OptimizeEvent struct {
	FoodCount int
	Status    Status
	Duration  time.Duration
}

// LifecycleHooks allows hosts to observe the engine (logging, metrics)
// without the engine depending on any observability stack.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnOptimizeStart func(ctx context.Context, e *OptimizeEvent)
	OnOptimizeEnd   func(ctx context.Context, e *OptimizeEvent)
}
