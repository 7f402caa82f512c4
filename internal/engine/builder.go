package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Builder validates a food catalog against the nutrient schema and emits the
// canonical linear program. Validation runs in stages; each stage collects
// every offending field before failing, so a caller can fix a whole request
// in one round trip, but later stages never run on data an earlier stage
// rejected.
type Builder struct {
	schema   *nutrient.Schema
	maxFoods int
}

// NewBuilder creates a Builder bound to a schema.
// maxFoods caps the catalog size; zero means no cap.
func NewBuilder(schema *nutrient.Schema, maxFoods int) *Builder {
	return &Builder{schema: schema, maxFoods: maxFoods}
}

// Validate checks the catalog and constraints. It returns a
// *domain.AggregateError listing every violation of the first failing stage,
// or nil when the inputs are solvable as stated.
func (b *Builder) Validate(foods []domain.Food, cons domain.Constraints) error {
	stages := []func([]domain.Food, domain.Constraints) []error{
		b.checkCatalog,
		b.checkAlignment,
		b.checkValues,
		b.checkRanges,
	}
	for _, stage := range stages {
		if errs := stage(foods, cons); len(errs) > 0 {
			return &domain.AggregateError{Errors: errs}
		}
	}
	return nil
}

func (b *Builder) checkCatalog(foods []domain.Food, _ domain.Constraints) []error {
	var errs []error
	if len(foods) == 0 {
		return []error{&domain.ValidationError{Field: "foods", Reason: "catalog must contain at least one food"}}
	}
	if b.maxFoods > 0 && len(foods) > b.maxFoods {
		return []error{&domain.ValidationError{
			Field:  "foods",
			Reason: fmt.Sprintf("catalog exceeds the maximum of %d foods", b.maxFoods),
			Value:  len(foods),
		}}
	}
	seen := make(map[string]int, len(foods))
	for i, f := range foods {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			errs = append(errs, &domain.ValidationError{
				Field:  fmt.Sprintf("foods[%d].name", i),
				Reason: "food name cannot be empty",
			})
			continue
		}
		key := strings.ToLower(name)
		if prev, dup := seen[key]; dup {
			errs = append(errs, &domain.ValidationError{
				Field:  fmt.Sprintf("foods[%d].name", i),
				Reason: fmt.Sprintf("duplicate food name (also at foods[%d])", prev),
				Value:  f.Name,
			})
			continue
		}
		seen[key] = i
	}
	return errs
}

func (b *Builder) checkAlignment(foods []domain.Food, cons domain.Constraints) []error {
	var errs []error
	want := b.schema.Len()
	for i, f := range foods {
		if len(f.Nutrients) != want {
			errs = append(errs, &domain.ValidationError{
				Field:  fmt.Sprintf("foods[%d].nutrients", i),
				Reason: fmt.Sprintf("nutrient vector has length %d, schema has %d nutrients", len(f.Nutrients), want),
			})
		}
	}
	if cons.Len() != want {
		errs = append(errs, &domain.ValidationError{
			Field:  "constraints",
			Reason: fmt.Sprintf("constraint set has %d bound pairs, schema has %d nutrients", cons.Len(), want),
		})
	}
	return errs
}

func (b *Builder) checkValues(foods []domain.Food, cons domain.Constraints) []error {
	var errs []error
	for i, f := range foods {
		if bad := finiteNonNegative(f.CostPer100g); bad != "" {
			errs = append(errs, &domain.ValidationError{
				Field:  fmt.Sprintf("foods[%d].cost_per_100g", i),
				Reason: bad,
				Value:  f.CostPer100g,
			})
		}
		for j, v := range f.Nutrients {
			if bad := finiteNonNegative(v); bad != "" {
				errs = append(errs, &domain.ValidationError{
					Field:  fmt.Sprintf("foods[%d].%s_per_100g", i, b.schema.At(j).ID),
					Reason: bad,
					Value:  v,
				})
			}
		}
	}
	for j := 0; j < cons.Len(); j++ {
		id := b.schema.At(j).ID
		bounds := cons.At(j)
		if bad := finiteNonNegative(bounds.Min); bad != "" {
			errs = append(errs, &domain.ValidationError{
				Field:  "constraints.min_" + id,
				Reason: bad,
				Value:  bounds.Min,
			})
		}
		if bad := finiteNonNegative(bounds.Max); bad != "" {
			errs = append(errs, &domain.ValidationError{
				Field:  "constraints.max_" + id,
				Reason: bad,
				Value:  bounds.Max,
			})
		}
	}
	return errs
}

func (b *Builder) checkRanges(_ []domain.Food, cons domain.Constraints) []error {
	var errs []error
	for j := 0; j < cons.Len(); j++ {
		bounds := cons.At(j)
		if bounds.Min > bounds.Max {
			id := b.schema.At(j).ID
			errs = append(errs, &domain.ValidationError{
				Field:  "constraints.min_" + id,
				Reason: fmt.Sprintf("min (%g) exceeds max (%g)", bounds.Min, bounds.Max),
			})
		}
	}
	return errs
}

func finiteNonNegative(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "value must be finite"
	}
	if v < 0 {
		return "value must be >= 0"
	}
	return ""
}

// Build emits the canonical LP for a validated catalog.
//
// Layout: one objective coefficient per food (its unit cost); for nutrient j
// in schema order, row 2j is the upper bound (sum a*x <= max) and row 2j+1
// the lower bound rewritten as an upper-bound inequality (-sum a*x <= -min).
// The interpreter and the solver adapter rely on this order being stable.
func (b *Builder) Build(foods []domain.Food, cons domain.Constraints) ports.LinearProgram {
	n := len(foods)
	m := b.schema.Len()

	p := ports.LinearProgram{
		Objective: make([]float64, n),
		A:         make([][]float64, 0, 2*m),
		B:         make([]float64, 0, 2*m),
	}
	for i, f := range foods {
		p.Objective[i] = f.CostPer100g
	}
	for j := 0; j < m; j++ {
		maxRow := make([]float64, n)
		minRow := make([]float64, n)
		for i, f := range foods {
			maxRow[i] = f.NutrientAt(j)
			minRow[i] = -f.NutrientAt(j)
		}
		bounds := cons.At(j)
		p.A = append(p.A, maxRow)
		p.B = append(p.B, bounds.Max)
		p.A = append(p.A, minRow)
		p.B = append(p.B, -bounds.Min)
	}
	return p
}
