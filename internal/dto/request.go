// Package dto maps wire-level request and response shapes onto the domain
// types. The wire format is schema-driven: every nutrient in the schema
// contributes one `<id>_per_100g` food field and a `min_<id>`/`max_<id>`
// constraint pair, all mandatory. The same mapping serves the HTTP, MCP and
// CLI adapters so they cannot drift apart.
package dto

import (
	"encoding/json"
	"fmt"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

// Request is the raw optimization request as decoded from JSON or YAML.
// Food and constraint objects stay generic maps until Decode projects them
// through the schema, because their field sets depend on the schema.
type Request struct {
	Foods       []map[string]any `json:"foods" yaml:"foods" mapstructure:"foods"`
	Constraints map[string]any   `json:"constraints" yaml:"constraints" mapstructure:"constraints"`
}

// Decode projects a Request through the schema into domain types.
// Every missing or non-numeric field is collected before failing, so the
// caller learns about all of them at once. Omitted nutrient fields are an
// error, never a silent default to zero.
func Decode(r Request, schema *nutrient.Schema) ([]domain.Food, domain.Constraints, error) {
	var errs []error

	foods := make([]domain.Food, 0, len(r.Foods))
	for i, raw := range r.Foods {
		food := domain.Food{Nutrients: make([]float64, schema.Len())}

		if name, ok := raw["name"].(string); ok {
			food.Name = name
		} else {
			errs = append(errs, &domain.ValidationError{
				Field:  fmt.Sprintf("foods[%d].name", i),
				Reason: "required string field",
			})
		}
		if cost, ok := number(raw["cost_per_100g"]); ok {
			food.CostPer100g = cost
		} else {
			errs = append(errs, missingNumber(fmt.Sprintf("foods[%d].cost_per_100g", i), raw["cost_per_100g"]))
		}
		for j, n := range schema.Nutrients() {
			field := n.ID + "_per_100g"
			if v, ok := number(raw[field]); ok {
				food.Nutrients[j] = v
			} else {
				errs = append(errs, missingNumber(fmt.Sprintf("foods[%d].%s", i, field), raw[field]))
			}
		}
		foods = append(foods, food)
	}

	cons := domain.Constraints{Bounds: make([]domain.Bounds, schema.Len())}
	if r.Constraints == nil {
		errs = append(errs, &domain.ValidationError{Field: "constraints", Reason: "required object"})
	} else {
		for j, n := range schema.Nutrients() {
			minField, maxField := "min_"+n.ID, "max_"+n.ID
			if v, ok := number(r.Constraints[minField]); ok {
				cons.Bounds[j].Min = v
			} else {
				errs = append(errs, missingNumber("constraints."+minField, r.Constraints[minField]))
			}
			if v, ok := number(r.Constraints[maxField]); ok {
				cons.Bounds[j].Max = v
			} else {
				errs = append(errs, missingNumber("constraints."+maxField, r.Constraints[maxField]))
			}
		}
	}

	if len(errs) > 0 {
		return nil, domain.Constraints{}, &domain.AggregateError{Errors: errs}
	}
	return foods, cons, nil
}

func missingNumber(field string, got any) error {
	if got == nil {
		return &domain.ValidationError{Field: field, Reason: "required numeric field"}
	}
	return &domain.ValidationError{Field: field, Reason: "must be a number", Value: got}
}

// number coerces the numeric representations the three decoders produce:
// encoding/json (float64, json.Number), yaml.v3 (int, float64) and
// mapstructure from MCP arguments (float64, int, int64).
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
