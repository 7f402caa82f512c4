package dto

import (
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

// OptimizeResponse is the wire shape of an optimization outcome.
// Payload fields are pointers/omitempty so non-optimal statuses serialize
// without them instead of carrying zero values.
type OptimizeResponse struct {
	Status              string             `json:"status"`
	TotalCost           *float64           `json:"total_cost,omitempty"`
	OptimalQuantities   []PortionResponse  `json:"optimal_quantities,omitempty"`
	NutrientTotals      map[string]float64 `json:"nutrient_totals,omitempty"`
	ConstraintSatisfied map[string]bool    `json:"constraint_satisfied,omitempty"`
	Diagnostic          string             `json:"diagnostic,omitempty"`
}

// PortionResponse is one food's share of the optimal solution.
type PortionResponse struct {
	FoodName      string  `json:"food_name"`
	Quantity100g  float64 `json:"quantity_100g"`
	QuantityGrams float64 `json:"quantity_grams"`
	Cost          float64 `json:"cost"`
}

// FromOutcome maps a domain outcome to its wire shape.
func FromOutcome(out domain.Outcome) OptimizeResponse {
	resp := OptimizeResponse{
		Status:     string(out.Status),
		Diagnostic: out.Diagnostic,
	}
	if out.Status != domain.StatusOptimal {
		return resp
	}
	cost := out.TotalCost
	resp.TotalCost = &cost
	resp.OptimalQuantities = make([]PortionResponse, 0, len(out.Portions))
	for _, p := range out.Portions {
		resp.OptimalQuantities = append(resp.OptimalQuantities, PortionResponse{
			FoodName:      p.FoodName,
			Quantity100g:  p.Quantity100g,
			QuantityGrams: p.QuantityGrams,
			Cost:          p.Cost,
		})
	}
	resp.NutrientTotals = out.NutrientTotals
	resp.ConstraintSatisfied = out.ConstraintMet
	return resp
}

// FieldError is one field-level validation failure on the wire.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorResponse is the wire shape of a rejected request.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FromValidationError flattens a validation failure into field-level details.
func FromValidationError(err error) ErrorResponse {
	resp := ErrorResponse{
		Error:   "validation_error",
		Message: "invalid input data",
	}
	for _, fieldErr := range domain.ValidationErrors(err) {
		if ve, ok := fieldErr.(*domain.ValidationError); ok {
			resp.Details = append(resp.Details, FieldError{Field: ve.Field, Reason: ve.Reason})
		} else {
			resp.Details = append(resp.Details, FieldError{Reason: fieldErr.Error()})
		}
	}
	return resp
}

// SchemaResponse describes the nutrient schema for clients, including the
// wire field names each nutrient demands.
type SchemaResponse struct {
	Nutrients []SchemaNutrient `json:"nutrients"`
}

// SchemaNutrient is one nutrient's wire description.
type SchemaNutrient struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Unit          string `json:"unit"`
	FoodField     string `json:"food_field"`
	MinField      string `json:"min_field"`
	MaxField      string `json:"max_field"`
	SchemaOrdinal int    `json:"ordinal"`
}

// FromSchema maps the nutrient schema to its wire description.
func FromSchema(s *nutrient.Schema) SchemaResponse {
	resp := SchemaResponse{Nutrients: make([]SchemaNutrient, 0, s.Len())}
	for i, n := range s.Nutrients() {
		resp.Nutrients = append(resp.Nutrients, SchemaNutrient{
			ID:            n.ID,
			Label:         n.Label,
			Unit:          n.Unit,
			FoodField:     n.ID + "_per_100g",
			MinField:      "min_" + n.ID,
			MaxField:      "max_" + n.ID,
			SchemaOrdinal: i,
		})
	}
	return resp
}
