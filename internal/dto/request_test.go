package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

func testSchema() *nutrient.Schema {
	return nutrient.MustNew(
		nutrient.Nutrient{ID: "calories", Label: "Calories", Unit: "kcal"},
		nutrient.Nutrient{ID: "protein", Label: "Protein", Unit: "g"},
	)
}

func TestDecode_WellFormedRequest(t *testing.T) {
	req := Request{
		Foods: []map[string]any{
			{
				"name":              "chicken",
				"cost_per_100g":     2.5,
				"calories_per_100g": 165,
				"protein_per_100g":  31.0,
			},
		},
		Constraints: map[string]any{
			"min_calories": 0,
			"max_calories": 2500.0,
			"min_protein":  30,
			"max_protein":  json.Number("200"),
		},
	}

	foods, cons, err := Decode(req, testSchema())
	require.NoError(t, err)

	require.Len(t, foods, 1)
	assert.Equal(t, "chicken", foods[0].Name)
	assert.Equal(t, 2.5, foods[0].CostPer100g)
	assert.Equal(t, []float64{165, 31}, foods[0].Nutrients)

	require.Equal(t, 2, cons.Len())
	assert.Equal(t, domain.Bounds{Min: 0, Max: 2500}, cons.At(0))
	assert.Equal(t, domain.Bounds{Min: 30, Max: 200}, cons.At(1))
}

func TestDecode_CollectsEveryMissingField(t *testing.T) {
	req := Request{
		Foods: []map[string]any{
			{"name": "mystery"}, // no cost, no nutrient fields
		},
		Constraints: map[string]any{
			"min_calories": 0,
			"max_calories": 2000,
			"min_protein":  "lots", // wrong type
			// max_protein missing
		},
	}

	_, _, err := Decode(req, testSchema())
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))

	var fields []string
	for _, e := range domain.ValidationErrors(err) {
		fields = append(fields, e.(*domain.ValidationError).Field)
	}
	assert.ElementsMatch(t, []string{
		"foods[0].cost_per_100g",
		"foods[0].calories_per_100g",
		"foods[0].protein_per_100g",
		"constraints.min_protein",
		"constraints.max_protein",
	}, fields)
}

func TestDecode_MissingConstraintsObject(t *testing.T) {
	req := Request{
		Foods: []map[string]any{{
			"name":              "rice",
			"cost_per_100g":     0.5,
			"calories_per_100g": 130,
			"protein_per_100g":  2.7,
		}},
	}

	_, _, err := Decode(req, testSchema())
	require.Error(t, err)
	errs := domain.ValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "constraints", errs[0].(*domain.ValidationError).Field)
}

func TestDecode_OmittedNutrientIsNotZero(t *testing.T) {
	// A food that simply leaves out a nutrient field must be rejected, not
	// silently treated as containing none of it.
	req := Request{
		Foods: []map[string]any{{
			"name":              "broth",
			"cost_per_100g":     0.2,
			"calories_per_100g": 10,
		}},
		Constraints: map[string]any{
			"min_calories": 0, "max_calories": 100,
			"min_protein": 0, "max_protein": 100,
		},
	}

	_, _, err := Decode(req, testSchema())
	require.Error(t, err)
	errs := domain.ValidationErrors(err)
	require.Len(t, errs, 1)
	ve := errs[0].(*domain.ValidationError)
	assert.Equal(t, "foods[0].protein_per_100g", ve.Field)
	assert.Equal(t, "required numeric field", ve.Reason)
}

func TestNumber_CoercesDecoderRepresentations(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(1.5), 1.5, true},
		{float32(2), 2, true},
		{int(3), 3, true},
		{int64(4), 4, true},
		{uint64(5), 5, true},
		{json.Number("6.25"), 6.25, true},
		{json.Number("nope"), 0, false},
		{"7", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tc := range cases {
		got, ok := number(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if ok {
			assert.Equal(t, tc.want, got, "input %v", tc.in)
		}
	}
}
