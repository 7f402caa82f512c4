package domain

// Food is a purchasable item with a cost and a fixed vector of nutrient
// yields per 100g serving. Nutrients is aligned to the nutrient schema
// ordering; its length must equal the schema size.
//
// A Food is immutable once submitted and lives only for the duration of a
// single optimization request.
type Food struct {
	Name        string    `json:"name" yaml:"name"`
	CostPer100g float64   `json:"cost_per_100g" yaml:"cost_per_100g"`
	Nutrients   []float64 `json:"nutrients" yaml:"nutrients"`
}

// NutrientAt returns the yield of the nutrient at schema position i,
// or zero when the vector is shorter (callers validate lengths up front;
// this keeps read paths panic-free).
func (f Food) NutrientAt(i int) float64 {
	if i < 0 || i >= len(f.Nutrients) {
		return 0
	}
	return f.Nutrients[i]
}
