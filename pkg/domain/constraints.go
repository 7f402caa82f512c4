package domain

// Bounds is an acceptable [Min, Max] range for one nutrient.
// Min == Max pins the nutrient to an exact value. Min == 0 with a large Max
// effectively disables the lower bound.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Constraints holds one Bounds pair per schema nutrient, in schema order.
type Constraints struct {
	Bounds []Bounds `json:"bounds" yaml:"bounds"`
}

// At returns the bounds at schema position i.
func (c Constraints) At(i int) Bounds {
	return c.Bounds[i]
}

// Len returns the number of bound pairs.
func (c Constraints) Len() int {
	return len(c.Bounds)
}
