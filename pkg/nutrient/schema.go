package nutrient

import "fmt"

// Nutrient describes a single tracked nutrient.
type Nutrient struct {
	// ID is the canonical identifier used in wire fields
	// (e.g. "calories" -> "calories_per_100g", "min_calories").
	ID string `json:"id" yaml:"id"`

	// Label is a human-readable name for presentation layers.
	Label string `json:"label" yaml:"label"`

	// Unit is the measurement unit of every value for this nutrient.
	// Mixing units (e.g. vitamin A in mcg vs. minerals in mg) is the
	// caller's most common mistake, so it travels with the schema.
	Unit string `json:"unit" yaml:"unit"`
}

// Schema is the fixed, ordered list of tracked nutrients.
//
// The ordering is the single index that aligns food nutrient vectors with
// constraint bound vectors everywhere in the engine. It is immutable after
// construction; adding a nutrient means building a new Schema (a one-line
// edit to the default table below) and restarting the process.
type Schema struct {
	nutrients []Nutrient
	index     map[string]int
}

// New builds a Schema from an ordered list of nutrients.
// IDs must be non-empty and unique.
func New(nutrients ...Nutrient) (*Schema, error) {
	if len(nutrients) == 0 {
		return nil, fmt.Errorf("schema requires at least one nutrient")
	}
	s := &Schema{
		nutrients: make([]Nutrient, len(nutrients)),
		index:     make(map[string]int, len(nutrients)),
	}
	copy(s.nutrients, nutrients)
	for i, n := range s.nutrients {
		if n.ID == "" {
			return nil, fmt.Errorf("nutrient at position %d has an empty id", i)
		}
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate nutrient id %q", n.ID)
		}
		s.index[n.ID] = i
	}
	return s, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(nutrients ...Nutrient) *Schema {
	s, err := New(nutrients...)
	if err != nil {
		panic(err)
	}
	return s
}

// Default returns the standard 14-nutrient schema.
//
// Units follow nutritional labeling conventions: macronutrients and fiber in
// grams, vitamin A in mcg RAE, vitamin D in mcg, everything else in mg.
func Default() *Schema {
	return MustNew(
		Nutrient{ID: "calories", Label: "Calories", Unit: "kcal"},
		Nutrient{ID: "protein", Label: "Protein", Unit: "g"},
		Nutrient{ID: "carbs", Label: "Carbohydrates", Unit: "g"},
		Nutrient{ID: "fat", Label: "Fat", Unit: "g"},
		Nutrient{ID: "fiber", Label: "Dietary Fiber", Unit: "g"},
		Nutrient{ID: "vitamin_a", Label: "Vitamin A", Unit: "mcg RAE"},
		Nutrient{ID: "vitamin_c", Label: "Vitamin C", Unit: "mg"},
		Nutrient{ID: "vitamin_d", Label: "Vitamin D", Unit: "mcg"},
		Nutrient{ID: "calcium", Label: "Calcium", Unit: "mg"},
		Nutrient{ID: "iron", Label: "Iron", Unit: "mg"},
		Nutrient{ID: "magnesium", Label: "Magnesium", Unit: "mg"},
		Nutrient{ID: "potassium", Label: "Potassium", Unit: "mg"},
		Nutrient{ID: "sodium", Label: "Sodium", Unit: "mg"},
		Nutrient{ID: "cholesterol", Label: "Cholesterol", Unit: "mg"},
	)
}

// Len returns the number of nutrients in the schema.
func (s *Schema) Len() int {
	return len(s.nutrients)
}

// Nutrients returns the ordered nutrient list as a defensive copy.
func (s *Schema) Nutrients() []Nutrient {
	out := make([]Nutrient, len(s.nutrients))
	copy(out, s.nutrients)
	return out
}

// At returns the nutrient at position i.
func (s *Schema) At(i int) Nutrient {
	return s.nutrients[i]
}

// Index returns the position of the nutrient with the given id.
func (s *Schema) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Lookup returns the nutrient with the given id.
func (s *Schema) Lookup(id string) (Nutrient, bool) {
	i, ok := s.index[id]
	if !ok {
		return Nutrient{}, false
	}
	return s.nutrients[i], true
}
