package dietopt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealplanr/dietopt"
	"github.com/mealplanr/dietopt/internal/config"
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

// food builds a catalog entry against the default schema, with the named
// nutrient amounts set and everything else zero.
func food(t *testing.T, s *nutrient.Schema, name string, cost float64, amounts map[string]float64) domain.Food {
	t.Helper()
	f := domain.Food{Name: name, CostPer100g: cost, Nutrients: make([]float64, s.Len())}
	for id, v := range amounts {
		i, ok := s.Index(id)
		require.True(t, ok, "unknown nutrient %q", id)
		f.Nutrients[i] = v
	}
	return f
}

// openConstraints allows everything, then tightens the named bounds.
func openConstraints(t *testing.T, s *nutrient.Schema, bounds map[string]domain.Bounds) domain.Constraints {
	t.Helper()
	cons := domain.Constraints{Bounds: make([]domain.Bounds, s.Len())}
	for j := range cons.Bounds {
		cons.Bounds[j] = domain.Bounds{Min: 0, Max: 1e9}
	}
	for id, b := range bounds {
		i, ok := s.Index(id)
		require.True(t, ok, "unknown nutrient %q", id)
		cons.Bounds[i] = b
	}
	return cons
}

func TestOptimize_SingleFoodProteinFloor(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)
	s := opt.Schema()

	foods := []domain.Food{
		food(t, s, "chicken_breast", 2.5, map[string]float64{"calories": 165, "protein": 31}),
	}
	cons := openConstraints(t, s, map[string]domain.Bounds{
		"protein": {Min: 30, Max: 200},
	})

	out, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)

	require.Equal(t, domain.StatusOptimal, out.Status)
	// The protein floor binds: x = 30/31 units, cost 2.5 * 30/31.
	assert.InDelta(t, 2.5*30.0/31.0, out.TotalCost, 1e-6)
	require.Len(t, out.Portions, 1)
	assert.Equal(t, "chicken_breast", out.Portions[0].FoodName)
	assert.InDelta(t, 30.0/31.0, out.Portions[0].Quantity100g, 1e-6)
	assert.InDelta(t, 3000.0/31.0, out.Portions[0].QuantityGrams, 1e-4)

	assert.InDelta(t, 30.0, out.NutrientTotals["protein"], 1e-6)
	for id, met := range out.ConstraintMet {
		assert.True(t, met, "constraint on %s", id)
	}
}

func TestOptimize_PicksCheaperProteinSource(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)
	s := opt.Schema()

	foods := []domain.Food{
		food(t, s, "chicken_breast", 2.5, map[string]float64{"calories": 165, "protein": 31}),
		food(t, s, "lentils", 0.4, map[string]float64{"calories": 116, "protein": 9}),
	}
	cons := openConstraints(t, s, map[string]domain.Bounds{
		"protein": {Min: 30, Max: 200},
	})

	out, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)

	require.Equal(t, domain.StatusOptimal, out.Status)
	// Lentils cost 0.4/9 per protein gram vs 2.5/31 for chicken, so the
	// optimum is all lentils: 30/9 units at 0.4 each.
	require.Len(t, out.Portions, 1)
	assert.Equal(t, "lentils", out.Portions[0].FoodName)
	assert.InDelta(t, 0.4*30.0/9.0, out.TotalCost, 1e-6)
}

func TestOptimize_InfeasibleWhenCapsCollide(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)
	s := opt.Schema()

	foods := []domain.Food{
		food(t, s, "chicken_breast", 2.5, map[string]float64{"calories": 165, "protein": 31}),
	}
	// 30g of protein needs ~160 kcal, but calories are capped at 100.
	cons := openConstraints(t, s, map[string]domain.Bounds{
		"protein":  {Min: 30, Max: 200},
		"calories": {Min: 0, Max: 100},
	})

	out, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInfeasible, out.Status)
	assert.Empty(t, out.Portions)
	assert.Zero(t, out.TotalCost)
}

func TestOptimize_EmptyCatalogIsValidationError(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)

	cons := openConstraints(t, opt.Schema(), nil)
	_, err = opt.Optimize(context.Background(), nil, cons)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestOptimize_CostScaleInvariance(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)
	s := opt.Schema()

	build := func(scale float64) ([]domain.Food, domain.Constraints) {
		foods := []domain.Food{
			food(t, s, "chicken_breast", 2.5*scale, map[string]float64{"calories": 165, "protein": 31}),
			food(t, s, "lentils", 0.4*scale, map[string]float64{"calories": 116, "protein": 9}),
		}
		cons := openConstraints(t, s, map[string]domain.Bounds{
			"protein":  {Min: 30, Max: 200},
			"calories": {Min: 0, Max: 2500},
		})
		return foods, cons
	}

	foods, cons := build(1)
	base, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, base.Status)

	foods, cons = build(100)
	scaled, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, scaled.Status)

	// Scaling every cost by the same factor scales the optimum cost but
	// leaves the chosen quantities untouched.
	assert.InDelta(t, base.TotalCost*100, scaled.TotalCost, 1e-6)
	require.Len(t, scaled.Portions, len(base.Portions))
	for i := range base.Portions {
		assert.Equal(t, base.Portions[i].FoodName, scaled.Portions[i].FoodName)
		assert.InDelta(t, base.Portions[i].Quantity100g, scaled.Portions[i].Quantity100g, 1e-6)
	}
}

func TestOptimize_ExactIntakeViaMatchedBounds(t *testing.T) {
	opt, err := dietopt.New()
	require.NoError(t, err)
	s := opt.Schema()

	foods := []domain.Food{
		food(t, s, "oats", 0.3, map[string]float64{"calories": 389, "protein": 16.9, "fiber": 10.6}),
	}
	cons := openConstraints(t, s, map[string]domain.Bounds{
		"calories": {Min: 389, Max: 389},
	})

	out, err := opt.Optimize(context.Background(), foods, cons)
	require.NoError(t, err)

	require.Equal(t, domain.StatusOptimal, out.Status)
	require.Len(t, out.Portions, 1)
	assert.InDelta(t, 1.0, out.Portions[0].Quantity100g, 1e-6)
	assert.InDelta(t, 389.0, out.NutrientTotals["calories"], 1e-6)
	assert.True(t, out.ConstraintMet["calories"])
}

func TestNew_RejectsBrokenConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Port = -1
	_, err := dietopt.New(dietopt.WithConfig(cfg))
	assert.Error(t, err)
}
