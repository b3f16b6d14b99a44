package benefit

import (
	"math"
	"testing"

	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leticia() models.ScenarioParameters {
	return models.ScenarioParameters{
		Irradiance:       4.5,
		PerformanceRatio: 0.80,
		HorizonDays:      30,
		KWhPerLiter:      3.0,
		CO2PerLiter:      2.2,
		PricePerLiter:    2553.59,
	}
}

func TestCalculateMediumScenario(t *testing.T) {
	r, err := Calculate(models.CapacityScenario{Label: "Mediana (1 MW)", CapacityKW: 1000}, leticia())
	require.NoError(t, err)

	assert.Equal(t, "Mediana (1 MW)", r.Scenario)
	assert.InDelta(t, 108000.0, r.EnergyKWh, 0.01)
	assert.InDelta(t, 36000.0, r.DieselLiters, 0.01)
	assert.InDelta(t, 79200.0, r.CO2Kg, 0.01)
	assert.InDelta(t, 91929240.00, r.Cost, 0.01)
}

func TestCalculateEnergyFormula(t *testing.T) {
	p := leticia()
	for _, capacity := range []float64{1, 100, 1000, 5000, 12345.6} {
		for _, h := range []float64{1.0, 2.3, 4.5, 8.0} {
			for _, pr := range []float64{0.60, 0.77, 0.95} {
				for _, days := range []int{7, 15, 30} {
					p.Irradiance, p.PerformanceRatio, p.HorizonDays = h, pr, days
					r, err := Calculate(models.CapacityScenario{CapacityKW: capacity}, p)
					require.NoError(t, err)
					want := capacity * h * pr * float64(days)
					assert.InEpsilon(t, want, r.EnergyKWh, 1e-9)
				}
			}
		}
	}
}

func TestCalculateZeroCapacity(t *testing.T) {
	r, err := Calculate(models.CapacityScenario{CapacityKW: 0}, leticia())
	require.NoError(t, err)
	assert.Zero(t, r.EnergyKWh)
	assert.Zero(t, r.Cost)
}

func TestCalculateIsIdempotent(t *testing.T) {
	s := models.CapacityScenario{Label: "Grande (5 MW)", CapacityKW: 5000}
	first, err := Calculate(s, leticia())
	require.NoError(t, err)
	second, err := Calculate(s, leticia())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateMonotonicInCapacity(t *testing.T) {
	var prev models.BenefitResult
	for i, capacity := range []float64{10, 100, 1000, 5000, 50000} {
		r, err := Calculate(models.CapacityScenario{CapacityKW: capacity}, leticia())
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, r.EnergyKWh, prev.EnergyKWh)
			assert.Greater(t, r.DieselLiters, prev.DieselLiters)
			assert.Greater(t, r.CO2Kg, prev.CO2Kg)
			assert.Greater(t, r.Cost, prev.Cost)
		}
		prev = r
	}
}

func TestCalculateRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		mutate   func(p *models.ScenarioParameters)
	}{
		{"zero kwh per liter", 100, func(p *models.ScenarioParameters) { p.KWhPerLiter = 0 }},
		{"negative kwh per liter", 100, func(p *models.ScenarioParameters) { p.KWhPerLiter = -1 }},
		{"nan kwh per liter", 100, func(p *models.ScenarioParameters) { p.KWhPerLiter = math.NaN() }},
		{"kwh per liter close to zero", 5000, func(p *models.ScenarioParameters) { p.KWhPerLiter = math.SmallestNonzeroFloat64 }},
		{"negative capacity", -1, func(p *models.ScenarioParameters) {}},
		{"negative irradiance", 100, func(p *models.ScenarioParameters) { p.Irradiance = -4.5 }},
		{"nan performance ratio", 100, func(p *models.ScenarioParameters) { p.PerformanceRatio = math.NaN() }},
		{"negative horizon", 100, func(p *models.ScenarioParameters) { p.HorizonDays = -7 }},
		{"negative price", 100, func(p *models.ScenarioParameters) { p.PricePerLiter = -10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := leticia()
			tt.mutate(&p)
			r, err := Calculate(models.CapacityScenario{CapacityKW: tt.capacity}, p)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Equal(t, models.BenefitResult{}, r)
		})
	}
}

func TestEvaluateKeepsCatalogOrder(t *testing.T) {
	sel := models.Selection{models.ScenarioLarge: true, models.ScenarioSmall: true}
	results, err := Evaluate(models.Catalog(), sel, leticia())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Pequeña (100 kW)", results[0].Scenario)
	assert.Equal(t, "Grande (5 MW)", results[1].Scenario)
}

func TestEvaluateNoActiveScenarios(t *testing.T) {
	results, err := Evaluate(models.Catalog(), models.Selection{}, leticia())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvaluatePropagatesErrors(t *testing.T) {
	p := leticia()
	p.KWhPerLiter = 0
	_, err := Evaluate(models.Catalog(), models.AllActive(), p)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
