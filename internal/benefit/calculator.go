// Package benefit computes the energy, diesel, emissions and cost benefits
// of a solar capacity scenario.
package benefit

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/solar-simulator/internal/models"
)

// ErrInvalidParameter is returned when an input cannot produce a finite result
var ErrInvalidParameter = errors.New("invalid parameter")

// Calculate evaluates the benefit formulas for a single scenario
func Calculate(scenario models.CapacityScenario, p models.ScenarioParameters) (models.BenefitResult, error) {
	if err := checkInputs(scenario.CapacityKW, p); err != nil {
		return models.BenefitResult{}, err
	}

	energy := scenario.CapacityKW * p.Irradiance * p.PerformanceRatio * float64(p.HorizonDays)
	diesel := energy / p.KWhPerLiter
	co2 := diesel * p.CO2PerLiter
	cost := diesel * p.PricePerLiter

	for _, v := range []float64{energy, diesel, co2, cost} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return models.BenefitResult{}, fmt.Errorf("%w: %s produces a non-finite result", ErrInvalidParameter, scenario.Label)
		}
	}

	return models.BenefitResult{
		Scenario:     scenario.Label,
		EnergyKWh:    energy,
		DieselLiters: diesel,
		CO2Kg:        co2,
		Cost:         cost,
	}, nil
}

// Evaluate calculates every active scenario in catalog order
func Evaluate(catalog []models.CapacityScenario, sel models.Selection, p models.ScenarioParameters) ([]models.BenefitResult, error) {
	results := make([]models.BenefitResult, 0, len(catalog))
	for _, s := range catalog {
		if !sel.Active(s.Key) {
			continue
		}
		r, err := Calculate(s, p)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func checkInputs(capacityKW float64, p models.ScenarioParameters) error {
	if !(p.KWhPerLiter > 0) || math.IsInf(p.KWhPerLiter, 0) {
		return fmt.Errorf("%w: kwh_per_liter must be positive, got %v", ErrInvalidParameter, p.KWhPerLiter)
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"capacity_kw", capacityKW},
		{"irradiance", p.Irradiance},
		{"performance_ratio", p.PerformanceRatio},
		{"horizon_days", float64(p.HorizonDays)},
		{"co2_per_liter", p.CO2PerLiter},
		{"price_per_liter", p.PricePerLiter},
	}
	for _, f := range nonNegative {
		// NaN fails this comparison too
		if !(f.value >= 0) {
			return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	return nil
}
