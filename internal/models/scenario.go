package models

// ScenarioParameters holds the user tunables of one recompute cycle.
// Irradiance is in kWh/m²/day, CO2PerLiter in kg and PricePerLiter in the local currency.
type ScenarioParameters struct {
	Irradiance       float64 `json:"irradiance" yaml:"irradiance" default:"4.5" validate:"gte=1,lte=8"`
	PerformanceRatio float64 `json:"performance_ratio" yaml:"performance_ratio" default:"0.8" validate:"gte=0.6,lte=0.95"`
	HorizonDays      int     `json:"horizon_days" yaml:"horizon_days" default:"7" validate:"oneof=7 15 30"`
	KWhPerLiter      float64 `json:"kwh_per_liter" yaml:"kwh_per_liter" default:"3.0" validate:"gt=0"`
	CO2PerLiter      float64 `json:"co2_per_liter" yaml:"co2_per_liter" default:"2.2" validate:"gte=0"`
	PricePerLiter    float64 `json:"price_per_liter" yaml:"price_per_liter" default:"2553.59" validate:"gte=0"`
}

// CapacityScenario is an installed-capacity tier
type CapacityScenario struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	CapacityKW float64 `json:"capacity_kw"`
}

// Scenario keys of the fixed catalog
const (
	ScenarioSmall  = "small"
	ScenarioMedium = "medium"
	ScenarioLarge  = "large"
)

// Catalog returns the fixed capacity tiers in display order
func Catalog() []CapacityScenario {
	return []CapacityScenario{
		{Key: ScenarioSmall, Label: "Pequeña (100 kW)", CapacityKW: 100},
		{Key: ScenarioMedium, Label: "Mediana (1 MW)", CapacityKW: 1000},
		{Key: ScenarioLarge, Label: "Grande (5 MW)", CapacityKW: 5000},
	}
}

// Selection maps a scenario key to its activation flag
type Selection map[string]bool

// AllActive returns a selection with every catalog scenario switched on
func AllActive() Selection {
	sel := Selection{}
	for _, s := range Catalog() {
		sel[s.Key] = true
	}
	return sel
}

// Active reports whether the scenario is switched on
func (s Selection) Active(key string) bool {
	return s[key]
}
