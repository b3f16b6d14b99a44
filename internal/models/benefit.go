package models

import "time"

// BenefitResult represents the derived benefits of one capacity scenario
type BenefitResult struct {
	Scenario     string  `json:"scenario"`
	EnergyKWh    float64 `json:"energy_kwh"`
	DieselLiters float64 `json:"diesel_liters"`
	CO2Kg        float64 `json:"co2_kg"`
	Cost         float64 `json:"cost"` // local currency
}

// MetricCard is a formatted metric shown per scenario
type MetricCard struct {
	Scenario string `json:"scenario"`
	Label    string `json:"label"`
	Value    string `json:"value"`
}

// ComparisonBar is one bar of the grouped comparison chart
type ComparisonBar struct {
	Indicator string  `json:"indicator"`
	Scenario  string  `json:"scenario"`
	Value     float64 `json:"value"`
}

// Comparison holds the grouped bar chart data
type Comparison struct {
	Indicators []string        `json:"indicators"`
	Bars       []ComparisonBar `json:"bars"`
	LogScale   bool            `json:"log_scale"`
}

// Dashboard is the full view produced by one recompute
type Dashboard struct {
	Title           string             `json:"title"`
	Locality        string             `json:"locality"`
	Currency        string             `json:"currency"`
	Parameters      ScenarioParameters `json:"parameters"`
	Demand          []DemandSeries     `json:"demand"`
	PredictionStart *time.Time         `json:"prediction_start,omitempty"`
	Window          []DemandRecord     `json:"window"`
	EffectiveDays   int                `json:"effective_days"`
	WindowCaption   string             `json:"window_caption"`
	BenefitCaption  string             `json:"benefit_caption"`
	Results         []BenefitResult    `json:"results"`
	Metrics         []MetricCard       `json:"metrics"`
	Comparison      *Comparison        `json:"comparison,omitempty"`
	Footnote        string             `json:"footnote"`
}
