package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Dan9191/solar-simulator/internal/benefit"
	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/demand"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/params"
	"github.com/Dan9191/solar-simulator/internal/utils"
	"github.com/sirupsen/logrus"
)

// Comparison chart indicators, in display order
const (
	IndicatorEnergy = "Energía (kWh)"
	IndicatorDiesel = "Diésel Ahorrado (L)"
	IndicatorCO2    = "CO₂ Evitado (kg)"
)

// PriceSource provides the current diesel price per liter
type PriceSource interface {
	GetDieselPrice(ctx context.Context) (float64, error)
}

// Metrics receives recompute telemetry
type Metrics interface {
	RecordRecompute(horizonDays string, seconds float64)
	RecordError(kind string)
	RecordDieselPrice(price float64)
}

// Service handles the simulation logic
type Service struct {
	records []models.DemandRecord
	catalog []models.CapacityScenario
	prices  PriceSource
	metrics Metrics
	log     *logrus.Logger
	config  *config.Config

	mu          sync.RWMutex
	dieselPrice float64
}

// NewService initializes a new service over an already loaded record set
func NewService(records []models.DemandRecord, prices PriceSource, metrics Metrics, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		records: records,
		catalog: models.Catalog(),
		prices:  prices,
		metrics: metrics,
		log:     log,
		config:  cfg,
	}
}

// Catalog returns the capacity scenarios
func (s *Service) Catalog() []models.CapacityScenario {
	return append([]models.CapacityScenario(nil), s.catalog...)
}

// Records returns the loaded demand records
func (s *Service) Records() []models.DemandRecord {
	return s.records
}

// DefaultParameters returns the preset parameters with the latest known diesel price
func (s *Service) DefaultParameters() models.ScenarioParameters {
	p := params.Defaults()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dieselPrice > 0 {
		p.PricePerLiter = s.dieselPrice
	}
	return p
}

// DieselPrice returns the default diesel price and whether it came from the feed
func (s *Service) DieselPrice() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dieselPrice > 0 {
		return s.dieselPrice, true
	}
	return params.Defaults().PricePerLiter, false
}

// RefreshDieselPrice pulls the price feed and stores the result
func (s *Service) RefreshDieselPrice(ctx context.Context) error {
	if s.prices == nil {
		return fmt.Errorf("no fuel price source configured")
	}
	price, err := s.prices.GetDieselPrice(ctx)
	if err != nil {
		s.metrics.RecordError("fuel_price")
		s.log.Errorf("Failed to refresh diesel price: %v", err)
		return err
	}

	s.mu.Lock()
	s.dieselPrice = price
	s.mu.Unlock()

	s.metrics.RecordDieselPrice(price)
	s.log.Infof("Default diesel price set to %.2f", price)
	return nil
}

// Window returns the first horizonDays records of a kind
func (s *Service) Window(kind models.Kind, horizonDays int) []models.DemandRecord {
	return demand.Filter(s.records, kind, horizonDays)
}

// Recompute rebuilds the whole dashboard for one configuration
func (s *Service) Recompute(p models.ScenarioParameters, sel models.Selection) (*models.Dashboard, error) {
	start := time.Now()

	if err := params.Validate(p); err != nil {
		s.metrics.RecordError("invalid_parameter")
		return nil, err
	}

	results, err := benefit.Evaluate(s.catalog, sel, p)
	if err != nil {
		s.metrics.RecordError("invalid_parameter")
		return nil, err
	}

	window := demand.Filter(s.records, models.KindPredicted, p.HorizonDays)
	currency := s.config.Currency

	d := &models.Dashboard{
		Title:           fmt.Sprintf("Simulación de Energía Solar - %s", s.config.Locality),
		Locality:        s.config.Locality,
		Currency:        currency,
		Parameters:      p,
		Demand:          demand.Series(s.records),
		PredictionStart: demand.PredictionStart(s.records),
		Window:          window,
		EffectiveDays:   len(window),
		WindowCaption:   windowCaption(p.HorizonDays, len(window)),
		BenefitCaption:  fmt.Sprintf("Cálculo acumulado de beneficios para un horizonte de **%d días**.", p.HorizonDays),
		Results:         results,
		Metrics:         metricCards(results, currency),
		Footnote: fmt.Sprintf("Datos de demanda simulada para %s. Parámetros personalizables para análisis energético, económico y ambiental.",
			s.config.Locality),
	}
	if len(results) > 0 {
		d.Comparison = comparison(results, currency)
	}

	s.metrics.RecordRecompute(strconv.Itoa(p.HorizonDays), time.Since(start).Seconds())
	s.log.Debugf("Recomputed dashboard: horizon=%d scenarios=%d window=%d", p.HorizonDays, len(results), len(window))
	return d, nil
}

func windowCaption(horizonDays, available int) string {
	caption := fmt.Sprintf("Mostrando demanda energética para los próximos **%d días** predichos.", horizonDays)
	if available < horizonDays {
		caption += fmt.Sprintf(" Solo hay %d registros predichos disponibles.", available)
	}
	return caption
}

// CostIndicator is the comparison label of the economic savings
func CostIndicator(currency string) string {
	return fmt.Sprintf("Ahorro Económico (%s)", currency)
}

func metricCards(results []models.BenefitResult, currency string) []models.MetricCard {
	cards := make([]models.MetricCard, 0, 4*len(results))
	for _, r := range results {
		cards = append(cards,
			models.MetricCard{Scenario: r.Scenario, Label: r.Scenario + " - Energía Generada Total", Value: utils.FormatQuantity(r.EnergyKWh, "kWh")},
			models.MetricCard{Scenario: r.Scenario, Label: r.Scenario + " - Diésel Ahorrado", Value: utils.FormatQuantity(r.DieselLiters, "L")},
			models.MetricCard{Scenario: r.Scenario, Label: r.Scenario + " - CO₂ Evitado", Value: utils.FormatQuantity(r.CO2Kg, "kg")},
			models.MetricCard{Scenario: r.Scenario, Label: r.Scenario + " - Ahorro Económico", Value: utils.FormatMoney(r.Cost, currency)},
		)
	}
	return cards
}

func comparison(results []models.BenefitResult, currency string) *models.Comparison {
	costIndicator := CostIndicator(currency)
	c := &models.Comparison{
		Indicators: []string{IndicatorEnergy, IndicatorDiesel, IndicatorCO2, costIndicator},
		LogScale:   true,
	}
	// indicator-major order, as the melted results table
	for _, r := range results {
		c.Bars = append(c.Bars, models.ComparisonBar{Indicator: IndicatorEnergy, Scenario: r.Scenario, Value: r.EnergyKWh})
	}
	for _, r := range results {
		c.Bars = append(c.Bars, models.ComparisonBar{Indicator: IndicatorDiesel, Scenario: r.Scenario, Value: r.DieselLiters})
	}
	for _, r := range results {
		c.Bars = append(c.Bars, models.ComparisonBar{Indicator: IndicatorCO2, Scenario: r.Scenario, Value: r.CO2Kg})
	}
	for _, r := range results {
		c.Bars = append(c.Bars, models.ComparisonBar{Indicator: costIndicator, Scenario: r.Scenario, Value: r.Cost})
	}
	return c
}
