package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Dan9191/solar-simulator/internal/chart"
	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/demand"
	"github.com/Dan9191/solar-simulator/internal/metrics"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/params"
	"github.com/Dan9191/solar-simulator/internal/report"
	"github.com/Dan9191/solar-simulator/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options mirrors the dashboard parameter surface
type options struct {
	preset    string
	demandCSV string
	delimiter string
	locality  string
	currency  string
	verbose   bool

	irradiance  float64
	pr          float64
	horizon     int
	kwhPerLiter float64
	co2PerLiter float64
	price       float64

	small, medium, large bool
}

func (o *options) bind(cmd *cobra.Command) {
	d := params.Defaults()
	f := cmd.Flags()
	f.StringVar(&o.preset, "params", "", "YAML parameter preset; explicit flags override it")
	f.StringVar(&o.demandCSV, "demand", "demanda_historica_y_predicha.csv", "demand CSV with Fecha, ACTIVA, Tipo")
	f.StringVar(&o.delimiter, "delimiter", ",", "CSV field delimiter")
	f.StringVar(&o.locality, "locality", "Leticia, Colombia", "locality shown in titles")
	f.StringVar(&o.currency, "currency", "COP", "currency of the diesel price")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	f.Float64Var(&o.irradiance, "irradiance", d.Irradiance, "solar irradiance H (kWh/m²/day), 1.0-8.0")
	f.Float64Var(&o.pr, "pr", d.PerformanceRatio, "performance ratio, 0.60-0.95")
	f.IntVar(&o.horizon, "horizon", d.HorizonDays, "horizon in days: 7, 15 or 30")
	f.Float64Var(&o.kwhPerLiter, "kwh-per-liter", d.KWhPerLiter, "kWh produced per liter of diesel")
	f.Float64Var(&o.co2PerLiter, "co2-per-liter", d.CO2PerLiter, "kg of CO₂ per liter of diesel")
	f.Float64Var(&o.price, "price-per-liter", d.PricePerLiter, "diesel price per liter")

	f.BoolVar(&o.small, "small", true, "include Pequeña (100 kW)")
	f.BoolVar(&o.medium, "medium", true, "include Mediana (1 MW)")
	f.BoolVar(&o.large, "large", true, "include Grande (5 MW)")
}

// parameters resolves defaults, then the preset, then explicitly set flags
func (o *options) parameters(cmd *cobra.Command) (models.ScenarioParameters, error) {
	p := params.Defaults()
	if o.preset != "" {
		loaded, err := params.LoadFile(o.preset)
		if err != nil {
			return p, err
		}
		p = loaded
	}

	f := cmd.Flags()
	if f.Changed("irradiance") {
		p.Irradiance = o.irradiance
	}
	if f.Changed("pr") {
		p.PerformanceRatio = o.pr
	}
	if f.Changed("horizon") {
		p.HorizonDays = o.horizon
	}
	if f.Changed("kwh-per-liter") {
		p.KWhPerLiter = o.kwhPerLiter
	}
	if f.Changed("co2-per-liter") {
		p.CO2PerLiter = o.co2PerLiter
	}
	if f.Changed("price-per-liter") {
		p.PricePerLiter = o.price
	}
	return p, nil
}

func (o *options) selection() models.Selection {
	return models.Selection{
		models.ScenarioSmall:  o.small,
		models.ScenarioMedium: o.medium,
		models.ScenarioLarge:  o.large,
	}
}

// recompute loads the demand file and evaluates the configured scenarios
func recompute(cmd *cobra.Command, o *options) (*models.Dashboard, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	p, err := o.parameters(cmd)
	if err != nil {
		return nil, err
	}

	delim := []rune(o.delimiter)
	if len(delim) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", o.delimiter)
	}
	records, err := demand.NewCSVLoader(o.demandCSV, delim[0], logger).Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loading demand: %w", err)
	}

	cfg := &config.Config{Locality: o.locality, Currency: o.currency}
	svc := service.NewService(records, nil, metrics.New(prometheus.NewRegistry()), logger, cfg)
	return svc.Recompute(p, o.selection())
}

func runCalc(cmd *cobra.Command, o *options) error {
	d, err := recompute(cmd, o)
	if err != nil {
		return err
	}
	printDashboard(cmd.OutOrStdout(), d)
	return nil
}

func runExport(cmd *cobra.Command, o *options, out string) error {
	d, err := recompute(cmd, o)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, d); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d scenarios to %s\n", len(d.Results), out)
	return nil
}

func runChart(cmd *cobra.Command, o *options, kind, out string) error {
	d, err := recompute(cmd, o)
	if err != nil {
		return err
	}
	if out == "" {
		out = kind + ".png"
	}

	var buf bytes.Buffer
	switch kind {
	case "demand":
		err = chart.RenderDemand(&buf, d.Demand)
	case "benefits":
		err = chart.RenderComparison(&buf, d.Comparison)
	default:
		return fmt.Errorf("unknown chart %q, want demand or benefits", kind)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
