// Package chart renders demand series and benefit comparisons as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/Dan9191/solar-simulator/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Image size of every rendered chart
var (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
)

const barWidth = 18

// RenderDemand draws the demand time series, one line with markers per kind
func RenderDemand(w io.Writer, series []models.DemandSeries) error {
	p := plot.New()
	p.Title.Text = "Serie Temporal de Demanda Energética"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Fecha"
	p.Y.Label.Text = "Demanda Energética (kWh)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = pt.Value
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("failed to build %s series: %w", s.Kind, err)
		}
		c := parseHex(s.Color)
		line.Color = c
		line.Width = vg.Points(2)
		points.Color = c
		points.Radius = vg.Points(2)

		p.Add(line, points)
		p.Legend.Add(string(s.Kind), line, points)
	}

	return write(w, p)
}

// RenderComparison draws grouped bars per indicator with a logarithmic value axis.
// Bars hold log10 of the value; anything below 1 sits on the axis floor.
func RenderComparison(w io.Writer, c *models.Comparison) error {
	p := plot.New()
	p.Title.Text = "Comparativa de Beneficios"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Valor (escala logarítmica)"
	p.Y.Min = 0
	p.Y.Tick.Marker = plot.TickerFunc(decadeTicks)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if c == nil || len(c.Bars) == 0 {
		return write(w, p)
	}

	scenarios := scenarioOrder(c.Bars)
	n := len(scenarios)
	for i, scenario := range scenarios {
		values := make(plotter.Values, len(c.Indicators))
		for j, indicator := range c.Indicators {
			values[j] = logValue(lookup(c.Bars, indicator, scenario))
		}
		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return fmt.Errorf("failed to build bars for %s: %w", scenario, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Points(barWidth * (float64(i) - float64(n-1)/2))

		p.Add(bars)
		p.Legend.Add(scenario, bars)
	}
	p.NominalX(c.Indicators...)

	return write(w, p)
}

func write(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

func scenarioOrder(bars []models.ComparisonBar) []string {
	seen := map[string]bool{}
	var order []string
	for _, b := range bars {
		if !seen[b.Scenario] {
			seen[b.Scenario] = true
			order = append(order, b.Scenario)
		}
	}
	return order
}

func lookup(bars []models.ComparisonBar, indicator, scenario string) float64 {
	for _, b := range bars {
		if b.Indicator == indicator && b.Scenario == scenario {
			return b.Value
		}
	}
	return 0
}

func logValue(v float64) float64 {
	if !(v > 1) {
		return 0
	}
	return math.Log10(v)
}

// decadeTicks labels every power of ten on an axis already in log10 units
func decadeTicks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for k := math.Floor(min); k <= math.Ceil(max); k++ {
		ticks = append(ticks, plot.Tick{Value: k, Label: strconv.FormatFloat(math.Pow(10, k), 'g', -1, 64)})
	}
	return ticks
}

// parseHex reads "#rrggbb"; anything else falls back to black
func parseHex(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
