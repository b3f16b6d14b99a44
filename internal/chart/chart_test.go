package chart

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderDemand(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []models.DemandSeries{
		{Kind: models.KindHistorical, Color: "#1d7a8d", Points: []models.DemandPoint{{Date: day0, Value: 10}, {Date: day0.AddDate(0, 0, 1), Value: 12}}},
		{Kind: models.KindPredicted, Color: "#ff6f00", Points: []models.DemandPoint{{Date: day0.AddDate(0, 0, 2), Value: 11}}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDemand(&buf, series))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderComparison(t *testing.T) {
	c := &models.Comparison{
		Indicators: []string{"Energía (kWh)", "Ahorro Económico (COP)"},
		LogScale:   true,
		Bars: []models.ComparisonBar{
			{Indicator: "Energía (kWh)", Scenario: "Pequeña (100 kW)", Value: 10800},
			{Indicator: "Energía (kWh)", Scenario: "Grande (5 MW)", Value: 540000},
			{Indicator: "Ahorro Económico (COP)", Scenario: "Pequeña (100 kW)", Value: 0},
			{Indicator: "Ahorro Económico (COP)", Scenario: "Grande (5 MW)", Value: 459646200},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderComparison(&buf, c))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderComparisonEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderComparison(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestDecadeTicks(t *testing.T) {
	ticks := decadeTicks(0, 2.4)
	require.Len(t, ticks, 4)
	assert.Equal(t, "1", ticks[0].Label)
	assert.Equal(t, "1000", ticks[3].Label)
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x1d, G: 0x7a, B: 0x8d, A: 0xff}, parseHex("#1d7a8d"))
	assert.Equal(t, color.Black, parseHex("teal"))
}
