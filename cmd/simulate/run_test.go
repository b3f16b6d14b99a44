package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDemand(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demanda.csv")
	csv := "Fecha,ACTIVA,Tipo\n" +
		"2024-01-01,900,Histórica\n" +
		"2024-01-02,910,Histórica\n" +
		"2024-01-03,920,predicha\n" +
		"2024-01-04,930,predicha\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))
	return path
}

func TestCalcCommand(t *testing.T) {
	cmd := calcCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--demand", writeDemand(t), "--horizon", "30", "--small=false", "--large=false"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Mediana (1 MW)")
	assert.Contains(t, out.String(), "108,000 kWh")
	assert.Contains(t, out.String(), "$91,929,240 COP")
	assert.Contains(t, out.String(), "próximos 30 días")
	assert.NotContains(t, out.String(), "Pequeña")
}

func TestCalcCommandPresetAndOverride(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(preset, []byte("horizon_days: 15\nirradiance: 2.0\n"), 0o600))

	cmd := calcCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--demand", writeDemand(t), "--params", preset, "--irradiance", "5"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "H=5.0")
	assert.Contains(t, out.String(), "horizon=15 days")
}

func TestCalcCommandRejectsInvalidParameters(t *testing.T) {
	cmd := calcCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--demand", writeDemand(t), "--kwh-per-liter", "0"})

	assert.Error(t, cmd.Execute())
}

func TestExportAndChartCommands(t *testing.T) {
	dir := t.TempDir()
	demandPath := writeDemand(t)

	export := exportCmd()
	export.SetOut(&bytes.Buffer{})
	workbook := filepath.Join(dir, "out.xlsx")
	export.SetArgs([]string{"--demand", demandPath, "--out", workbook})
	require.NoError(t, export.Execute())
	assert.FileExists(t, workbook)

	for _, kind := range []string{"demand", "benefits"} {
		c := chartCmd()
		c.SetOut(&bytes.Buffer{})
		img := filepath.Join(dir, kind+".png")
		c.SetArgs([]string{"--demand", demandPath, "--kind", kind, "--out", img})
		require.NoError(t, c.Execute())
		assert.FileExists(t, img)
	}

	c := chartCmd()
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--demand", demandPath, "--kind", "pie"})
	assert.Error(t, c.Execute())
}
