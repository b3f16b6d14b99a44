// Package report exports dashboard results as an xlsx workbook.
package report

import (
	"fmt"
	"io"

	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	SheetBenefits   = "Beneficios"
	SheetParameters = "Parámetros"
)

// thousands separated, no decimals
const numFmtThousands = 3

// Headers returns the benefits table header for a currency
func Headers(currency string) []string {
	return []string{
		"Escenario",
		"Energía (kWh)",
		"Diésel Ahorrado (L)",
		"CO₂ Evitado (kg)",
		fmt.Sprintf("Ahorro Económico (%s)", currency),
	}
}

// WriteWorkbook writes the results and their parameters to w
func WriteWorkbook(w io.Writer, d *models.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBenefits); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeBenefits(f, d); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetParameters); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeParameters(f, d); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeBenefits(f *excelize.File, d *models.Dashboard) error {
	headers := Headers(d.Currency)
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(SheetBenefits, "A1", &row); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetColWidth(SheetBenefits, "A", "E", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	for i, r := range d.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.Scenario, r.EnergyKWh, r.DieselLiters, r.CO2Kg, r.Cost}
		if err := f.SetSheetRow(SheetBenefits, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.Scenario, err)
		}
	}

	if len(d.Results) == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), len(d.Results)+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetBenefits, "B2", last, style)
}

func writeParameters(f *excelize.File, d *models.Dashboard) error {
	p := d.Parameters
	rows := [][]interface{}{
		{"Parámetro", "Valor"},
		{"Localidad", d.Locality},
		{"Radiación Solar H (kWh/m²)", p.Irradiance},
		{"Performance Ratio (PR)", p.PerformanceRatio},
		{"Horizonte (días)", p.HorizonDays},
		{"kWh/L (Diesel)", p.KWhPerLiter},
		{"CO₂/L (kg)", p.CO2PerLiter},
		{fmt.Sprintf("%s/L (Precio diesel)", d.Currency), p.PricePerLiter},
		{"Registros predichos en el horizonte", d.EffectiveDays},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetParameters, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write parameters: %w", err)
		}
	}
	return f.SetColWidth(SheetParameters, "A", "A", 36)
}
