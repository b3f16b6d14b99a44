package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/Dan9191/solar-simulator/internal/utils"
)

func printDashboard(w io.Writer, d *models.Dashboard) {
	p := d.Parameters
	fmt.Fprintf(w, "%s\n\n", d.Title)
	fmt.Fprintf(w, "H=%.1f kWh/m²  PR=%.2f  horizon=%d days  kWh/L=%.1f  CO₂/L=%.1f kg  price=%.2f %s/L\n\n",
		p.Irradiance, p.PerformanceRatio, p.HorizonDays, p.KWhPerLiter, p.CO2PerLiter, p.PricePerLiter, d.Currency)
	fmt.Fprintf(w, "%s\n", stripBold(d.WindowCaption))
	if d.PredictionStart != nil {
		fmt.Fprintf(w, "Prediction starts %s\n", d.PredictionStart.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	if len(d.Results) == 0 {
		fmt.Fprintln(w, "No active scenarios.")
		return
	}

	fmt.Fprintf(w, "%s\n", stripBold(d.BenefitCaption))
	for _, r := range d.Results {
		fmt.Fprintf(w, "  %s\n", r.Scenario)
		fmt.Fprintf(w, "    Energy:  %s\n", utils.FormatQuantity(r.EnergyKWh, "kWh"))
		fmt.Fprintf(w, "    Diesel:  %s\n", utils.FormatQuantity(r.DieselLiters, "L"))
		fmt.Fprintf(w, "    CO₂:     %s\n", utils.FormatQuantity(r.CO2Kg, "kg"))
		fmt.Fprintf(w, "    Savings: %s\n", utils.FormatMoney(r.Cost, d.Currency))
	}
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
