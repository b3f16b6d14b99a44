package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatWhole renders a value rounded to units with thousands separators
func FormatWhole(v float64) string {
	return humanize.FormatFloat("#,###.", math.Round(v))
}

// FormatQuantity renders a whole value followed by its unit, e.g. "108,000 kWh"
func FormatQuantity(v float64, unit string) string {
	return fmt.Sprintf("%s %s", FormatWhole(v), unit)
}

// FormatMoney renders an amount as "$91,929,240 COP"
func FormatMoney(v float64, currency string) string {
	return fmt.Sprintf("$%s %s", FormatWhole(v), currency)
}
