// Package params builds and validates scenario parameters from the
// interactive surfaces: query strings, CLI flags and YAML presets.
package params

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/Dan9191/solar-simulator/internal/benefit"
	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Query keys of the parameter surface
const (
	KeyIrradiance       = "irradiance"
	KeyPerformanceRatio = "pr"
	KeyHorizon          = "horizon"
	KeyKWhPerLiter      = "kwh_per_liter"
	KeyCO2PerLiter      = "co2_per_liter"
	KeyPricePerLiter    = "price_per_liter"
)

var validate = validator.New()

// Defaults returns the parameters preset in the struct tags
func Defaults() models.ScenarioParameters {
	var p models.ScenarioParameters
	if err := defaults.Set(&p); err != nil {
		// tags are static, a failure here is a programming error
		panic(fmt.Sprintf("scenario parameter defaults: %v", err))
	}
	return p
}

// Validate checks every parameter against its declared range
func Validate(p models.ScenarioParameters) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("%w: %s", benefit.ErrInvalidParameter, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", benefit.ErrInvalidParameter, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// FromQuery overlays query values on base; absent keys keep the base value
func FromQuery(base models.ScenarioParameters, q url.Values) (models.ScenarioParameters, error) {
	p := base
	floats := []struct {
		key string
		dst *float64
	}{
		{KeyIrradiance, &p.Irradiance},
		{KeyPerformanceRatio, &p.PerformanceRatio},
		{KeyKWhPerLiter, &p.KWhPerLiter},
		{KeyCO2PerLiter, &p.CO2PerLiter},
		{KeyPricePerLiter, &p.PricePerLiter},
	}
	for _, f := range floats {
		raw := strings.TrimSpace(q.Get(f.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return base, fmt.Errorf("%w: %s=%q is not a number", benefit.ErrInvalidParameter, f.key, raw)
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(q.Get(KeyHorizon)); raw != "" {
		days, err := ParseHorizon(raw)
		if err != nil {
			return base, err
		}
		p.HorizonDays = days
	}
	return p, nil
}

// ParseHorizon accepts "7", "15", "30" as well as labels like "15 días"
func ParseHorizon(raw string) (int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty horizon", benefit.ErrInvalidParameter)
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: horizon %q is not a number of days", benefit.ErrInvalidParameter, raw)
	}
	return days, nil
}

// ValidateHorizon checks a horizon against the same choices as HorizonDays
func ValidateHorizon(days int) error {
	if err := validate.Var(days, "oneof=7 15 30"); err != nil {
		return fmt.Errorf("%w: horizon must be one of [7 15 30], got %d", benefit.ErrInvalidParameter, days)
	}
	return nil
}

// SelectionFromQuery reads one boolean toggle per catalog scenario; absent toggles stay active
func SelectionFromQuery(q url.Values) (models.Selection, error) {
	sel := models.AllActive()
	for key := range sel {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a boolean", benefit.ErrInvalidParameter, key, raw)
		}
		sel[key] = on
	}
	return sel, nil
}

// LoadFile reads a YAML preset; fields it omits keep their defaults
func LoadFile(path string) (models.ScenarioParameters, error) {
	p := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read parameters: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse parameters: %w", err)
	}
	if err := Validate(p); err != nil {
		return p, err
	}
	return p, nil
}
