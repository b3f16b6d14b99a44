package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Kind distinguishes historical demand from predicted demand
type Kind string

const (
	KindHistorical Kind = "Histórica"
	KindPredicted  Kind = "Predicha"
)

// ParseKind normalizes a raw label by lowercasing it and capitalizing the first letter
func ParseKind(raw string) (Kind, error) {
	label := capitalize(strings.TrimSpace(raw))
	switch label {
	case string(KindHistorical), "Historica":
		return KindHistorical, nil
	case string(KindPredicted):
		return KindPredicted, nil
	}
	return "", fmt.Errorf("unknown demand kind %q", raw)
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// DemandRecord represents one dated demand value
type DemandRecord struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"` // kWh
	Kind  Kind      `json:"kind"`
}

// DemandPoint is a single point of a demand series
type DemandPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DemandSeries groups demand points of one kind for the line chart
type DemandSeries struct {
	Kind   Kind          `json:"kind"`
	Color  string        `json:"color"`
	Points []DemandPoint `json:"points"`
}
