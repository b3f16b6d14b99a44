// Package demand loads historical and predicted demand records and selects
// the windows the dashboard works on.
package demand

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/solar-simulator/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingColumn is returned when the source lacks a required field
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidRecord is returned when a row cannot be parsed
	ErrInvalidRecord = errors.New("invalid record")
)

// Required column names of the demand file
const (
	ColumnDate  = "Fecha"
	ColumnValue = "ACTIVA"
	ColumnKind  = "Tipo"
)

// Loader provides the demand record set
type Loader interface {
	Load(ctx context.Context) ([]models.DemandRecord, error)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// CSVLoader reads demand records from a delimited file
type CSVLoader struct {
	path      string
	delimiter rune
	log       *logrus.Logger
}

// NewCSVLoader initializes a loader for the given file
func NewCSVLoader(path string, delimiter rune, log *logrus.Logger) *CSVLoader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVLoader{path: path, delimiter: delimiter, log: log}
}

// Load reads and sorts the whole file
func (l *CSVLoader) Load(ctx context.Context) ([]models.DemandRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open demand file: %w", err)
	}
	defer f.Close()

	records, err := Parse(ctx, f, l.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	l.log.Infof("Loaded %d demand records from %s", len(records), l.path)
	return records, nil
}

// Parse decodes demand records from r and returns them sorted by date
func Parse(ctx context.Context, r io.Reader, delimiter rune) ([]models.DemandRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, expected %s, %s, %s", ErrMissingColumn, ColumnDate, ColumnValue, ColumnKind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.DemandRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}
		records = append(records, rec)
	}

	SortByDate(records)
	return records, nil
}

// SortByDate orders records by date keeping the source order of equal dates
func SortByDate(records []models.DemandRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

type columns struct {
	date, value, kind int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{date: -1, value: -1, kind: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, ColumnDate):
			idx.date = i
		case strings.EqualFold(name, ColumnValue):
			idx.value = i
		case strings.EqualFold(name, ColumnKind):
			idx.kind = i
		}
	}

	var missing []string
	if idx.date < 0 {
		missing = append(missing, ColumnDate)
	}
	if idx.value < 0 {
		missing = append(missing, ColumnValue)
	}
	if idx.kind < 0 {
		missing = append(missing, ColumnKind)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx columns) (models.DemandRecord, error) {
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", fmt.Errorf("row has %d fields, want at least %d", len(row), i+1)
		}
		return strings.TrimSpace(row[i]), nil
	}

	rawDate, err := field(idx.date)
	if err != nil {
		return models.DemandRecord{}, err
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return models.DemandRecord{}, err
	}

	rawValue, err := field(idx.value)
	if err != nil {
		return models.DemandRecord{}, err
	}
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return models.DemandRecord{}, fmt.Errorf("invalid %s value %q", ColumnValue, rawValue)
	}
	if !(value >= 0) || math.IsInf(value, 0) {
		return models.DemandRecord{}, fmt.Errorf("%s must be a finite non-negative number, got %v", ColumnValue, value)
	}

	rawKind, err := field(idx.kind)
	if err != nil {
		return models.DemandRecord{}, err
	}
	kind, err := models.ParseKind(rawKind)
	if err != nil {
		return models.DemandRecord{}, err
	}

	return models.DemandRecord{Date: date, Value: value, Kind: kind}, nil
}

// ParseDate accepts the date layouts found in demand exports
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid %s value %q", ColumnDate, s)
}
