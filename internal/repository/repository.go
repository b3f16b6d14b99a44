package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/Dan9191/solar-simulator/internal/demand"
	"github.com/Dan9191/solar-simulator/internal/models"
)

// Repository provides read-only demand queries
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load retrieves every demand record ordered by date
func (r *Repository) Load(ctx context.Context) ([]models.DemandRecord, error) {
	query := `
		SELECT fecha, activa, tipo
		FROM solar.demand
		ORDER BY fecha`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query demand: %w", err)
	}
	defer rows.Close()

	var records []models.DemandRecord
	for rows.Next() {
		var (
			rec     models.DemandRecord
			rawKind string
		)
		if err := rows.Scan(&rec.Date, &rec.Value, &rawKind); err != nil {
			return nil, fmt.Errorf("failed to scan demand: %w", err)
		}
		kind, err := models.ParseKind(rawKind)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", demand.ErrInvalidRecord, err)
		}
		if !(rec.Value >= 0) || math.IsInf(rec.Value, 0) {
			return nil, fmt.Errorf("%w: activa must be a finite non-negative number, got %v", demand.ErrInvalidRecord, rec.Value)
		}
		rec.Kind = kind
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read demand: %w", err)
	}

	demand.SortByDate(records)
	return records, nil
}
