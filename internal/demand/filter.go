package demand

import (
	"time"

	"github.com/Dan9191/solar-simulator/internal/models"
)

// Series colors of the demand line chart
var kindColors = map[models.Kind]string{
	models.KindHistorical: "#1d7a8d",
	models.KindPredicted:  "#ff6f00",
}

// Filter returns the first horizonDays records of the given kind in date order.
// Short data is not an error: all matching records are returned.
func Filter(records []models.DemandRecord, kind models.Kind, horizonDays int) []models.DemandRecord {
	if horizonDays <= 0 {
		return []models.DemandRecord{}
	}

	matched := make([]models.DemandRecord, 0, horizonDays)
	for _, r := range records {
		if r.Kind == kind {
			matched = append(matched, r)
		}
	}
	SortByDate(matched)

	if len(matched) > horizonDays {
		matched = matched[:horizonDays]
	}
	return matched
}

// Series splits records into one chart series per kind, historical first
func Series(records []models.DemandRecord) []models.DemandSeries {
	var series []models.DemandSeries
	for _, kind := range []models.Kind{models.KindHistorical, models.KindPredicted} {
		var points []models.DemandPoint
		for _, r := range records {
			if r.Kind == kind {
				points = append(points, models.DemandPoint{Date: r.Date, Value: r.Value})
			}
		}
		if len(points) == 0 {
			continue
		}
		series = append(series, models.DemandSeries{Kind: kind, Color: kindColors[kind], Points: points})
	}
	return series
}

// PredictionStart returns the earliest predicted date, or nil when there is none
func PredictionStart(records []models.DemandRecord) *time.Time {
	var start *time.Time
	for i := range records {
		if records[i].Kind != models.KindPredicted {
			continue
		}
		if start == nil || records[i].Date.Before(*start) {
			d := records[i].Date
			start = &d
		}
	}
	return start
}
