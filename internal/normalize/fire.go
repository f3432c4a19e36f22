package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sarang-2004/DigitalEarth/internal/geocode"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

// ErrMalformedRow marks hotspot CSV rows that fail numeric parsing. Callers
// count and skip them without aborting the batch.
var ErrMalformedRow = errors.New("malformed fire row")

// FireRow is the numeric prefix of one FIRMS hotspot CSV line.
type FireRow struct {
	Lat        float64
	Lng        float64
	Size       float64
	Confidence float64
	Wind       float64
}

// ParseFireRow parses the five leading numeric fields of a hotspot line:
// latitude, longitude, size, confidence, wind speed.
func ParseFireRow(line string) (FireRow, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 5 {
		return FireRow{}, fmt.Errorf("%w: expected at least 5 fields, got %d", ErrMalformedRow, len(parts))
	}

	var vals [5]float64
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return FireRow{}, fmt.Errorf("%w: field %d: %v", ErrMalformedRow, i, err)
		}
		vals[i] = v
	}

	return FireRow{
		Lat:        vals[0],
		Lng:        vals[1],
		Size:       vals[2],
		Confidence: vals[3],
		Wind:       vals[4],
	}, nil
}

// FireSeverity maps a confidence value onto the intensity/threat scale.
// Intensity and threat are separate record fields but share this classifier.
func FireSeverity(confidence float64) models.Severity {
	switch {
	case confidence > 0.8:
		return models.SeverityHigh
	case confidence > 0.4:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// FireEvent builds the stored record from a parsed row and its resolved place.
func FireEvent(row FireRow, place geocode.PlaceInfo, now time.Time) *models.FireEvent {
	severity := FireSeverity(row.Confidence)
	return &models.FireEvent{
		Location:    place.FullAddress,
		City:        place.City,
		State:       place.State,
		Country:     place.Country,
		Coordinates: models.Coordinates{Lat: row.Lat, Lng: row.Lng},
		Latitude:    row.Lat,
		Longitude:   row.Lng,
		Intensity:   severity,
		Threat:      severity,
		Size:        fmt.Sprintf("%.1f km²", row.Size),
		Temperature: fmt.Sprintf("%.1f°C", row.Confidence*100),
		WindSpeed:   fmt.Sprintf("%.1f km/h", row.Wind),
		Status:      "Active",
		Cause:       "Unknown",
		LastUpdate:  now.UTC(),
	}
}
