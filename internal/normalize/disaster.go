package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

// Classification tables are ordered (pattern, result) pairs, first match
// wins. Matching is case-insensitive substring search over the title.
var disasterTypeTable = []struct {
	substr string
	result models.DisasterType
}{
	{"earthquake", models.DisasterTypeEarthquake},
	{"flood", models.DisasterTypeFlood},
	{"tropical cyclone", models.DisasterTypeHurricane},
	{"hurricane", models.DisasterTypeHurricane},
	{"volcano", models.DisasterTypeVolcano},
	{"tsunami", models.DisasterTypeTsunami},
}

var severityTable = []struct {
	substr string
	result models.Severity
}{
	{"red", models.SeverityHigh},
	{"orange", models.SeverityMedium},
}

func ClassifyDisasterType(title string) models.DisasterType {
	lower := strings.ToLower(title)
	for _, row := range disasterTypeTable {
		if strings.Contains(lower, row.substr) {
			return row.result
		}
	}
	return models.DisasterTypeUnknown
}

func ClassifySeverity(title string) models.Severity {
	lower := strings.ToLower(title)
	for _, row := range severityTable {
		if strings.Contains(lower, row.substr) {
			return row.result
		}
	}
	return models.SeverityLow
}

// QuakeSeverity classifies seismic severity from magnitude alone.
func QuakeSeverity(magnitude float64) models.Severity {
	switch {
	case magnitude >= 6.0:
		return models.SeverityHigh
	case magnitude >= 5.0:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// ExtractLocation returns the text after the last " in " of a GDACS title,
// or the whole title when the pattern is absent.
func ExtractLocation(title string) string {
	if idx := strings.LastIndex(title, " in "); idx >= 0 {
		return strings.TrimSpace(title[idx+len(" in "):])
	}
	return strings.TrimSpace(title)
}

// FromGDACS maps one RSS item to a disaster record. Items never fail to map;
// an unparseable pubDate falls back to the ingestion time.
func FromGDACS(item feeds.GDACSItem, now time.Time) *models.DisasterEvent {
	created := now.UTC()
	for _, layout := range []string{time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, item.PubDate); err == nil {
			created = t
			break
		}
	}

	return &models.DisasterEvent{
		Title:       item.Title,
		Description: item.Description,
		Type:        ClassifyDisasterType(item.Title),
		Severity:    ClassifySeverity(item.Title),
		Location:    ExtractLocation(item.Title),
		Source:      "GDACS",
		Status:      "Active",
		URL:         item.Link,
		CreatedAt:   created,
		LastUpdate:  now.UTC(),
	}
}

// FromUSGS maps one GeoJSON feature to a disaster record. Features with a
// malformed geometry are rejected so the rest of the batch continues.
func FromUSGS(f feeds.QuakeFeature, now time.Time) (*models.DisasterEvent, error) {
	if len(f.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("feature %s: geometry has %d coordinates, want at least 2", f.ID, len(f.Geometry.Coordinates))
	}

	mag := f.Properties.Mag
	lon := f.Geometry.Coordinates[0]
	lat := f.Geometry.Coordinates[1]

	// The title is the upsert identity, so the magnitude keeps its full
	// precision: rounding would merge distinct quakes.
	return &models.DisasterEvent{
		Title:       "Earthquake M" + strconv.FormatFloat(mag, 'f', -1, 64),
		Description: f.Properties.Title,
		Type:        models.DisasterTypeEarthquake,
		Severity:    QuakeSeverity(mag),
		Location:    f.Properties.Place,
		Source:      "USGS",
		Status:      "Active",
		URL:         f.Properties.URL,
		Magnitude:   &mag,
		Latitude:    &lat,
		Longitude:   &lon,
		CreatedAt:   time.UnixMilli(f.Properties.Time).UTC(),
		LastUpdate:  now.UTC(),
	}, nil
}
