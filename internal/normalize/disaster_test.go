package normalize

import (
	"testing"
	"time"

	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

func TestClassifyDisasterType(t *testing.T) {
	tests := []struct {
		title string
		want  models.DisasterType
	}{
		{"Green earthquake alert (Magnitude 5.1M) in Chile", models.DisasterTypeEarthquake},
		{"Flood warning in Bangladesh", models.DisasterTypeFlood},
		{"Tropical Cyclone FREDDY-23", models.DisasterTypeHurricane},
		{"Hurricane approaching Florida", models.DisasterTypeHurricane},
		{"Volcano eruption in Iceland", models.DisasterTypeVolcano},
		{"Tsunami advisory in Japan", models.DisasterTypeTsunami},
		{"Severe drought conditions", models.DisasterTypeUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyDisasterType(tt.title); got != tt.want {
			t.Errorf("ClassifyDisasterType(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		title string
		want  models.Severity
	}{
		{"RED warning: earthquake in Turkey", models.SeverityHigh},
		{"Orange alert for tropical cyclone", models.SeverityMedium},
		{"Green earthquake alert in Chile", models.SeverityLow},
	}

	for _, tt := range tests {
		if got := ClassifySeverity(tt.title); got != tt.want {
			t.Errorf("ClassifySeverity(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestQuakeSeverity(t *testing.T) {
	tests := []struct {
		magnitude float64
		want      models.Severity
	}{
		{6.5, models.SeverityHigh},
		{6.0, models.SeverityHigh},
		{5.2, models.SeverityMedium},
		{5.0, models.SeverityMedium},
		{4.0, models.SeverityLow},
	}

	for _, tt := range tests {
		if got := QuakeSeverity(tt.magnitude); got != tt.want {
			t.Errorf("QuakeSeverity(%v) = %v, want %v", tt.magnitude, got, tt.want)
		}
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Green earthquake alert in Chile", "Chile"},
		{"Flood in the valley in Northern India", "Northern India"},
		{"Tropical Cyclone FREDDY-23", "Tropical Cyclone FREDDY-23"},
	}

	for _, tt := range tests {
		if got := ExtractLocation(tt.title); got != tt.want {
			t.Errorf("ExtractLocation(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestFromGDACS(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := feeds.GDACSItem{
		Title:       "Red earthquake alert in Turkey",
		Description: "Magnitude 7.1 earthquake",
		Link:        "https://www.gdacs.org/report.aspx?eventid=1",
		PubDate:     "Mon, 02 Mar 2026 08:30:00 GMT",
	}

	d := FromGDACS(item, now)

	if d.Type != models.DisasterTypeEarthquake {
		t.Errorf("expected Earthquake, got %v", d.Type)
	}
	if d.Severity != models.SeverityHigh {
		t.Errorf("expected High severity, got %v", d.Severity)
	}
	if d.Location != "Turkey" {
		t.Errorf("expected location 'Turkey', got %q", d.Location)
	}
	if d.Source != "GDACS" {
		t.Errorf("expected source GDACS, got %q", d.Source)
	}
	want := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	if !d.CreatedAt.Equal(want) {
		t.Errorf("expected created_at %v, got %v", want, d.CreatedAt)
	}
	if !d.LastUpdate.Equal(now) {
		t.Errorf("expected last_update %v, got %v", now, d.LastUpdate)
	}
}

func TestFromGDACS_BadPubDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := FromGDACS(feeds.GDACSItem{Title: "Flood in Kenya", PubDate: "not a date"}, now)

	if !d.CreatedAt.Equal(now) {
		t.Errorf("expected created_at to fall back to ingestion time, got %v", d.CreatedAt)
	}
}

func TestFromUSGS(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	feature := feeds.QuakeFeature{
		ID: "us700abcd",
		Properties: feeds.QuakeProperties{
			Mag:   6.1,
			Place: "42 km SW of Tokyo, Japan",
			Time:  1767225600000,
			Title: "M 6.1 - 42 km SW of Tokyo, Japan",
			URL:   "https://earthquake.usgs.gov/earthquakes/eventpage/us700abcd",
		},
		Geometry: feeds.QuakeGeometry{Coordinates: []float64{139.4, 35.5, 10.0}},
	}

	d, err := FromUSGS(feature, now)
	if err != nil {
		t.Fatalf("FromUSGS failed: %v", err)
	}

	if d.Title != "Earthquake M6.1" {
		t.Errorf("unexpected title: %q", d.Title)
	}
	if d.Severity != models.SeverityHigh {
		t.Errorf("expected High severity, got %v", d.Severity)
	}
	if d.Source != "USGS" {
		t.Errorf("expected source USGS, got %q", d.Source)
	}
	if d.Magnitude == nil || *d.Magnitude != 6.1 {
		t.Errorf("unexpected magnitude: %v", d.Magnitude)
	}
	if d.Latitude == nil || *d.Latitude != 35.5 {
		t.Errorf("unexpected latitude: %v", d.Latitude)
	}
	if d.Longitude == nil || *d.Longitude != 139.4 {
		t.Errorf("unexpected longitude: %v", d.Longitude)
	}
	if !d.CreatedAt.Equal(time.UnixMilli(1767225600000).UTC()) {
		t.Errorf("unexpected created_at: %v", d.CreatedAt)
	}
}

func TestFromUSGS_TitleKeepsFullMagnitudePrecision(t *testing.T) {
	now := time.Now()
	feature := feeds.QuakeFeature{
		ID:         "us700efgh",
		Properties: feeds.QuakeProperties{Mag: 6.15, Place: "offshore", Time: 1767225600000},
		Geometry:   feeds.QuakeGeometry{Coordinates: []float64{139.4, 35.5}},
	}

	d, err := FromUSGS(feature, now)
	if err != nil {
		t.Fatalf("FromUSGS failed: %v", err)
	}
	// Distinct magnitudes must produce distinct identities.
	if d.Title != "Earthquake M6.15" {
		t.Errorf("unexpected title: %q", d.Title)
	}
}

func TestFromUSGS_MalformedGeometry(t *testing.T) {
	now := time.Now()
	_, err := FromUSGS(feeds.QuakeFeature{ID: "bad", Geometry: feeds.QuakeGeometry{Coordinates: []float64{1.0}}}, now)
	if err == nil {
		t.Error("expected error for malformed geometry, got nil")
	}
}
