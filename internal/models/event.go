package models

import "time"

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

type DisasterType string

const (
	DisasterTypeEarthquake DisasterType = "Earthquake"
	DisasterTypeFlood      DisasterType = "Flood"
	DisasterTypeHurricane  DisasterType = "Hurricane"
	DisasterTypeVolcano    DisasterType = "Volcano"
	DisasterTypeTsunami    DisasterType = "Tsunami"
	DisasterTypeUnknown    DisasterType = "Unknown"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FireEvent is one active wildfire hotspot as stored in the wildfires table.
// Location is the dedup identity (compared trimmed and lower-cased), not the
// coordinates.
type FireEvent struct {
	ID          int64       `json:"id,omitempty"`
	Location    string      `json:"location"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	Country     string      `json:"country,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Intensity   Severity    `json:"intensity"`
	Threat      Severity    `json:"threat"`
	Size        string      `json:"size"`
	Temperature string      `json:"temperature"`
	WindSpeed   string      `json:"wind_speed"`
	Status      string      `json:"status"`
	Cause       string      `json:"cause"`
	LastUpdate  time.Time   `json:"last_update"`
}

// DisasterEvent is a disaster record from GDACS or USGS. The (Title, Source)
// pair is its upsert identity.
type DisasterEvent struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        DisasterType `json:"type"`
	Severity    Severity     `json:"severity"`
	Location    string       `json:"location"`
	Source      string       `json:"source"`
	Status      string       `json:"status"`
	URL         string       `json:"url"`
	Magnitude   *float64     `json:"magnitude,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	LastUpdate  time.Time    `json:"last_update"`
}

// ClimateSnapshot is assembled fresh for every /api/climate request and never
// persisted.
type ClimateSnapshot struct {
	City           string    `json:"city"`
	Temperature    float64   `json:"temperature"`
	FeelsLike      float64   `json:"feels_like"`
	Humidity       float64   `json:"humidity"`
	WindSpeed      float64   `json:"wind_speed"`
	WindDirection  float64   `json:"wind_direction"`
	Precipitation  float64   `json:"precipitation"`
	AQI            float64   `json:"aqi"`
	SolarRadiation float64   `json:"solar_radiation"`
	UVIndex        float64   `json:"uv_index"`
	OceanPH        float64   `json:"ocean_ph"`
	LastUpdate     time.Time `json:"last_update"`
}
