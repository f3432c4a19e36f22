package normalize

import (
	"math"
	"time"

	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
)

// oceanPH is a fixed placeholder; no public API serves live ocean pH.
const oceanPH = 8.1

// Snapshot merges the weather observation and the optional source values
// into one climate snapshot. Optional values arrive already defaulted to
// zero by the caller when their fetch failed.
func Snapshot(city string, obs feeds.WeatherObservation, aqi, solar float64, now time.Time) models.ClimateSnapshot {
	return models.ClimateSnapshot{
		City:           city,
		Temperature:    round1(obs.Main.Temp),
		FeelsLike:      round1(obs.Main.FeelsLike),
		Humidity:       obs.Main.Humidity,
		WindSpeed:      round1(obs.Wind.Speed * 3.6), // m/s to km/h
		WindDirection:  obs.Wind.Deg,
		Precipitation:  obs.Rain.OneHour,
		AQI:            aqi,
		SolarRadiation: round1(solar),
		UVIndex:        obs.UVIndex,
		OceanPH:        oceanPH,
		LastUpdate:     now.UTC(),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
