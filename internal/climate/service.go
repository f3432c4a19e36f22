package climate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Sarang-2004/DigitalEarth/internal/feeds"
	"github.com/Sarang-2004/DigitalEarth/internal/models"
	"github.com/Sarang-2004/DigitalEarth/internal/normalize"
)

// Validation errors surfaced to the API as 400s.
var (
	ErrCityRequired = errors.New("city parameter is required")
	ErrCityNotFound = errors.New("city not found")
)

// WeatherAPI covers the two required upstream calls of a snapshot.
type WeatherAPI interface {
	Geocode(ctx context.Context, city string) (lat, lon float64, found bool, err error)
	Current(ctx context.Context, lat, lon float64) (*feeds.WeatherObservation, error)
}

type AirQualityAPI interface {
	Latest(ctx context.Context, lat, lon float64) (float64, error)
}

type SolarAPI interface {
	SolarRadiation(ctx context.Context, lat, lon float64) (float64, error)
}

type ForecastAPI interface {
	Points(ctx context.Context, lat, lon float64) (*feeds.PointForecast, error)
}

// Service assembles climate snapshots on demand. Nothing is persisted:
// every request resolves the city and queries the upstreams fresh.
type Service struct {
	weather WeatherAPI
	air     AirQualityAPI
	solar   SolarAPI
	points  ForecastAPI
	timeout time.Duration
	clock   clockwork.Clock
}

func NewService(weather WeatherAPI, air AirQualityAPI, solar SolarAPI, points ForecastAPI, timeout time.Duration, clock clockwork.Clock) *Service {
	return &Service{
		weather: weather,
		air:     air,
		solar:   solar,
		points:  points,
		timeout: timeout,
		clock:   clock,
	}
}

// Snapshot builds the climate snapshot for a city. Geocoding and the weather
// observation are required; air quality, solar radiation, and the forecast
// point are optional and default to zero values when they fail.
func (s *Service) Snapshot(ctx context.Context, city string) (models.ClimateSnapshot, error) {
	if strings.TrimSpace(city) == "" {
		return models.ClimateSnapshot{}, ErrCityRequired
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	lat, lon, found, err := s.weather.Geocode(ctx, city)
	if err != nil {
		return models.ClimateSnapshot{}, fmt.Errorf("error resolving city %q: %w", city, err)
	}
	if !found {
		return models.ClimateSnapshot{}, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	}

	var (
		wg   sync.WaitGroup
		obs  *feeds.WeatherObservation
		wErr error
		aqi  float64
		sol  float64
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		obs, wErr = s.weather.Current(ctx, lat, lon)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := s.air.Latest(ctx, lat, lon)
		if err != nil {
			slog.Warn("air quality fetch failed, defaulting to 0", "city", city, "error", err)
			return
		}
		aqi = v
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := s.solar.SolarRadiation(ctx, lat, lon)
		if err != nil {
			slog.Warn("solar radiation fetch failed, defaulting to 0", "city", city, "error", err)
			return
		}
		sol = v
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.points.Points(ctx, lat, lon); err != nil {
			slog.Warn("forecast point lookup failed", "city", city, "error", err)
		}
	}()

	wg.Wait()

	if wErr != nil {
		return models.ClimateSnapshot{}, fmt.Errorf("error fetching weather for %q: %w", city, wErr)
	}

	return normalize.Snapshot(city, *obs, aqi, sol, s.clock.Now()), nil
}
