package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// WeatherObservation is the subset of the OpenWeather current-weather payload
// the climate snapshot needs.
type WeatherObservation struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	UVIndex float64 `json:"uvi"`
}

// OpenWeatherClient covers the two non-optional upstream calls of a climate
// request: city geocoding and the current-weather observation.
type OpenWeatherClient struct {
	apiKey     string
	geoURL     string
	weatherURL string
	client     *Client
}

func NewOpenWeatherClient(apiKey string, cfg ClientConfig) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:     apiKey,
		geoURL:     "http://api.openweathermap.org/geo/1.0/direct",
		weatherURL: "https://api.openweathermap.org/data/2.5/weather",
		client:     NewClient("openweather", cfg),
	}
}

// Geocode resolves a city name to coordinates. found is false when the
// provider has no match for the name.
func (c *OpenWeatherClient) Geocode(ctx context.Context, city string) (lat, lon float64, found bool, err error) {
	u := fmt.Sprintf("%s?q=%s&limit=1&appid=%s", c.geoURL, url.QueryEscape(city), c.apiKey)
	body, err := c.client.Get(ctx, u, nil)
	if err != nil {
		return 0, 0, false, &FetchError{Source: "openweather-geo", StatusCode: statusCode(err), Err: err}
	}

	var results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, false, &FetchError{Source: "openweather-geo", Err: fmt.Errorf("error decoding response: %w", err)}
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}
	return results[0].Lat, results[0].Lon, true, nil
}

func (c *OpenWeatherClient) Current(ctx context.Context, lat, lon float64) (*WeatherObservation, error) {
	u := fmt.Sprintf("%s?lat=%f&lon=%f&units=metric&appid=%s", c.weatherURL, lat, lon, c.apiKey)
	body, err := c.client.Get(ctx, u, nil)
	if err != nil {
		return nil, &FetchError{Source: "openweather", StatusCode: statusCode(err), Err: err}
	}

	var obs WeatherObservation
	if err := json.Unmarshal(body, &obs); err != nil {
		return nil, &FetchError{Source: "openweather", Err: fmt.Errorf("error decoding response: %w", err)}
	}
	return &obs, nil
}
