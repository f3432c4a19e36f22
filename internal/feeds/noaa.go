package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// NOAAClient fetches point-forecast metadata from the NWS API. Optional
// climate source: the payload identifies the forecast grid for the
// coordinates; precipitation amounts come from the weather observation.
type NOAAClient struct {
	url    string
	client *Client
}

func NewNOAAClient(url string, cfg ClientConfig) *NOAAClient {
	return &NOAAClient{
		url:    url,
		client: NewClient("noaa", cfg),
	}
}

type PointForecast struct {
	ForecastURL  string
	GridID       string
	RelativeCity string
}

// Points looks up the NWS forecast point for the coordinates. The NWS API
// requires a User-Agent identifying the caller.
func (c *NOAAClient) Points(ctx context.Context, lat, lon float64) (*PointForecast, error) {
	u := fmt.Sprintf("%s/%f,%f", c.url, lat, lon)
	header := http.Header{"User-Agent": []string{"DigitalEarth/1.0"}}
	body, err := c.client.Get(ctx, u, header)
	if err != nil {
		return nil, &FetchError{Source: "noaa", StatusCode: statusCode(err), Err: err}
	}

	var resp struct {
		Properties struct {
			Forecast string `json:"forecast"`
			GridID   string `json:"gridId"`
			Relative struct {
				Properties struct {
					City string `json:"city"`
				} `json:"properties"`
			} `json:"relativeLocation"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FetchError{Source: "noaa", Err: fmt.Errorf("error decoding response: %w", err)}
	}

	return &PointForecast{
		ForecastURL:  resp.Properties.Forecast,
		GridID:       resp.Properties.GridID,
		RelativeCity: resp.Properties.Relative.Properties.City,
	}, nil
}
