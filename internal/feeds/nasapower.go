package feeds

import (
	"context"
	"encoding/json"
	"fmt"
)

// powerDate is the fixed sample day requested from NASA POWER. The snapshot
// only needs a representative daily irradiance figure, not a time series.
const powerDate = "20240101"

// NASAPowerClient fetches all-sky surface shortwave irradiance from the NASA
// POWER daily point API. Optional climate source.
type NASAPowerClient struct {
	url    string
	client *Client
}

func NewNASAPowerClient(url string, cfg ClientConfig) *NASAPowerClient {
	return &NASAPowerClient{
		url:    url,
		client: NewClient("nasa-power", cfg),
	}
}

func (c *NASAPowerClient) SolarRadiation(ctx context.Context, lat, lon float64) (float64, error) {
	u := fmt.Sprintf("%s?parameters=ALLSKY_SFC_SW_DWN&community=RE&longitude=%f&latitude=%f&format=JSON&start=%s&end=%s",
		c.url, lon, lat, powerDate, powerDate)
	body, err := c.client.Get(ctx, u, nil)
	if err != nil {
		return 0, &FetchError{Source: "nasa-power", StatusCode: statusCode(err), Err: err}
	}

	var resp struct {
		Properties struct {
			Parameter struct {
				Irradiance map[string]float64 `json:"ALLSKY_SFC_SW_DWN"`
			} `json:"parameter"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &FetchError{Source: "nasa-power", Err: fmt.Errorf("error decoding response: %w", err)}
	}

	return resp.Properties.Parameter.Irradiance[powerDate], nil
}
