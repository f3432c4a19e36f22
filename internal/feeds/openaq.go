package feeds

import (
	"context"
	"encoding/json"
	"fmt"
)

// OpenAQClient fetches the latest air-quality measurement near a coordinate.
// It is an optional climate source: callers default the value to zero when
// the fetch fails.
type OpenAQClient struct {
	url    string
	client *Client
}

func NewOpenAQClient(url string, cfg ClientConfig) *OpenAQClient {
	return &OpenAQClient{
		url:    url,
		client: NewClient("openaq", cfg),
	}
}

// Latest returns the first measurement value reported within 10km of the
// coordinates, or 0 when no station reports there.
func (c *OpenAQClient) Latest(ctx context.Context, lat, lon float64) (float64, error) {
	u := fmt.Sprintf("%s?coordinates=%f,%f&radius=10000", c.url, lat, lon)
	body, err := c.client.Get(ctx, u, nil)
	if err != nil {
		return 0, &FetchError{Source: "openaq", StatusCode: statusCode(err), Err: err}
	}

	var resp struct {
		Results []struct {
			Measurements []struct {
				Value float64 `json:"value"`
			} `json:"measurements"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &FetchError{Source: "openaq", Err: fmt.Errorf("error decoding response: %w", err)}
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Measurements) == 0 {
		return 0, nil
	}
	return resp.Results[0].Measurements[0].Value, nil
}
