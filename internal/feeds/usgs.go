package feeds

import (
	"context"
	"encoding/json"
	"fmt"
)

type QuakeFeed struct {
	Features []QuakeFeature `json:"features"`
}

type QuakeFeature struct {
	ID         string          `json:"id"`
	Properties QuakeProperties `json:"properties"`
	Geometry   QuakeGeometry   `json:"geometry"`
}

type QuakeProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // epoch milliseconds
	Title string  `json:"title"`
	URL   string  `json:"url"`
}

type QuakeGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// USGSClient fetches the USGS significant-earthquakes GeoJSON summary feed.
type USGSClient struct {
	url    string
	client *Client
}

func NewUSGSClient(url string, cfg ClientConfig) *USGSClient {
	return &USGSClient{
		url:    url,
		client: NewClient("usgs", cfg),
	}
}

func (c *USGSClient) Fetch(ctx context.Context) (*QuakeFeed, error) {
	body, err := c.client.Get(ctx, c.url, nil)
	if err != nil {
		return nil, &FetchError{Source: "usgs", StatusCode: statusCode(err), Err: err}
	}

	var feed QuakeFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, &FetchError{Source: "usgs", Err: fmt.Errorf("error decoding feed: %w", err)}
	}
	return &feed, nil
}
