package feeds

import (
	"context"
	"strings"
)

// FIRMSClient fetches the NASA FIRMS active-fire hotspot CSV.
type FIRMSClient struct {
	url    string
	client *Client
}

func NewFIRMSClient(url string, cfg ClientConfig) *FIRMSClient {
	return &FIRMSClient{
		url:    url,
		client: NewClient("firms", cfg),
	}
}

// Fetch returns the data lines of the hotspot CSV with the header row
// stripped. Individual rows are not validated here; that is the normalizer's
// job so one bad row cannot fail the batch.
func (c *FIRMSClient) Fetch(ctx context.Context) ([]string, error) {
	body, err := c.client.Get(ctx, c.url, nil)
	if err != nil {
		return nil, &FetchError{Source: "firms", StatusCode: statusCode(err), Err: err}
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) <= 1 {
		return nil, nil
	}
	return lines[1:], nil
}
