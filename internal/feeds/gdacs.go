package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
)

type gdacsRSS struct {
	Channel gdacsChannel `xml:"channel"`
}

type gdacsChannel struct {
	Items []GDACSItem `xml:"item"`
}

// GDACSItem is one entry of the GDACS disaster RSS feed. Type and severity
// are not structured fields upstream; the normalizer classifies them from the
// title text.
type GDACSItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// GDACSClient fetches the GDACS disaster RSS feed.
type GDACSClient struct {
	url    string
	client *Client
}

func NewGDACSClient(url string, cfg ClientConfig) *GDACSClient {
	return &GDACSClient{
		url:    url,
		client: NewClient("gdacs", cfg),
	}
}

func (c *GDACSClient) Fetch(ctx context.Context) ([]GDACSItem, error) {
	body, err := c.client.Get(ctx, c.url, nil)
	if err != nil {
		return nil, &FetchError{Source: "gdacs", StatusCode: statusCode(err), Err: err}
	}

	var feed gdacsRSS
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, &FetchError{Source: "gdacs", Err: fmt.Errorf("error decoding feed: %w", err)}
	}
	return feed.Channel.Items, nil
}
