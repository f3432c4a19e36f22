package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// PlaceInfo is the resolved place for a coordinate pair. FullAddress is
// always non-empty: when resolution fails it falls back to the raw
// coordinate string, which downstream fire dedup relies on as a stable
// identity.
type PlaceInfo struct {
	City        string
	State       string
	Country     string
	FullAddress string
}

// Resolver turns coordinates into a place. Implementations never fail the
// caller; lookups that miss or time out degrade to a coordinate string.
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) PlaceInfo
}

// Noop resolves every coordinate pair to its coordinate string without any
// lookup. Processes that never ingest fires use it instead of a nil Resolver.
type Noop struct{}

func (Noop) Resolve(ctx context.Context, lat, lng float64) PlaceInfo {
	return PlaceInfo{FullAddress: coordString(lat, lng)}
}

// Nominatim resolves coordinates through the OSM Nominatim reverse API.
type Nominatim struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		Suburb   string `json:"suburb"`
		State    string `json:"state"`
		Province string `json:"province"`
		Region   string `json:"region"`
		Country  string `json:"country"`
	} `json:"address"`
}

func (n *Nominatim) Resolve(ctx context.Context, lat, lng float64) PlaceInfo {
	fallback := PlaceInfo{FullAddress: coordString(lat, lng)}

	params := url.Values{
		"lat":             {fmt.Sprintf("%f", lat)},
		"lon":             {fmt.Sprintf("%f", lng)},
		"format":          {"json"},
		"accept-language": {"en"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.http.Do(req)
	if err != nil {
		slog.Warn("geocoding lookup failed", "lat", lat, "lng", lng, "error", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("geocoding lookup failed", "lat", lat, "lng", lng, "status", resp.StatusCode)
		return fallback
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallback
	}

	var r nominatimResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return fallback
	}

	place := PlaceInfo{
		City:    firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village, r.Address.Suburb),
		State:   firstNonEmpty(r.Address.State, r.Address.Province, r.Address.Region),
		Country: r.Address.Country,
	}
	place.FullAddress = fullAddress(place, r.DisplayName, lat, lng)
	return place
}

// fullAddress picks the most specific stable name available:
// city+state(+country) > state+country > country > provider display name >
// coordinate string.
func fullAddress(p PlaceInfo, displayName string, lat, lng float64) string {
	switch {
	case p.City != "" && p.State != "":
		if p.Country != "" {
			return fmt.Sprintf("%s, %s, %s", p.City, p.State, p.Country)
		}
		return fmt.Sprintf("%s, %s", p.City, p.State)
	case p.State != "" && p.Country != "":
		return fmt.Sprintf("%s, %s", p.State, p.Country)
	case p.Country != "":
		return p.Country
	case displayName != "":
		return displayName
	default:
		return coordString(lat, lng)
	}
}

func coordString(lat, lng float64) string {
	return fmt.Sprintf("%g, %g", lat, lng)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
