// Package geocode resolves free-text addresses to coordinates through a
// LocationIQ-style search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
	"github.com/migfernandes01/places-share-API/internal/common/logger"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Resolver interface {
	Resolve(ctx context.Context, address string) (Location, error)
}

// Client performs a single fail-fast lookup per address with a bounded
// timeout. No retries: a transient provider failure surfaces immediately.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// The provider returns a JSON array of candidates with stringified
// coordinates; only the first element is consulted.
type providerResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Resolve(ctx context.Context, address string) (Location, error) {
	metrics.GeocodeRequestsTotal.Inc()

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("q", address)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		metrics.GeocodeFailuresTotal.WithLabelValues("request").Inc()
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GeocodeFailuresTotal.WithLabelValues("transport").Inc()
		c.log.Errorf("geocode request failed: %v", err)
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(err)
	}
	defer resp.Body.Close()

	// LocationIQ answers 404 for addresses it cannot match.
	if resp.StatusCode == http.StatusNotFound {
		metrics.GeocodeFailuresTotal.WithLabelValues("no_match").Inc()
		return Location{}, commonerrors.ErrGeocodeNoMatch
	}
	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeFailuresTotal.WithLabelValues("provider").Inc()
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(
			fmt.Errorf("unexpected provider status: %d", resp.StatusCode))
	}

	var results []providerResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		metrics.GeocodeFailuresTotal.WithLabelValues("decode").Inc()
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(err)
	}

	if len(results) == 0 {
		metrics.GeocodeFailuresTotal.WithLabelValues("no_match").Inc()
		return Location{}, commonerrors.ErrGeocodeNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		metrics.GeocodeFailuresTotal.WithLabelValues("decode").Inc()
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		metrics.GeocodeFailuresTotal.WithLabelValues("decode").Inc()
		return Location{}, commonerrors.ErrGeocodeProvider.WithCause(err)
	}

	return Location{Lat: lat, Lng: lng}, nil
}
