package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"

	"github.com/sirupsen/logrus"
)

// HTTPClient implements the ephemeris.Provider interface against the
// external high-precision ephemeris service. Any transport failure,
// non-200 response or unusable payload is reported as
// ephemeris.ErrUnavailable so callers can distinguish engine outages from
// bad input.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Entry
}

func NewHTTPClient(baseURL string, timeout time.Duration, log *logrus.Entry) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// positionsResponse mirrors the ephemeris service's JSON payload: sidereal
// longitudes in degrees keyed by lowercase body name.
type positionsResponse struct {
	Positions map[string]float64 `json:"positions"`
}

// PositionsAt fetches sidereal planetary longitudes for the given UTC
// instant and observation place.
func (c *HTTPClient) PositionsAt(ctx context.Context, instant time.Time, latitude, longitude float64) (*ephemeris.Positions, error) {
	q := url.Values{}
	q.Set("at", instant.UTC().Format(time.RFC3339))
	q.Set("latitude", fmt.Sprintf("%.4f", latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", longitude))
	q.Set("system", "lahiri")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/positions?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building ephemeris request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("Ephemeris request failed")
		return nil, fmt.Errorf("requesting positions: %w", ephemeris.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warn("Ephemeris service returned non-OK status")
		return nil, fmt.Errorf("ephemeris service returned status %d: %w", resp.StatusCode, ephemeris.ErrUnavailable)
	}

	var payload positionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.WithError(err).Warn("Ephemeris response could not be decoded")
		return nil, fmt.Errorf("decoding positions response: %w", ephemeris.ErrUnavailable)
	}
	if len(payload.Positions) == 0 {
		return nil, fmt.Errorf("ephemeris response contained no positions: %w", ephemeris.ErrUnavailable)
	}

	longitudes := make(map[ephemeris.Body]float64, len(payload.Positions))
	for body, deg := range payload.Positions {
		longitudes[ephemeris.Body(body)] = deg
	}
	return &ephemeris.Positions{Instant: instant.UTC(), Longitudes: longitudes}, nil
}
