package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/model"
)

const DefaultTimeout = 30 * time.Second

// ErrUnavailable is the single failure value surfaced to callers: the feed
// could not be read, for whatever reason. The cause is logged here and not
// propagated.
var ErrUnavailable = errors.New("telemetry feed unavailable")

// Client issues the two read-only queries against the analysis service.
// Every call is a fresh request: no retry, no caching.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// FetchSummary requests the aggregate race summary.
func (c *Client) FetchSummary(ctx context.Context) (*model.Summary, error) {
	params := url.Values{}
	params.Set("type", "summary")

	var summary model.Summary
	if err := c.get(ctx, params, &summary); err != nil {
		log.Logger.Warn("summary fetch failed", zap.Error(err))
		return nil, ErrUnavailable
	}
	return &summary, nil
}

// FetchTelemetry requests one lap's channel data. Absence of data for the
// lap is an empty slice, not an error.
func (c *Client) FetchTelemetry(ctx context.Context, driverNumber, lapNumber int) ([]model.TelemetrySample, error) {
	params := url.Values{}
	params.Set("type", "telemetry")
	params.Set("driver_number", fmt.Sprint(driverNumber))
	params.Set("lap_number", fmt.Sprint(lapNumber))

	var data model.TelemetryData
	if err := c.get(ctx, params, &data); err != nil {
		log.Logger.Warn("telemetry fetch failed",
			zap.Int("driver", driverNumber),
			zap.Int("lap", lapNumber),
			zap.Error(err))
		return nil, ErrUnavailable
	}
	return data.Telemetry, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(err, "requesting feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding feed payload")
	}
	return nil
}
