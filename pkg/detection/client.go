package detection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/config"
	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

// Endpoint paths exposed by the detection backend. All of them are plain
// unauthenticated HTTP with no custom headers.
const (
	statusPath          = "/api/status"
	latestAnomalyPath   = "/api/anomalies/latest"
	customAnomaliesPath = "/api/get-custom-anomalies"
	clearAnomalyPath    = "/api/anomalies/clear"
)

// Client talks to the detection backend over HTTP. Every request carries the
// configured timeout; there is no retry or backoff, a failed call simply
// surfaces as an error for the caller to skip the cycle on.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a detection backend client from configuration
func NewClient(cfg *config.DetectionConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// statusResponse is the wire shape of GET /api/status. Timestamps arrive as
// strings in whatever layout the backend emits, so they are parsed tolerantly.
type statusResponse struct {
	LiveTrackingActive bool   `json:"liveTrackingActive"`
	LastAnalysisTime   string `json:"lastAnalysisTime"`
	FramesCaptured     int64  `json:"framesCaptured"`
	Timestamp          string `json:"timestamp"`
}

// latestAnomalyResponse is the wire shape of GET /api/anomalies/latest
type latestAnomalyResponse struct {
	Success    bool   `json:"success"`
	HasAnomaly bool   `json:"hasAnomaly"`
	Report     string `json:"report"`
	Timestamp  string `json:"timestamp"`
}

// customAnomalyItem is one element of the GET /api/get-custom-anomalies list
type customAnomalyItem struct {
	Anomaly   string `json:"anomaly"`
	Timestamp string `json:"timestamp"`
}

// FetchStatus retrieves the current system status snapshot
func (c *Client) FetchStatus(ctx context.Context) (*models.SystemStatus, error) {
	var resp statusResponse
	if err := c.getJSON(ctx, statusPath, &resp); err != nil {
		return nil, err
	}
	status := &models.SystemStatus{
		LiveTrackingActive: resp.LiveTrackingActive,
		FramesCaptured:     resp.FramesCaptured,
	}
	if t := ParseEventTime(resp.LastAnalysisTime); t != nil {
		status.LastAnalysisTime = *t
	}
	if t := ParseEventTime(resp.Timestamp); t != nil {
		status.Timestamp = *t
	}
	return status, nil
}

// FetchLatestAnomaly retrieves the current active-anomaly snapshot. A payload
// with success=false counts as a failed fetch, same as a non-2xx status.
func (c *Client) FetchLatestAnomaly(ctx context.Context) (*models.AnomalySnapshot, error) {
	var resp latestAnomalyResponse
	if err := c.getJSON(ctx, latestAnomalyPath, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("detection backend reported failure for %s", latestAnomalyPath)
	}
	return &models.AnomalySnapshot{
		HasAnomaly: resp.HasAnomaly,
		Report:     resp.Report,
		Timestamp:  ParseEventTime(resp.Timestamp),
	}, nil
}

// FetchCustomAnomalies retrieves the pending custom anomalies in backend order
func (c *Client) FetchCustomAnomalies(ctx context.Context) ([]models.CustomAnomaly, error) {
	var items []customAnomalyItem
	if err := c.getJSON(ctx, customAnomaliesPath, &items); err != nil {
		return nil, err
	}
	anomalies := make([]models.CustomAnomaly, 0, len(items))
	for _, item := range items {
		anomalies = append(anomalies, models.CustomAnomaly{
			Report:    item.Anomaly,
			Timestamp: ParseEventTime(item.Timestamp),
		})
	}
	return anomalies, nil
}

// ClearAnomaly asks the backend to clear the active anomaly. The response
// body is ignored; only the status code matters.
func (c *Client) ClearAnomaly(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+clearAnomalyPath, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, clearAnomalyPath)
	}
	return nil
}

// getJSON performs a GET against the backend and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
