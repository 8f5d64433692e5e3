package detection

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.DetectionConfig{BaseURL: baseURL})
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.DetectionConfig
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "trailing slash trimmed",
			cfg:         &config.DetectionConfig{BaseURL: "http://localhost:5000/"},
			wantBaseURL: "http://localhost:5000",
			wantTimeout: 10 * time.Second,
		},
		{
			name:        "explicit timeout honored",
			cfg:         &config.DetectionConfig{BaseURL: "http://backend:5000", RequestTimeout: 3 * time.Second},
			wantBaseURL: "http://backend:5000",
			wantTimeout: 3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.cfg)
			assert.Equal(t, tt.wantBaseURL, client.baseURL)
			assert.Equal(t, tt.wantTimeout, client.httpc.Timeout)
		})
	}
}

func TestFetchStatus(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"liveTrackingActive": true,
			"lastAnalysisTime": "2026-05-02T14:30:45Z",
			"framesCaptured": 48213,
			"timestamp": "2026-05-02T14:30:50Z"
		}`))
	}))
	defer server.Close()

	status, err := newTestClient(server.URL).FetchStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/status", gotPath)
	assert.True(t, status.LiveTrackingActive)
	assert.Equal(t, int64(48213), status.FramesCaptured)
	assert.Equal(t, 14, status.LastAnalysisTime.UTC().Hour())
	assert.False(t, status.Timestamp.IsZero())
}

func TestFetchStatusServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	status, err := newTestClient(server.URL).FetchStatus(context.Background())
	assert.Error(t, err)
	assert.Nil(t, status)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestFetchStatusMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchStatus(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestFetchLatestAnomaly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/anomalies/latest", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"hasAnomaly": true,
			"report": "Person detected in restricted zone",
			"timestamp": "2026-05-02T14:02:00Z"
		}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).FetchLatestAnomaly(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.HasAnomaly)
	assert.Equal(t, "Person detected in restricted zone", snapshot.Report)
	require.NotNil(t, snapshot.Timestamp)
	assert.Equal(t, 2, snapshot.Timestamp.UTC().Day())
}

func TestFetchLatestAnomalyBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).FetchLatestAnomaly(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestFetchCustomAnomalies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get-custom-anomalies", r.URL.Path)
		w.Write([]byte(`[
			{"anomaly": "tailgating at gate B", "timestamp": "2026-05-02 14:05:00"},
			{"anomaly": "camera 7 lens obstructed", "timestamp": ""}
		]`))
	}))
	defer server.Close()

	anomalies, err := newTestClient(server.URL).FetchCustomAnomalies(context.Background())
	require.NoError(t, err)
	require.Len(t, anomalies, 2)

	assert.Equal(t, "tailgating at gate B", anomalies[0].Report)
	require.NotNil(t, anomalies[0].Timestamp)
	assert.Equal(t, 5, anomalies[0].Timestamp.Minute())

	// A missing timestamp maps to nil rather than the zero time
	assert.Equal(t, "camera 7 lens obstructed", anomalies[1].Report)
	assert.Nil(t, anomalies[1].Timestamp)
}

func TestFetchCustomAnomaliesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	anomalies, err := newTestClient(server.URL).FetchCustomAnomalies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestClearAnomaly(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message": "cleared"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).ClearAnomaly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/anomalies/clear", gotPath)
}

func TestClearAnomalyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	err := newTestClient(server.URL).ClearAnomaly(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClientHonorsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).FetchStatus(ctx)
	assert.Error(t, err)
}
