package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

// DetectionStub is a scriptable in-process detection backend. It serves the
// same four endpoints as the real one; tests raise anomalies, queue custom
// ones and flip the whole backend into outage mode.
type DetectionStub struct {
	Server *httptest.Server

	mu          sync.Mutex
	down        bool
	frames      int64
	hasAnomaly  bool
	report      string
	raisedAt    time.Time
	customQueue []map[string]string
	clearCalls  int
}

// StartDetectionStub starts a stub detection backend and ties its shutdown
// to the test cleanup
func StartDetectionStub(t *testing.T) *DetectionStub {
	stub := &DetectionStub{frames: 1000}

	r := mux.NewRouter()
	r.HandleFunc("/api/status", stub.handleStatus).Methods("GET")
	r.HandleFunc("/api/anomalies/latest", stub.handleLatestAnomaly).Methods("GET")
	r.HandleFunc("/api/get-custom-anomalies", stub.handleCustomAnomalies).Methods("GET")
	r.HandleFunc("/api/anomalies/clear", stub.handleClearAnomaly).Methods("POST")

	stub.Server = httptest.NewServer(r)
	t.Cleanup(stub.Server.Close)
	return stub
}

// RaiseAnomaly makes the stub report an active anomaly until cleared
func (s *DetectionStub) RaiseAnomaly(report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasAnomaly = true
	s.report = report
	s.raisedAt = time.Now()
}

// QueueCustomAnomaly appends one entry to the pending custom anomaly queue
func (s *DetectionStub) QueueCustomAnomaly(report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customQueue = append(s.customQueue, map[string]string{
		"anomaly":   report,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// SetDown switches every endpoint to 500 responses, simulating an outage
func (s *DetectionStub) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// ClearCalls reports how many times the clear endpoint was hit
func (s *DetectionStub) ClearCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearCalls
}

func (s *DetectionStub) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.down {
		s.mu.Unlock()
		http.Error(w, "backend down", http.StatusInternalServerError)
		return
	}
	s.frames += 20
	payload := map[string]interface{}{
		"liveTrackingActive": true,
		"lastAnalysisTime":   time.Now().Format(time.RFC3339),
		"framesCaptured":     s.frames,
		"timestamp":          time.Now().Format(time.RFC3339),
	}
	s.mu.Unlock()
	writeStubJSON(w, payload)
}

func (s *DetectionStub) handleLatestAnomaly(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.down {
		s.mu.Unlock()
		http.Error(w, "backend down", http.StatusInternalServerError)
		return
	}
	payload := map[string]interface{}{
		"success":    true,
		"hasAnomaly": s.hasAnomaly,
		"report":     s.report,
	}
	if s.hasAnomaly {
		payload["timestamp"] = s.raisedAt.Format(time.RFC3339)
	}
	s.mu.Unlock()
	writeStubJSON(w, payload)
}

func (s *DetectionStub) handleCustomAnomalies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.down {
		s.mu.Unlock()
		http.Error(w, "backend down", http.StatusInternalServerError)
		return
	}
	pending := s.customQueue
	s.customQueue = nil
	s.mu.Unlock()

	if pending == nil {
		pending = []map[string]string{}
	}
	writeStubJSON(w, pending)
}

func (s *DetectionStub) handleClearAnomaly(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.down {
		s.mu.Unlock()
		http.Error(w, "backend down", http.StatusInternalServerError)
		return
	}
	s.clearCalls++
	s.hasAnomaly = false
	s.report = ""
	s.mu.Unlock()
	writeStubJSON(w, map[string]string{"message": "cleared"})
}

func writeStubJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// FetchNotifications retrieves the current notification feed from a running
// gateway
func FetchNotifications(t *testing.T, gatewayURL string) []models.Notification {
	resp, err := http.Get(gatewayURL + "/api/notifications")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notifications []models.Notification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notifications))
	return notifications
}

// FetchLatestAnomaly retrieves the gateway's active-anomaly snapshot, or nil
// while the gateway has not fetched one yet
func FetchLatestAnomaly(t *testing.T, gatewayURL string) *models.AnomalySnapshot {
	resp, err := http.Get(gatewayURL + "/api/anomalies/latest")
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot models.AnomalySnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	return &snapshot
}

// FetchDashboard retrieves the full dashboard read model from a running
// gateway
func FetchDashboard(t *testing.T, gatewayURL string) models.DashboardSnapshot {
	resp, err := http.Get(gatewayURL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dash models.DashboardSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dash))
	return dash
}

// WaitForNotifications polls the gateway until the feed holds exactly want
// entries and returns them
func WaitForNotifications(t *testing.T, gatewayURL string, want int) []models.Notification {
	var latest []models.Notification
	require.Eventually(t, func() bool {
		latest = FetchNotifications(t, gatewayURL)
		return len(latest) == want
	}, 5*time.Second, 20*time.Millisecond, "feed never reached %d notifications", want)
	return latest
}
