package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort          = "5000"
	defaultIntervalMs    = 1000 // 1 second per analysis tick
	defaultAnomalyChance = 12   // 1-in-N chance of raising an anomaly per tick
)

// anomalyReports is the pool the simulator raises detections from. The last
// entry is deliberately longer than a feed message so truncation is visible
// in a demo.
var anomalyReports = []string{
	"Person detected in restricted zone near loading dock",
	"Unattended bag detected in lobby camera 2",
	"Vehicle idling at perimeter gate for over 5 minutes",
	"Motion detected after hours in server room corridor",
	"Crowd density above threshold at main entrance",
	"Multiple individuals loitering near the rear service entrance with repeated attempts to open the door over the last several minutes",
}

// statusPayload mirrors GET /api/status of the real detection backend
type statusPayload struct {
	LiveTrackingActive bool   `json:"liveTrackingActive"`
	LastAnalysisTime   string `json:"lastAnalysisTime"`
	FramesCaptured     int64  `json:"framesCaptured"`
	Timestamp          string `json:"timestamp"`
}

// latestAnomalyPayload mirrors GET /api/anomalies/latest
type latestAnomalyPayload struct {
	Success    bool   `json:"success"`
	HasAnomaly bool   `json:"hasAnomaly"`
	Report     string `json:"report"`
	Timestamp  string `json:"timestamp"`
}

// customAnomalyPayload is one element of GET /api/get-custom-anomalies
type customAnomalyPayload struct {
	Anomaly   string `json:"anomaly"`
	Timestamp string `json:"timestamp"`
}

// customAnomalyRequest is the body of POST /api/custom-anomaly
type customAnomalyRequest struct {
	Report string `json:"report"`
}

// backend is the in-memory state of the simulated detection system
type backend struct {
	mu             sync.Mutex
	liveTracking   bool
	framesCaptured int64
	lastAnalysis   time.Time
	anomalyActive  bool
	anomalyReport  string
	anomalyRaised  time.Time
	customQueue    []customAnomalyPayload
}

func main() {
	// Get configuration from environment variables
	port := getEnv("PORT", defaultPort)
	intervalMs, _ := strconv.Atoi(getEnv("INTERVAL_MS", fmt.Sprintf("%d", defaultIntervalMs)))
	anomalyChance, _ := strconv.Atoi(getEnv("ANOMALY_CHANCE", fmt.Sprintf("%d", defaultAnomalyChance)))
	if anomalyChance < 1 {
		anomalyChance = defaultAnomalyChance
	}

	seed := time.Now().UnixNano()
	if s, err := strconv.ParseInt(getEnv("SEED", ""), 10, 64); err == nil {
		seed = s
	}
	rng := rand.New(rand.NewSource(seed))

	state := &backend{
		liveTracking: true,
		lastAnalysis: time.Now(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/status", state.handleStatus).Methods("GET")
	r.HandleFunc("/api/anomalies/latest", state.handleLatestAnomaly).Methods("GET")
	r.HandleFunc("/api/get-custom-anomalies", state.handleGetCustomAnomalies).Methods("GET")
	r.HandleFunc("/api/anomalies/clear", state.handleClearAnomaly).Methods("POST")
	r.HandleFunc("/api/custom-anomaly", state.handleCreateCustomAnomaly).Methods("POST")

	// The watch gateway and any browser-based dashboard talk to this backend
	// directly, so CORS stays wide open.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(r)

	go func() {
		logrus.Infof("Detection simulator listening on port %s (seed %d)", port, seed)
		if err := http.ListenAndServe(":"+port, handler); err != nil {
			logrus.Fatalf("Simulator server failed: %v", err)
		}
	}()

	logrus.Infof("Simulating analysis every %d ms, anomaly chance 1 in %d", intervalMs, anomalyChance)

	ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		state.tick(rng, anomalyChance)
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// tick advances the simulated analysis loop by one cycle
func (b *backend) tick(rng *rand.Rand, anomalyChance int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framesCaptured += int64(15 + rng.Intn(16)) // 15-30 frames per cycle
	b.lastAnalysis = time.Now()

	if !b.anomalyActive && rng.Intn(anomalyChance) == 0 {
		b.anomalyActive = true
		b.anomalyReport = anomalyReports[rng.Intn(len(anomalyReports))]
		b.anomalyRaised = time.Now()
		logrus.Warnf("🔥 Raised anomaly: %s", b.anomalyReport)
	}
}

func (b *backend) handleStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	resp := statusPayload{
		LiveTrackingActive: b.liveTracking,
		LastAnalysisTime:   b.lastAnalysis.Format(time.RFC3339),
		FramesCaptured:     b.framesCaptured,
		Timestamp:          time.Now().Format(time.RFC3339),
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (b *backend) handleLatestAnomaly(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	resp := latestAnomalyPayload{
		Success:    true,
		HasAnomaly: b.anomalyActive,
		Report:     b.anomalyReport,
	}
	if b.anomalyActive {
		resp.Timestamp = b.anomalyRaised.Format(time.RFC3339)
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleGetCustomAnomalies returns the pending custom anomalies and drains
// the queue, matching the real backend's consume-on-read behavior
func (b *backend) handleGetCustomAnomalies(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	pending := b.customQueue
	b.customQueue = nil
	b.mu.Unlock()

	if pending == nil {
		pending = []customAnomalyPayload{}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (b *backend) handleClearAnomaly(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.anomalyActive = false
	b.anomalyReport = ""
	b.mu.Unlock()

	logrus.Info("Active anomaly cleared")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Anomaly cleared"})
}

func (b *backend) handleCreateCustomAnomaly(w http.ResponseWriter, r *http.Request) {
	var req customAnomalyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Report == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "report is required"})
		return
	}

	item := customAnomalyPayload{
		Anomaly:   req.Report,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	b.mu.Lock()
	b.customQueue = append(b.customQueue, item)
	b.mu.Unlock()

	logrus.Infof("Queued custom anomaly: %s", req.Report)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Custom anomaly recorded"})
}

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}
