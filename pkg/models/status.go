package models

import (
	"time"
)

// SystemStatus is the most recent status snapshot reported by the detection
// backend. It is replaced wholesale on every successful fetch; there is no
// field-level merging.
type SystemStatus struct {
	LiveTrackingActive bool      `json:"liveTrackingActive"`
	LastAnalysisTime   time.Time `json:"lastAnalysisTime"`
	FramesCaptured     int64     `json:"framesCaptured"`
	Timestamp          time.Time `json:"timestamp"`
}

// AnomalySnapshot is the current active-anomaly state of the detection
// backend. Replaced wholesale on every successful fetch; HasAnomaly can be
// forced to false locally by an acknowledgement without a new fetch.
type AnomalySnapshot struct {
	HasAnomaly bool       `json:"hasAnomaly"`
	Report     string     `json:"report,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// CustomAnomaly is one pending entry of the custom anomaly feed, already
// parsed from the wire. Timestamp is nil when the backend sent none or sent
// one that could not be parsed.
type CustomAnomaly struct {
	Report    string     `json:"report"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// DashboardSnapshot bundles everything a rendering client needs for one
// paint: the status card, the active-anomaly banner and the notification
// feed, plus display helpers derived from them.
type DashboardSnapshot struct {
	Status        *SystemStatus    `json:"status,omitempty"`
	ActiveAnomaly *AnomalySnapshot `json:"activeAnomaly,omitempty"`
	Notifications []Notification   `json:"notifications"`

	// Humanized strings for dumb renderers
	FramesDisplay   string `json:"framesDisplay,omitempty"`
	LastAnalysisAgo string `json:"lastAnalysisAgo,omitempty"`

	// Staleness markers: zero until the first successful fetch of each feed
	StatusFetchedAt time.Time `json:"statusFetchedAt,omitempty"`
	FeedFetchedAt   time.Time `json:"feedFetchedAt,omitempty"`
	GeneratedAt     time.Time `json:"generatedAt"`
}
