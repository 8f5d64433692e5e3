package services

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/detection"
	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

const (
	// MaxNotifications caps the retained feed; the oldest entries past the
	// cap are evicted when a new unique notification arrives.
	MaxNotifications = 10

	// MaxMessageLength is the per-notification message length in characters
	// before truncation.
	MaxMessageLength = 100

	// TruncationMarker is appended when a report exceeds MaxMessageLength.
	TruncationMarker = "..."

	// AnomalyAlertTitle labels alerts raised by the live anomaly feed.
	AnomalyAlertTitle = "Anomaly Detected!"

	// CustomAnomalyAlertTitle labels alerts raised by the custom anomaly feed.
	CustomAnomalyAlertTitle = "Custom Anomaly Detected!"

	displayTimeLayout = "15:04"
)

// FeedManager owns the notification feed and the two backend snapshots.
// All mutation goes through its operations; renderers get copies. A single
// mutex makes every dedup-check-then-insert atomic, so concurrent poll and
// manual-refresh cycles cannot interleave inside the critical section.
type FeedManager struct {
	client  detection.DetectionClient
	alerter Alerter

	mu              sync.Mutex
	notifications   []models.Notification
	status          *models.SystemStatus
	anomaly         *models.AnomalySnapshot
	statusFetchedAt time.Time
	feedFetchedAt   time.Time
}

// NewFeedManager creates a feed manager backed by the given detection client.
// A nil alerter falls back to the log-backed one.
func NewFeedManager(client detection.DetectionClient, alerter Alerter) *FeedManager {
	if alerter == nil {
		alerter = NewLogAlerter()
	}
	return &FeedManager{
		client:  client,
		alerter: alerter,
	}
}

// IngestAnomaly feeds one live anomaly report into the notification list.
// It returns true when a new notification was retained, false when the report
// was empty or suppressed as a duplicate.
func (m *FeedManager) IngestAnomaly(report string, timestamp *time.Time) bool {
	return m.ingest(report, timestamp, models.NotificationKindAnomaly, AnomalyAlertTitle)
}

// IngestCustomAnomaly feeds one custom anomaly report into the notification
// list. Dedup runs against the same shared list as IngestAnomaly: matching
// message text suppresses the new item regardless of kind.
func (m *FeedManager) IngestCustomAnomaly(report string, timestamp *time.Time) bool {
	return m.ingest(report, timestamp, models.NotificationKindInfo, CustomAnomalyAlertTitle)
}

func (m *FeedManager) ingest(report string, timestamp *time.Time, kind models.NotificationKind, title string) bool {
	if report == "" {
		return false
	}
	message := truncateMessage(report)
	displayTime := formatDisplayTime(timestamp)

	m.mu.Lock()
	for _, existing := range m.notifications {
		if existing.Message == message {
			m.mu.Unlock()
			logrus.Debugf("Suppressed duplicate %s notification: %s", kind, message)
			return false
		}
	}
	notification := models.Notification{
		ID:          uuid.New().String(),
		DisplayTime: displayTime,
		Message:     message,
		Kind:        kind,
	}
	m.notifications = append([]models.Notification{notification}, m.notifications...)
	if len(m.notifications) > MaxNotifications {
		evicted := m.notifications[MaxNotifications:]
		m.notifications = m.notifications[:MaxNotifications]
		for _, old := range evicted {
			logrus.Debugf("Evicted notification %s from feed: %s", old.ID, old.Message)
		}
	}
	m.mu.Unlock()

	// The alert fires after the mutation and outside the lock, so a slow
	// alerter cannot stall ingestion. Exactly one alert per retained item.
	m.alerter.Alert(models.AlertEvent{
		Title:    title,
		Report:   report,
		Kind:     kind,
		RaisedAt: time.Now(),
	})
	return true
}

// RefreshSystemStatus fetches the status snapshot and replaces the retained
// one wholesale. On transport failure the previous snapshot stays untouched
// and the returned value reflects it.
func (m *FeedManager) RefreshSystemStatus(ctx context.Context) *models.SystemStatus {
	status, err := m.client.FetchStatus(ctx)
	if err != nil {
		logrus.Warnf("Failed to fetch system status: %v", err)
		return m.Status()
	}
	m.mu.Lock()
	m.status = status
	m.statusFetchedAt = time.Now()
	m.mu.Unlock()
	return m.Status()
}

// RefreshAnomalySnapshot fetches the active-anomaly snapshot and replaces the
// retained one wholesale. When the snapshot carries an anomaly with a
// non-empty report, the report is additionally ingested into the feed, so one
// poll updates both the banner and the history.
func (m *FeedManager) RefreshAnomalySnapshot(ctx context.Context) *models.AnomalySnapshot {
	snapshot, err := m.client.FetchLatestAnomaly(ctx)
	if err != nil {
		logrus.Warnf("Failed to fetch anomaly snapshot: %v", err)
		return m.ActiveAnomaly()
	}
	m.mu.Lock()
	m.anomaly = snapshot
	m.feedFetchedAt = time.Now()
	m.mu.Unlock()

	if snapshot.HasAnomaly && snapshot.Report != "" {
		m.IngestAnomaly(snapshot.Report, snapshot.Timestamp)
	}
	return m.ActiveAnomaly()
}

// RefreshCustomAnomalies fetches the pending custom anomalies and ingests
// them one by one in backend order. Each item is independently subject to
// dedup suppression.
func (m *FeedManager) RefreshCustomAnomalies(ctx context.Context) []models.CustomAnomaly {
	anomalies, err := m.client.FetchCustomAnomalies(ctx)
	if err != nil {
		logrus.Warnf("Failed to fetch custom anomalies: %v", err)
		return nil
	}
	for _, anomaly := range anomalies {
		m.IngestCustomAnomaly(anomaly.Report, anomaly.Timestamp)
	}
	m.mu.Lock()
	m.feedFetchedAt = time.Now()
	m.mu.Unlock()
	return anomalies
}

// RefreshAll runs every refresh once. Used at startup and by the manual
// pull-to-refresh path.
func (m *FeedManager) RefreshAll(ctx context.Context) {
	m.RefreshSystemStatus(ctx)
	m.RefreshAnomalySnapshot(ctx)
	m.RefreshCustomAnomalies(ctx)
}

// AcknowledgeActiveAnomaly flips the local active-anomaly flag to false
// immediately, then notifies the backend best-effort. A failed backend call
// is logged and never rolls the local state back.
func (m *FeedManager) AcknowledgeActiveAnomaly(ctx context.Context) {
	m.mu.Lock()
	if m.anomaly != nil {
		m.anomaly.HasAnomaly = false
	}
	m.mu.Unlock()

	if err := m.client.ClearAnomaly(ctx); err != nil {
		logrus.Warnf("Failed to clear anomaly on detection backend: %v", err)
	}
}

// Notifications returns a copy of the retained feed, most recent first
func (m *FeedManager) Notifications() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// Status returns a copy of the current status snapshot, or nil before the
// first successful fetch
func (m *FeedManager) Status() *models.SystemStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == nil {
		return nil
	}
	status := *m.status
	return &status
}

// ActiveAnomaly returns a copy of the current anomaly snapshot, or nil before
// the first successful fetch
func (m *FeedManager) ActiveAnomaly() *models.AnomalySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anomalyCopyLocked()
}

func (m *FeedManager) anomalyCopyLocked() *models.AnomalySnapshot {
	if m.anomaly == nil {
		return nil
	}
	snapshot := *m.anomaly
	if snapshot.Timestamp != nil {
		t := *snapshot.Timestamp
		snapshot.Timestamp = &t
	}
	return &snapshot
}

// Dashboard assembles the full read model for one render: status card,
// active-anomaly banner, feed and humanized display helpers.
func (m *FeedManager) Dashboard() models.DashboardSnapshot {
	m.mu.Lock()
	snapshot := models.DashboardSnapshot{
		ActiveAnomaly:   m.anomalyCopyLocked(),
		Notifications:   make([]models.Notification, len(m.notifications)),
		StatusFetchedAt: m.statusFetchedAt,
		FeedFetchedAt:   m.feedFetchedAt,
		GeneratedAt:     time.Now(),
	}
	copy(snapshot.Notifications, m.notifications)
	if m.status != nil {
		status := *m.status
		snapshot.Status = &status
	}
	m.mu.Unlock()

	if snapshot.Status != nil {
		snapshot.FramesDisplay = humanize.Comma(snapshot.Status.FramesCaptured)
		if !snapshot.Status.LastAnalysisTime.IsZero() {
			snapshot.LastAnalysisAgo = humanize.Time(snapshot.Status.LastAnalysisTime)
		}
	}
	return snapshot
}

// truncateMessage cuts a report to MaxMessageLength characters and appends
// the truncation marker when anything was cut. Character means rune, not
// byte, so multibyte reports are never split mid-character.
func truncateMessage(report string) string {
	runes := []rune(report)
	if len(runes) <= MaxMessageLength {
		return report
	}
	return string(runes[:MaxMessageLength]) + TruncationMarker
}

// formatDisplayTime renders the event timestamp as a local hour:minute; a
// missing timestamp falls back to ingestion time.
func formatDisplayTime(timestamp *time.Time) string {
	if timestamp != nil {
		return timestamp.Local().Format(displayTimeLayout)
	}
	return time.Now().Format(displayTimeLayout)
}
