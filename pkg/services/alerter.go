package services

import (
	"github.com/sirupsen/logrus"

	"github.com/jaiswal-sarthak/AI-POWERED-SMART-SURVEILLANCE-SYSTEM/pkg/models"
)

// Alerter receives exactly one event per newly retained notification.
// Duplicate and evicted notifications never reach it.
type Alerter interface {
	Alert(event models.AlertEvent)
}

// LogAlerter writes alert events to the application log. It stands in for the
// blocking modal of a GUI client; real renderers pick the feed up from the
// dashboard API instead.
type LogAlerter struct{}

// NewLogAlerter creates a log-backed alerter
func NewLogAlerter() *LogAlerter {
	return &LogAlerter{}
}

// Alert logs the event at a level matching its kind
func (a *LogAlerter) Alert(event models.AlertEvent) {
	switch event.Kind {
	case models.NotificationKindAnomaly:
		logrus.Warnf("%s %s", event.Title, event.Report)
	default:
		logrus.Infof("%s %s", event.Title, event.Report)
	}
}

// Ensure LogAlerter implements Alerter
var _ Alerter = (*LogAlerter)(nil)
