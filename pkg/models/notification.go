package models

import (
	"time"
)

// NotificationKind classifies the source of a feed notification
type NotificationKind string

const (
	// NotificationKindAnomaly marks notifications ingested from the live anomaly feed
	NotificationKindAnomaly NotificationKind = "anomaly"
	// NotificationKindInfo marks notifications ingested from the custom anomaly feed
	NotificationKindInfo NotificationKind = "info"
)

// Notification is a single retained entry of the dashboard feed.
// Entries are immutable after creation; the feed keeps them most-recent-first.
type Notification struct {
	ID          string           `json:"id"`
	DisplayTime string           `json:"displayTime"`
	Message     string           `json:"message"`
	Kind        NotificationKind `json:"kind"`
}

// AlertEvent is handed to the Alerter exactly once per newly retained
// notification. Report carries the untruncated text so a renderer can show
// the full message even when the feed entry was shortened.
type AlertEvent struct {
	Title    string           `json:"title"`
	Report   string           `json:"report"`
	Kind     NotificationKind `json:"kind"`
	RaisedAt time.Time        `json:"raisedAt"`
}
