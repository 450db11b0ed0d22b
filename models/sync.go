package models

import "time"

// SyncState is the state of one document's sync coordinator.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncPushing SyncState = "pushing"
	SyncPulling SyncState = "pulling"
)

// NotificationKind classifies the outcome of a sync attempt.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyTimeout NotificationKind = "timeout"
	NotifyInfo    NotificationKind = "info"
)

// Notification is a user-visible message about a sync attempt.
type Notification struct {
	// Document is the document shape the attempt was about.
	Document DocumentKind `json:"document"`

	// Kind is the outcome class.
	Kind NotificationKind `json:"kind"`

	// Message is a short human-readable description.
	Message string `json:"message"`

	// Reload asks the caller to refresh its full view of the document
	// because records it has not seen were merged in.
	Reload bool `json:"reload"`

	// At is when the outcome was produced.
	At time.Time `json:"at"`
}

// DocumentSyncStatus is what the status endpoint reports per document.
type DocumentSyncStatus struct {
	Document DocumentKind  `json:"document"`
	State    SyncState     `json:"state"`
	Last     *Notification `json:"last,omitempty"`
}

// SyncStatus is the sync overview of every document.
type SyncStatus struct {
	Configured  bool                 `json:"configured"`
	Credentials Credentials          `json:"credentials"`
	Documents   []DocumentSyncStatus `json:"documents"`
}
