package model

import "time"

// Event is a single analytics event headed for the ingest stream.
// Props are flat string pairs; nothing here identifies a user.
type Event struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Props map[string]string `json:"props,omitempty"`
	TS    time.Time         `json:"ts"`
}

// Event names emitted by the quiz flow.
const (
	EventQuizCompleted  = "quiz_completed"
	EventResultsViewed  = "results_viewed"
	EventResultsShared  = "results_shared"
	EventLegacyRedirect = "legacy_redirect"
)
