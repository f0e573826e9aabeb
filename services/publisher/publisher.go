// Package publisher delivers crawl progress events to the external UI
// collaborator over an asynchronous message channel.
package publisher

import (
	"context"
	"time"
)

// EventType enumerates the events emitted during a crawl
type EventType string

const (
	EventLog              EventType = "LOG"
	EventUpdateCount      EventType = "UPDATE_COUNT"
	EventUpdatePages      EventType = "UPDATE_PAGES"
	EventScrapingComplete EventType = "SCRAPING_COMPLETE"
	EventScrapingError    EventType = "SCRAPING_ERROR"
	EventStatus           EventType = "STATUS"
)

// Event is one progress message. Delivery is fire-and-forget; no
// acknowledgement is expected.
type Event struct {
	Type          EventType `json:"type"`
	RunID         string    `json:"run_id,omitempty"`
	Message       string    `json:"message,omitempty"`
	Severity      string    `json:"severity,omitempty"`
	TotalRecords  int       `json:"total_records,omitempty"`
	NewRecords    int       `json:"new_records,omitempty"`
	PagesScraped  int       `json:"pages_scraped,omitempty"`
	IsRunning     bool      `json:"is_running,omitempty"`
	DetectedSite  string    `json:"detected_site,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher represents a service for publishing events
type Publisher interface {
	// Publish delivers one event, best effort
	Publish(ctx context.Context, event Event) error

	// Close closes the publisher connection
	Close() error
}

// Log builds a LOG event
func Log(runID, message, severity string) Event {
	return Event{Type: EventLog, RunID: runID, Message: message, Severity: severity, At: time.Now()}
}

// Count builds an UPDATE_COUNT event
func Count(runID string, total, fresh int) Event {
	return Event{Type: EventUpdateCount, RunID: runID, TotalRecords: total, NewRecords: fresh, At: time.Now()}
}

// Pages builds an UPDATE_PAGES event
func Pages(runID string, pages int) Event {
	return Event{Type: EventUpdatePages, RunID: runID, PagesScraped: pages, At: time.Now()}
}

// Complete builds a SCRAPING_COMPLETE event
func Complete(runID string, total int) Event {
	return Event{Type: EventScrapingComplete, RunID: runID, TotalRecords: total, At: time.Now()}
}

// Failure builds a SCRAPING_ERROR event
func Failure(runID, message string) Event {
	return Event{Type: EventScrapingError, RunID: runID, Message: message, Severity: "error", At: time.Now()}
}
