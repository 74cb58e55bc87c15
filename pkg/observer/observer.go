// Package observer provides the Observer pattern for graph-construction and
// STA run monitoring. Library consumers register observers to track phase
// progress without the core packages depending on any particular logging or
// metrics backend.
package observer

import (
	"context"
	"time"
)

// EventType represents the type of construction/STA phase event.
type EventType string

const (
	// Construction-level events
	EventConstructionStart EventType = "construction_start"
	EventConstructionEnd   EventType = "construction_end"

	// STA-level events
	EventSTAStart EventType = "sta_start"
	EventSTAEnd   EventType = "sta_end"

	// Cycle-breaking event type; FixCycles itself does not emit it
	EventCycleBroken EventType = "cycle_broken"
)

// ExecutionStatus represents the status of a phase.
type ExecutionStatus string

const (
	StatusStarted   ExecutionStatus = "started"
	StatusSuccess   ExecutionStatus = "success"
	StatusFailure   ExecutionStatus = "failure"
	StatusCompleted ExecutionStatus = "completed"
)

// Event represents one construction/STA phase event with its metadata.
type Event struct {
	Type      EventType       `json:"type"`
	Status    ExecutionStatus `json:"status"`
	Timestamp time.Time       `json:"timestamp"`

	// RunID identifies the STA run this event belongs to (see pkg/sta.Report.RunID).
	RunID string `json:"run_id,omitempty"`

	// TileID is set for tile-scoped events (e.g. a cycle edge endpoint).
	TileID string `json:"tile_id,omitempty"`
	Kernel string `json:"kernel,omitempty"`

	StartTime   time.Time     `json:"start_time,omitempty"`
	ElapsedTime time.Duration `json:"elapsed_time,omitempty"`

	Result interface{} `json:"result,omitempty"`
	Error  error       `json:"error,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for construction/STA phase observers.
type Observer interface {
	// OnEvent is called when a phase event occurs. The context can be used
	// for cancellation and passing request-scoped values.
	OnEvent(ctx context.Context, event Event)
}

// Logger defines the interface for custom logging, letting consumers
// integrate their own logging systems with ConsoleObserver.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
