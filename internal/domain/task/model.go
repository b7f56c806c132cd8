package task

import (
	"fmt"
	"time"
)

// Type identifies what a background task does. The set is closed: submitting
// anything else is rejected up front, not at execution time.
type Type string

const (
	TypeIngestData    Type = "ingest_data"
	TypeImportRoster  Type = "import_roster"
	TypeCalculateRoto Type = "calculate_roto"
)

func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeIngestData, TypeImportRoster, TypeCalculateRoto:
		return Type(raw), nil
	default:
		return "", fmt.Errorf("unknown task type %q", raw)
	}
}

// Status is a task's lifecycle state. Transitions only move forward:
// pending to running, running to completed or failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task is one unit of background work with its input payload and, once
// finished, its result or error.
type Task struct {
	ID      string
	Type    Type
	Status  Status
	Payload map[string]any
	Result  map[string]any
	Error   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
