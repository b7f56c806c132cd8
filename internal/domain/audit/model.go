package audit

import "time"

// Entry records a mutation made by a background task, keyed to the entity
// it touched. Details carries action-specific context as free-form JSON.
type Entry struct {
	ID         int64
	TaskID     string
	EntityType string
	EntityID   string
	Action     string
	Details    map[string]any
	OccurredAt time.Time
}
