package postgres

import "time"

type auditTableModel struct {
	ID         int64     `db:"id"`
	TaskID     string    `db:"task_id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Action     string    `db:"action"`
	Details    []byte    `db:"details"`
	OccurredAt time.Time `db:"occurred_at"`
}
