package postgres

import (
	"database/sql"
	"time"
)

type taskTableModel struct {
	ID        string         `db:"id"`
	Type      string         `db:"task_type"`
	Status    string         `db:"status"`
	Payload   []byte         `db:"payload"`
	Result    []byte         `db:"result"`
	Error     sql.NullString `db:"error"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
