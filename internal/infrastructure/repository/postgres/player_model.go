package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	FullName  string    `db:"full_name"`
	TeamAbbr  string    `db:"team_abbr"`
	Position  string    `db:"position"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
