package postgres

import "time"

type teamTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	Name      string    `db:"name"`
	OwnerName string    `db:"owner_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
