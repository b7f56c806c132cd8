package postgres

import "time"

type gameStatTableModel struct {
	ID          int64     `db:"id"`
	PlayerID    int64     `db:"player_id"`
	GameID      string    `db:"game_id"`
	GameDate    time.Time `db:"game_date"`
	Matchup     string    `db:"matchup"`
	Points      int       `db:"points"`
	Rebounds    int       `db:"rebounds"`
	Assists     int       `db:"assists"`
	Steals      int       `db:"steals"`
	Blocks      int       `db:"blocks"`
	FGMade      int       `db:"fg_made"`
	FGAttempted int       `db:"fg_attempted"`
	FTMade      int       `db:"ft_made"`
	FTAttempted int       `db:"ft_attempted"`
	ThreesMade  int       `db:"threes_made"`
	Turnovers   int       `db:"turnovers"`
	CreatedAt   time.Time `db:"created_at"`
}
