package postgres

import "time"

type standingTableModel struct {
	ID       int64     `db:"id"`
	LeagueID int64     `db:"league_id"`
	TeamID   int64     `db:"team_id"`
	Date     time.Time `db:"date"`

	TotalPoints   int `db:"total_points"`
	TotalRebounds int `db:"total_rebounds"`
	TotalAssists  int `db:"total_assists"`
	TotalSteals   int `db:"total_steals"`
	TotalBlocks   int `db:"total_blocks"`
	TotalThrees   int `db:"total_threes"`

	FieldGoalPct float64 `db:"fg_pct"`
	FreeThrowPct float64 `db:"ft_pct"`

	PointsPts   float64 `db:"points_pts"`
	PointsReb   float64 `db:"points_reb"`
	PointsAst   float64 `db:"points_ast"`
	PointsStl   float64 `db:"points_stl"`
	PointsBlk   float64 `db:"points_blk"`
	PointsTpm   float64 `db:"points_tpm"`
	PointsFgPct float64 `db:"points_fg_pct"`
	PointsFtPct float64 `db:"points_ft_pct"`

	TotalRotoPoints float64 `db:"total_roto_points"`
	Rank            int     `db:"rank"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
