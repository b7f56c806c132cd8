package standings

import "time"

// DailyStanding is one team's roto line for one league and date: the raw
// category totals over all rostered players' games up to the date, the
// rank points earned in each category, their sum, and the final rank.
type DailyStanding struct {
	ID       int64
	LeagueID int64
	TeamID   int64
	Date     time.Time

	TotalPoints   int
	TotalRebounds int
	TotalAssists  int
	TotalSteals   int
	TotalBlocks   int
	TotalThrees   int

	FieldGoalPct float64
	FreeThrowPct float64

	PointsPts   float64
	PointsReb   float64
	PointsAst   float64
	PointsStl   float64
	PointsBlk   float64
	PointsTpm   float64
	PointsFgPct float64
	PointsFtPct float64

	TotalRotoPoints float64
	Rank            int
}
