package scoring

import (
	"sort"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
)

// PlayerAggregate is one player's season-to-date per-game line. Counting
// stats are per-game averages; the shooting percentages come from summed
// makes over summed attempts, never from averaging per-game percentages.
type PlayerAggregate struct {
	PlayerID int64
	Games    int

	Points    float64
	Rebounds  float64
	Assists   float64
	Steals    float64
	Blocks    float64
	Threes    float64
	Turnovers float64

	FieldGoalPct float64
	FreeThrowPct float64
}

// Value returns the aggregate's value for one category.
func (a PlayerAggregate) Value(cat Category) float64 {
	switch cat {
	case CategoryPoints:
		return a.Points
	case CategoryRebounds:
		return a.Rebounds
	case CategoryAssists:
		return a.Assists
	case CategorySteals:
		return a.Steals
	case CategoryBlocks:
		return a.Blocks
	case CategoryThrees:
		return a.Threes
	case CategoryFieldGoalPct:
		return a.FieldGoalPct
	case CategoryFreeThrowPct:
		return a.FreeThrowPct
	default:
		return 0
	}
}

type playerTotals struct {
	games                  int
	pts, reb, ast, stl, blk int
	fgm, fga, ftm, fta, tpm int
	tov                    int
}

// Aggregate folds raw game rows into per-player aggregates. No rows yield an
// empty result. Output is ordered by player id so repeated runs over the
// same input are byte-identical.
func Aggregate(records []gamestat.GameStat) []PlayerAggregate {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[int64]*playerTotals)
	for _, rec := range records {
		t := totals[rec.PlayerID]
		if t == nil {
			t = &playerTotals{}
			totals[rec.PlayerID] = t
		}
		t.games++
		t.pts += rec.Points
		t.reb += rec.Rebounds
		t.ast += rec.Assists
		t.stl += rec.Steals
		t.blk += rec.Blocks
		t.fgm += rec.FGMade
		t.fga += rec.FGAttempted
		t.ftm += rec.FTMade
		t.fta += rec.FTAttempted
		t.tpm += rec.ThreesMade
		t.tov += rec.Turnovers
	}

	out := make([]PlayerAggregate, 0, len(totals))
	for playerID, t := range totals {
		games := float64(t.games)
		agg := PlayerAggregate{
			PlayerID:  playerID,
			Games:     t.games,
			Points:    float64(t.pts) / games,
			Rebounds:  float64(t.reb) / games,
			Assists:   float64(t.ast) / games,
			Steals:    float64(t.stl) / games,
			Blocks:    float64(t.blk) / games,
			Threes:    float64(t.tpm) / games,
			Turnovers: float64(t.tov) / games,
		}
		if t.fga > 0 {
			agg.FieldGoalPct = float64(t.fgm) / float64(t.fga)
		}
		if t.fta > 0 {
			agg.FreeThrowPct = float64(t.ftm) / float64(t.fta)
		}
		out = append(out, agg)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out
}
