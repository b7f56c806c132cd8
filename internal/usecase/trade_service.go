package usecase

import (
	"context"
	"fmt"

	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
)

// TradeInput describes a proposed two-team player exchange. Rosters are
// player id lists; FromAToB and FromBToA name the players moving in each
// direction and must not overlap. The analyzer does not check that a moving
// player actually belongs to the roster it leaves; that is the caller's
// responsibility.
type TradeInput struct {
	TeamARoster []int64
	TeamBRoster []int64
	FromAToB    []int64
	FromBToA    []int64

	Categories []scoring.Category
}

// TeamStrength is a roster's aggregate value: the sum of its players'
// composite z-scores, each category's summed z-scores, and the per-player
// average composite.
type TeamStrength struct {
	TotalZ     float64
	AverageZ   float64
	Categories map[scoring.Category]float64
	Players    int
}

// TeamImpact holds one team's strength before and after the exchange and
// the composite delta.
type TeamImpact struct {
	Before TeamStrength
	After  TeamStrength
	Delta  float64
}

// TradeReport is the analyzer's full output.
type TradeReport struct {
	TeamA TeamImpact
	TeamB TeamImpact
}

// TradeService evaluates proposed trades against the league-wide value
// table. Values are always taken from the full candidate pool, never
// recomputed over just the two rosters, so the same player is worth the
// same on either side of the trade.
type TradeService struct {
	values *PlayerValueService
}

func NewTradeService(values *PlayerValueService) *TradeService {
	return &TradeService{values: values}
}

// AnalyzeTrade computes before/after strength for both teams. An empty or
// unmatched roster scores zero rather than failing; players missing from
// the value table simply contribute nothing.
func (s *TradeService) AnalyzeTrade(ctx context.Context, input TradeInput) (TradeReport, error) {
	ctx, span := startUsecaseSpan(ctx, "TradeService.AnalyzeTrade")
	defer span.End()

	if len(input.FromAToB) == 0 && len(input.FromBToA) == 0 {
		return TradeReport{}, fmt.Errorf("%w: trade moves no players", ErrInvalidInput)
	}
	if overlap := intersect(input.FromAToB, input.FromBToA); len(overlap) > 0 {
		return TradeReport{}, fmt.Errorf("%w: players %v appear in both directions", ErrInvalidInput, overlap)
	}

	categories := input.Categories
	if len(categories) == 0 {
		categories = scoring.DefaultCategories()
	}

	rows, err := s.values.ValueTable(ctx, categories)
	if err != nil {
		return TradeReport{}, fmt.Errorf("build value table: %w", err)
	}

	table := make(map[int64]scoring.PlayerValue, len(rows))
	for _, row := range rows {
		table[row.Value.PlayerID] = row.Value
	}

	afterA := applyMoves(input.TeamARoster, input.FromAToB, input.FromBToA)
	afterB := applyMoves(input.TeamBRoster, input.FromBToA, input.FromAToB)

	beforeA := rosterStrength(table, input.TeamARoster, categories)
	beforeB := rosterStrength(table, input.TeamBRoster, categories)
	afterAStrength := rosterStrength(table, afterA, categories)
	afterBStrength := rosterStrength(table, afterB, categories)

	return TradeReport{
		TeamA: TeamImpact{
			Before: beforeA,
			After:  afterAStrength,
			Delta:  afterAStrength.TotalZ - beforeA.TotalZ,
		},
		TeamB: TeamImpact{
			Before: beforeB,
			After:  afterBStrength,
			Delta:  afterBStrength.TotalZ - beforeB.TotalZ,
		},
	}, nil
}

func rosterStrength(table map[int64]scoring.PlayerValue, roster []int64, categories []scoring.Category) TeamStrength {
	strength := TeamStrength{
		Categories: make(map[scoring.Category]float64, len(categories)),
	}
	for _, cat := range categories {
		strength.Categories[cat] = 0
	}

	for _, id := range roster {
		value, ok := table[id]
		if !ok {
			continue
		}
		strength.Players++
		strength.TotalZ += value.Composite
		for _, cat := range categories {
			strength.Categories[cat] += value.Categories[cat]
		}
	}

	if strength.Players > 0 {
		strength.AverageZ = strength.TotalZ / float64(strength.Players)
	}

	return strength
}

func applyMoves(roster, outgoing, incoming []int64) []int64 {
	out := make(map[int64]struct{}, len(outgoing))
	for _, id := range outgoing {
		out[id] = struct{}{}
	}

	result := make([]int64, 0, len(roster)+len(incoming))
	for _, id := range roster {
		if _, gone := out[id]; gone {
			continue
		}
		result = append(result, id)
	}
	result = append(result, incoming...)

	return result
}

func intersect(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}

	var both []int64
	for _, id := range b {
		if _, ok := seen[id]; ok {
			both = append(both, id)
		}
	}

	return both
}
