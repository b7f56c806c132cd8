package scoring

import (
	"math"
	"sort"
)

// PlayerValue is one player's pool-relative value: a z-score per category
// and their arithmetic mean as the composite. Values are ephemeral and only
// mean something against the exact pool they were computed over.
type PlayerValue struct {
	PlayerID   int64
	Games      int
	Categories map[Category]float64
	Composite  float64
}

// ZScores computes population z-scores per category over the given pool and
// a composite per player, returned in descending composite order. Ties keep
// the input's relative order. A zero category stddev (degenerate pool) maps
// every player to z = 0 for that category rather than erroring: zero-game
// pools are legitimate fantasy data.
func ZScores(aggregates []PlayerAggregate, categories []Category) []PlayerValue {
	if len(aggregates) == 0 {
		return nil
	}
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	n := float64(len(aggregates))
	means := make(map[Category]float64, len(categories))
	stddevs := make(map[Category]float64, len(categories))

	for _, cat := range categories {
		var sum float64
		for _, agg := range aggregates {
			sum += agg.Value(cat)
		}
		mean := sum / n

		var sq float64
		for _, agg := range aggregates {
			d := agg.Value(cat) - mean
			sq += d * d
		}

		means[cat] = mean
		stddevs[cat] = math.Sqrt(sq / n)
	}

	out := make([]PlayerValue, 0, len(aggregates))
	for _, agg := range aggregates {
		value := PlayerValue{
			PlayerID:   agg.PlayerID,
			Games:      agg.Games,
			Categories: make(map[Category]float64, len(categories)),
		}

		var total float64
		for _, cat := range categories {
			var z float64
			if stddevs[cat] != 0 {
				z = (agg.Value(cat) - means[cat]) / stddevs[cat]
			}
			value.Categories[cat] = z
			total += z
		}
		value.Composite = total / float64(len(categories))
		out = append(out, value)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Composite > out[j].Composite })

	return out
}
