package scoring

import "fmt"

// Category is one tracked roto statistic.
type Category string

const (
	CategoryPoints       Category = "pts"
	CategoryRebounds     Category = "reb"
	CategoryAssists      Category = "ast"
	CategorySteals       Category = "stl"
	CategoryBlocks       Category = "blk"
	CategoryThrees       Category = "tpm"
	CategoryFieldGoalPct Category = "fg_pct"
	CategoryFreeThrowPct Category = "ft_pct"
)

// DefaultCategories is the standard 8-cat order. Composite scores average
// over exactly this set unless the caller narrows it.
func DefaultCategories() []Category {
	return []Category{
		CategoryPoints,
		CategoryRebounds,
		CategoryAssists,
		CategorySteals,
		CategoryBlocks,
		CategoryThrees,
		CategoryFieldGoalPct,
		CategoryFreeThrowPct,
	}
}

func ParseCategory(raw string) (Category, error) {
	switch Category(raw) {
	case CategoryPoints, CategoryRebounds, CategoryAssists, CategorySteals,
		CategoryBlocks, CategoryThrees, CategoryFieldGoalPct, CategoryFreeThrowPct:
		return Category(raw), nil
	default:
		return "", fmt.Errorf("unknown stat category %q", raw)
	}
}
