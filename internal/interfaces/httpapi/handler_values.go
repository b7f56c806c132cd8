package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

type playerValueDTO struct {
	PlayerID   int64              `json:"player_id"`
	FullName   string             `json:"full_name"`
	TeamAbbr   string             `json:"team_abbr"`
	Position   string             `json:"position"`
	Games      int                `json:"games"`
	Categories map[string]float64 `json:"categories"`
	CompositeZ float64            `json:"composite_z"`
}

func playerValueToDTO(row usecase.PlayerValueRow) playerValueDTO {
	categories := make(map[string]float64, len(row.Value.Categories))
	for cat, z := range row.Value.Categories {
		categories[string(cat)] = z
	}

	return playerValueDTO{
		PlayerID:   row.Player.ID,
		FullName:   row.Player.FullName,
		TeamAbbr:   row.Player.TeamAbbr,
		Position:   row.Player.Position,
		Games:      row.Value.Games,
		Categories: categories,
		CompositeZ: row.Value.Composite,
	}
}

// ListPlayerValues returns the league-wide value table, most valuable
// player first. An optional comma-separated "categories" query restricts
// scoring to a subset of the eight default categories.
func (h *Handler) ListPlayerValues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerValues")
	defer span.End()

	categories, err := parseCategoriesQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.valueService.ValueTable(ctx, categories)
	if err != nil {
		h.logger.WarnContext(ctx, "list player values failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerValueDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerValueToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseCategoriesQuery(r *http.Request) ([]scoring.Category, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("categories"))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]scoring.Category, 0, len(parts))
	for _, part := range parts {
		cat, err := scoring.ParseCategory(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		out = append(out, cat)
	}

	return out, nil
}
