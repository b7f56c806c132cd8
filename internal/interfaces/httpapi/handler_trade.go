package httpapi

import (
	"net/http"

	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

type analyzeTradeRequest struct {
	TeamARoster []int64  `json:"team_a_roster" validate:"required,min=1,dive,gt=0"`
	TeamBRoster []int64  `json:"team_b_roster" validate:"required,min=1,dive,gt=0"`
	FromAToB    []int64  `json:"from_a_to_b" validate:"omitempty,dive,gt=0"`
	FromBToA    []int64  `json:"from_b_to_a" validate:"omitempty,dive,gt=0"`
	Categories  []string `json:"categories" validate:"omitempty,dive,required"`
}

type teamStrengthDTO struct {
	TotalZ     float64            `json:"total_z"`
	AverageZ   float64            `json:"average_z"`
	Categories map[string]float64 `json:"categories"`
	Players    int                `json:"players"`
}

type teamImpactDTO struct {
	Before teamStrengthDTO `json:"before"`
	After  teamStrengthDTO `json:"after"`
	Delta  float64         `json:"delta"`
}

type tradeReportDTO struct {
	TeamA teamImpactDTO `json:"team_a"`
	TeamB teamImpactDTO `json:"team_b"`
}

func teamStrengthToDTO(s usecase.TeamStrength) teamStrengthDTO {
	categories := make(map[string]float64, len(s.Categories))
	for cat, z := range s.Categories {
		categories[string(cat)] = z
	}

	return teamStrengthDTO{
		TotalZ:     s.TotalZ,
		AverageZ:   s.AverageZ,
		Categories: categories,
		Players:    s.Players,
	}
}

func teamImpactToDTO(i usecase.TeamImpact) teamImpactDTO {
	return teamImpactDTO{
		Before: teamStrengthToDTO(i.Before),
		After:  teamStrengthToDTO(i.After),
		Delta:  i.Delta,
	}
}

// AnalyzeTrade evaluates a proposed player exchange between two rosters
// and reports each side's strength before and after.
func (h *Handler) AnalyzeTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnalyzeTrade")
	defer span.End()

	var req analyzeTradeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	categories := make([]scoring.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		cat, err := scoring.ParseCategory(raw)
		if err != nil {
			writeError(ctx, w, joinInvalidInput(err))
			return
		}
		categories = append(categories, cat)
	}

	report, err := h.tradeService.AnalyzeTrade(ctx, usecase.TradeInput{
		TeamARoster: req.TeamARoster,
		TeamBRoster: req.TeamBRoster,
		FromAToB:    req.FromAToB,
		FromBToA:    req.FromBToA,
		Categories:  categories,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "analyze trade failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeReportDTO{
		TeamA: teamImpactToDTO(report.TeamA),
		TeamB: teamImpactToDTO(report.TeamB),
	})
}
