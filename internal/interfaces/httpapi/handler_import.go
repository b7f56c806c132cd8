package httpapi

import (
	"net/http"
)

type importRostersRequest struct {
	Rosters map[string][]string `json:"rosters" validate:"required,min=1"`
}

// ImportRosters ingests fantasy team rosters for a league from team-name
// to player-name lists, fuzzy-matching the names against the player pool.
// This endpoint runs synchronously; the tasks API covers the async path.
func (h *Handler) ImportRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportRosters")
	defer span.End()

	leagueID, err := parseInt64PathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req importRostersRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.importerService.ImportRosters(ctx, leagueID, req.Rosters)
	if err != nil {
		h.logger.WarnContext(ctx, "import rosters failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
