package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/standings"
	"github.com/courtvision/fantasy-hoops/internal/domain/task"
)

type standingDTO struct {
	TeamID int64  `json:"team_id"`
	Date   string `json:"date"`

	TotalPoints   int `json:"total_points"`
	TotalRebounds int `json:"total_rebounds"`
	TotalAssists  int `json:"total_assists"`
	TotalSteals   int `json:"total_steals"`
	TotalBlocks   int `json:"total_blocks"`
	TotalThrees   int `json:"total_threes"`

	FieldGoalPct float64 `json:"fg_pct"`
	FreeThrowPct float64 `json:"ft_pct"`

	CategoryPoints  map[string]float64 `json:"category_points"`
	TotalRotoPoints float64            `json:"total_roto_points"`
	Rank            int                `json:"rank"`
}

func standingToDTO(row standings.DailyStanding) standingDTO {
	return standingDTO{
		TeamID:        row.TeamID,
		Date:          row.Date.Format("2006-01-02"),
		TotalPoints:   row.TotalPoints,
		TotalRebounds: row.TotalRebounds,
		TotalAssists:  row.TotalAssists,
		TotalSteals:   row.TotalSteals,
		TotalBlocks:   row.TotalBlocks,
		TotalThrees:   row.TotalThrees,
		FieldGoalPct:  row.FieldGoalPct,
		FreeThrowPct:  row.FreeThrowPct,
		CategoryPoints: map[string]float64{
			"pts":    row.PointsPts,
			"reb":    row.PointsReb,
			"ast":    row.PointsAst,
			"stl":    row.PointsStl,
			"blk":    row.PointsBlk,
			"tpm":    row.PointsTpm,
			"fg_pct": row.PointsFgPct,
			"ft_pct": row.PointsFtPct,
		},
		TotalRotoPoints: row.TotalRotoPoints,
		Rank:            row.Rank,
	}
}

// ListStandings returns the stored roto standings for a league and date.
// The date defaults to today when the query parameter is omitted.
func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	leagueID, err := parseInt64PathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.rotoService.ListStandings(ctx, leagueID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type recalculateStandingsRequest struct {
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

// RecalculateStandings submits a calculate_roto task for the league and
// runs it in the background. The response is the pending task so the
// caller can poll its status.
func (h *Handler) RecalculateStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStandings")
	defer span.End()

	leagueID, err := parseInt64PathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recalculateStandingsRequest
	if r.ContentLength > 0 {
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	payload := map[string]any{"league_id": leagueID}
	if req.AsOf != "" {
		payload["as_of"] = req.AsOf
	}

	submitted, err := h.taskService.Submit(ctx, task.TypeCalculateRoto, payload)
	if err != nil {
		h.logger.WarnContext(ctx, "submit recalculation failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.runTaskAsync(ctx, submitted.ID)

	writeSuccess(ctx, w, http.StatusAccepted, taskToDTO(submitted))
}

// runTaskAsync executes the task on a detached context so an impatient
// client disconnect cannot abort the run midway.
func (h *Handler) runTaskAsync(ctx context.Context, taskID string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		runCtx, cancel := context.WithTimeout(detached, 10*time.Minute)
		defer cancel()

		if err := h.taskService.Run(runCtx, taskID); err != nil {
			h.logger.ErrorContext(runCtx, "background task run failed", "task_id", taskID, "error", err)
		}
	}()
}
