package httpapi

import (
	"net/http"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
)

type auditEntryDTO struct {
	ID         int64          `json:"id"`
	TaskID     string         `json:"task_id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func auditEntryToDTO(e audit.Entry) auditEntryDTO {
	return auditEntryDTO{
		ID:         e.ID,
		TaskID:     e.TaskID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		Details:    e.Details,
		OccurredAt: e.OccurredAt,
	}
}

// ListAuditTrail returns the mutation history recorded against one
// entity, oldest first.
func (h *Handler) ListAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAuditTrail")
	defer span.End()

	entityType := r.PathValue("entityType")
	entityID := r.PathValue("entityID")

	entries, err := h.auditService.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "list audit trail failed", "entity_type", entityType, "entity_id", entityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, auditEntryToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
