package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/task"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

type taskDTO struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	Payload   map[string]any `json:"payload,omitempty"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func taskToDTO(t task.Task) taskDTO {
	return taskDTO{
		ID:        t.ID,
		Type:      string(t.Type),
		Status:    string(t.Status),
		Payload:   t.Payload,
		Result:    t.Result,
		Error:     t.Error,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type submitTaskRequest struct {
	Type    string         `json:"type" validate:"required"`
	Payload map[string]any `json:"payload"`
}

// SubmitTask persists a new pending task without executing it.
func (h *Handler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitTask")
	defer span.End()

	var req submitTaskRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	typ, err := task.ParseType(req.Type)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	submitted, err := h.taskService.Submit(ctx, typ, req.Payload)
	if err != nil {
		h.logger.WarnContext(ctx, "submit task failed", "task_type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, taskToDTO(submitted))
}

// RunTask executes a previously submitted task and returns its final
// state. A failed task still answers 200: the failure lives on the task
// row, not in the transport.
func (h *Handler) RunTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTask")
	defer span.End()

	taskID := strings.TrimSpace(r.PathValue("taskID"))
	if taskID == "" {
		writeError(ctx, w, fmt.Errorf("%w: task id is required", usecase.ErrInvalidInput))
		return
	}

	if err := h.taskService.Run(ctx, taskID); err != nil {
		h.logger.ErrorContext(ctx, "run task failed", "task_id", taskID, "error", err)
		writeError(ctx, w, err)
		return
	}

	final, err := h.taskService.Get(ctx, taskID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, taskToDTO(final))
}

// GetTask returns a task's current status and result.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTask")
	defer span.End()

	taskID := strings.TrimSpace(r.PathValue("taskID"))
	found, err := h.taskService.Get(ctx, taskID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, taskToDTO(found))
}
