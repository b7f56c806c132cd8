package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/bytedance/sonic"

	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
	"github.com/courtvision/fantasy-hoops/internal/domain/task"
	"github.com/courtvision/fantasy-hoops/internal/platform/id"
	"github.com/courtvision/fantasy-hoops/internal/platform/locking"
	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
)

const lockedRetryMessage = "resource locked, retry later"

// TaskService owns the background-task lifecycle: submission persists a
// pending task and returns immediately; execution is a separate step that
// drives the task to exactly one terminal state, holding the resource lock
// the task type requires. A task can never stay stuck in running after its
// execution attempt returns.
type TaskService struct {
	taskRepo  task.Repository
	auditRepo audit.Repository
	locker    locking.Locker
	ids       id.Generator
	logger    *logging.Logger

	roto      *RotoService
	importer  *ImporterService
	ingestion *IngestionService
	values    *PlayerValueService
}

func NewTaskService(
	taskRepo task.Repository,
	auditRepo audit.Repository,
	locker locking.Locker,
	ids id.Generator,
	logger *logging.Logger,
	roto *RotoService,
	importer *ImporterService,
	ingestion *IngestionService,
	values *PlayerValueService,
) *TaskService {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &TaskService{
		taskRepo:  taskRepo,
		auditRepo: auditRepo,
		locker:    locker,
		ids:       ids,
		logger:    logger,
		roto:      roto,
		importer:  importer,
		ingestion: ingestion,
		values:    values,
	}
}

// Submit persists a new pending task and returns it without executing
// anything. Triggering execution is the caller's job.
func (s *TaskService) Submit(ctx context.Context, typ task.Type, payload map[string]any) (task.Task, error) {
	ctx, span := startUsecaseSpan(ctx, "TaskService.Submit")
	defer span.End()

	if _, err := task.ParseType(string(typ)); err != nil {
		return task.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	taskID, err := s.ids.NewID()
	if err != nil {
		return task.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	now := time.Now().UTC()
	t := task.Task{
		ID:        taskID,
		Type:      typ,
		Status:    task.StatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.taskRepo.Create(ctx, t); err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.logger.InfoContext(ctx, "task submitted", "task_id", t.ID, "task_type", string(typ))

	return t, nil
}

// Get returns a task by id.
func (s *TaskService) Get(ctx context.Context, taskID string) (task.Task, error) {
	ctx, span := startUsecaseSpan(ctx, "TaskService.Get")
	defer span.End()

	if taskID == "" {
		return task.Task{}, fmt.Errorf("%w: task id is required", ErrInvalidInput)
	}

	t, exists, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}
	if !exists {
		return task.Task{}, fmt.Errorf("%w: task=%s", ErrNotFound, taskID)
	}

	return t, nil
}

// Run executes a previously submitted task. An unknown task id is logged
// and otherwise a no-op: the submitter already holds the id they were
// given, so there is nothing useful to fail here. Any other outcome leaves
// the task completed or failed, with the failure message and trace stored
// on the row.
func (s *TaskService) Run(ctx context.Context, taskID string) error {
	ctx, span := startUsecaseSpan(ctx, "TaskService.Run")
	defer span.End()

	t, exists, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "task not found, skipping execution", "task_id", taskID)
		return nil
	}
	if t.Status.Terminal() {
		s.logger.WarnContext(ctx, "task already finished, skipping execution",
			"task_id", taskID,
			"status", string(t.Status),
		)
		return nil
	}

	t.Status = task.StatusRunning
	t.UpdatedAt = time.Now().UTC()
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return fmt.Errorf("mark task running: %w", err)
	}

	var (
		result  map[string]any
		execErr error
	)

	// Terminal write happens no matter how execution ends, panics
	// included, so the row can never remain running.
	defer func() {
		if r := recover(); r != nil {
			execErr = crerr.Newf("task handler panic: %v", r)
		}
		s.finish(ctx, t, result, execErr)
	}()

	result, execErr = s.execute(ctx, t)

	return nil
}

func (s *TaskService) execute(ctx context.Context, t task.Task) (map[string]any, error) {
	switch t.Type {
	case task.TypeCalculateRoto:
		return s.runCalculateRoto(ctx, t)
	case task.TypeImportRoster:
		return s.runImportRoster(ctx, t)
	case task.TypeIngestData:
		return s.runIngestData(ctx, t)
	default:
		return nil, fmt.Errorf("%w: unknown task type %q", ErrInvalidInput, t.Type)
	}
}

func (s *TaskService) runCalculateRoto(ctx context.Context, t task.Task) (map[string]any, error) {
	leagueID, err := payloadInt64(t.Payload, "league_id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	asOf, err := payloadDate(t.Payload, "as_of")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lease, acquired, err := s.locker.TryAcquire(ctx, locking.LeagueKey(leagueID))
	if err != nil {
		return nil, fmt.Errorf("acquire league lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: league=%d", ErrResourceLocked, leagueID)
	}
	defer lease.Release(ctx)

	rows, err := s.roto.CalculateStandings(ctx, leagueID, asOf)
	if err != nil {
		return nil, err
	}

	s.appendAudit(ctx, audit.Entry{
		TaskID:     t.ID,
		EntityType: "league",
		EntityID:   strconv.FormatInt(leagueID, 10),
		Action:     "calculate_standings",
		Details: map[string]any{
			"teams_processed": len(rows),
		},
	})

	return map[string]any{
		"league_id":       leagueID,
		"teams_processed": len(rows),
	}, nil
}

func (s *TaskService) runImportRoster(ctx context.Context, t task.Task) (map[string]any, error) {
	leagueID, err := payloadInt64(t.Payload, "league_id")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rosters, err := payloadRosters(t.Payload, "rosters")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lease, acquired, err := s.locker.TryAcquire(ctx, locking.LeagueKey(leagueID))
	if err != nil {
		return nil, fmt.Errorf("acquire league lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: league=%d", ErrResourceLocked, leagueID)
	}
	defer lease.Release(ctx)

	report, err := s.importer.ImportRosters(ctx, leagueID, rosters)
	if err != nil {
		return nil, err
	}

	details, err := toDetailMap(report)
	if err != nil {
		return nil, fmt.Errorf("encode import report: %w", err)
	}

	s.appendAudit(ctx, audit.Entry{
		TaskID:     t.ID,
		EntityType: "league",
		EntityID:   strconv.FormatInt(leagueID, 10),
		Action:     "import_rosters",
		Details:    details,
	})

	return details, nil
}

func (s *TaskService) runIngestData(ctx context.Context, t task.Task) (map[string]any, error) {
	since, err := payloadDate(t.Payload, "since")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lease, acquired, err := s.locker.TryAcquire(ctx, locking.GlobalIngestKey)
	if err != nil {
		return nil, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: ingestion already running", ErrResourceLocked)
	}
	defer lease.Release(ctx)

	report, err := s.ingestion.IngestGameStats(ctx, since)
	if err != nil {
		return nil, err
	}

	if s.values != nil && report.GamesInserted > 0 {
		s.values.InvalidateValues(ctx)
	}

	details, err := toDetailMap(report)
	if err != nil {
		return nil, fmt.Errorf("encode ingest report: %w", err)
	}

	s.appendAudit(ctx, audit.Entry{
		TaskID:     t.ID,
		EntityType: "game_stats",
		EntityID:   "all",
		Action:     "ingest_data",
		Details:    details,
	})

	return details, nil
}

func (s *TaskService) finish(ctx context.Context, t task.Task, result map[string]any, execErr error) {
	// The caller's context may already be cancelled, e.g. when the
	// client dropped a synchronous run request mid-execution. The
	// terminal write must still land or the row stays running forever.
	ctx = context.WithoutCancel(ctx)

	t.UpdatedAt = time.Now().UTC()

	switch {
	case execErr == nil:
		t.Status = task.StatusCompleted
		t.Result = result
		t.Error = ""
	case crerr.Is(execErr, ErrResourceLocked):
		t.Status = task.StatusFailed
		t.Error = lockedRetryMessage
		t.Result = map[string]any{"detail": execErr.Error()}
	default:
		t.Status = task.StatusFailed
		t.Error = execErr.Error()
		t.Result = map[string]any{"trace": fmt.Sprintf("%+v", execErr)}
	}

	if err := s.taskRepo.Update(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "terminal task update failed",
			"task_id", t.ID,
			"status", string(t.Status),
			"error", err,
		)
		return
	}

	if execErr != nil {
		s.logger.WarnContext(ctx, "task failed",
			"task_id", t.ID,
			"task_type", string(t.Type),
			"error", execErr.Error(),
		)
		return
	}
	s.logger.InfoContext(ctx, "task completed", "task_id", t.ID, "task_type", string(t.Type))
}

func (s *TaskService) appendAudit(ctx context.Context, e audit.Entry) {
	// The entry records a mutation that already landed, so it is written
	// even when the caller's context has been cancelled.
	ctx = context.WithoutCancel(ctx)

	e.OccurredAt = time.Now().UTC()
	if err := s.auditRepo.Append(ctx, e); err != nil {
		// The mutation already landed; losing the audit row is logged,
		// not fatal.
		s.logger.ErrorContext(ctx, "audit append failed",
			"task_id", e.TaskID,
			"action", e.Action,
			"error", err,
		)
	}
}

// payloadInt64 reads an integer payload field. JSON decoding hands numbers
// over as float64, so both forms are accepted.
func payloadInt64(payload map[string]any, key string) (int64, error) {
	raw, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("payload field %q is required", key)
	}

	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("payload field %q is not an integer: %v", key, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("payload field %q has unexpected type %T", key, raw)
	}
}

// payloadDate reads an optional RFC3339 or YYYY-MM-DD payload field. A
// missing field yields the zero time.
func payloadDate(payload map[string]any, key string) (time.Time, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return time.Time{}, nil
	}

	str, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("payload field %q has unexpected type %T", key, raw)
	}
	if str == "" {
		return time.Time{}, nil
	}

	if parsed, err := time.Parse(time.RFC3339, str); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("payload field %q is not a date: %v", key, err)
	}

	return parsed, nil
}

func payloadRosters(payload map[string]any, key string) (map[string][]string, error) {
	raw, ok := payload[key]
	if !ok {
		return nil, fmt.Errorf("payload field %q is required", key)
	}

	if typed, ok := raw.(map[string][]string); ok {
		return typed, nil
	}

	generic, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("payload field %q has unexpected type %T", key, raw)
	}

	rosters := make(map[string][]string, len(generic))
	for teamName, players := range generic {
		list, ok := players.([]any)
		if !ok {
			return nil, fmt.Errorf("roster for team %q has unexpected type %T", teamName, players)
		}
		names := make([]string, 0, len(list))
		for _, entry := range list {
			name, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("roster for team %q contains a non-string entry %T", teamName, entry)
			}
			names = append(names, name)
		}
		rosters[teamName] = names
	}

	return rosters, nil
}

// toDetailMap converts a typed report into the free-form JSON map stored on
// task and audit rows.
func toDetailMap(v any) (map[string]any, error) {
	encoded, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := sonic.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}

	return out, nil
}
