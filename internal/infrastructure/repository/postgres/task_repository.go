package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/task"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	payload, result, err := encodeTaskJSON(t)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("agent_tasks").
		Columns("id", "task_type", "status", "payload", "result", "error", "created_at", "updated_at").
		Values(t.ID, string(t.Type), string(t.Status), payload, result, nullString(t.Error), t.CreatedAt, t.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert task query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (task.Task, bool, error) {
	query, args, err := qb.Select("*").From("agent_tasks").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return task.Task{}, false, fmt.Errorf("build get task query: %w", err)
	}

	var row taskTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return task.Task{}, false, nil
		}
		return task.Task{}, false, fmt.Errorf("get task: %w", err)
	}

	decoded, err := taskFromRow(row)
	if err != nil {
		return task.Task{}, false, err
	}

	return decoded, true, nil
}

func (r *TaskRepository) Update(ctx context.Context, t task.Task) error {
	payload, result, err := encodeTaskJSON(t)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("agent_tasks").
		Set("status", string(t.Status)).
		Set("payload", payload).
		Set("result", result).
		Set("error", nullString(t.Error)).
		Set("updated_at", t.UpdatedAt).
		Where(qb.Eq("id", t.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update task query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count task update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s does not exist", t.ID)
	}

	return nil
}

func encodeTaskJSON(t task.Task) ([]byte, []byte, error) {
	payload, err := sonic.Marshal(orEmptyMap(t.Payload))
	if err != nil {
		return nil, nil, fmt.Errorf("encode task payload: %w", err)
	}
	result, err := sonic.Marshal(orEmptyMap(t.Result))
	if err != nil {
		return nil, nil, fmt.Errorf("encode task result: %w", err)
	}

	return payload, result, nil
}

func taskFromRow(row taskTableModel) (task.Task, error) {
	t := task.Task{
		ID:        row.ID,
		Type:      task.Type(row.Type),
		Status:    task.Status(row.Status),
		Error:     row.Error.String,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if len(row.Payload) > 0 {
		if err := sonic.Unmarshal(row.Payload, &t.Payload); err != nil {
			return task.Task{}, fmt.Errorf("decode task payload: %w", err)
		}
	}
	if len(row.Result) > 0 {
		if err := sonic.Unmarshal(row.Result, &t.Result); err != nil {
			return task.Task{}, fmt.Errorf("decode task result: %w", err)
		}
	}

	return t, nil
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
