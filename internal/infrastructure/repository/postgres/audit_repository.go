package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e audit.Entry) error {
	details, err := sonic.Marshal(orEmptyMap(e.Details))
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	query, args, err := qb.InsertInto("audit_log").
		Columns("task_id", "entity_type", "entity_id", "action", "details", "occurred_at").
		Values(e.TaskID, e.EntityType, e.EntityID, e.Action, details, e.OccurredAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert audit query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	query, args, err := qb.Select("*").From("audit_log").
		Where(
			qb.Eq("entity_type", entityType),
			qb.Eq("entity_id", entityID),
		).
		OrderBy("occurred_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select audit query: %w", err)
	}

	var rows []auditTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select audit entries: %w", err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		entry := audit.Entry{
			ID:         row.ID,
			TaskID:     row.TaskID,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Action:     row.Action,
			OccurredAt: row.OccurredAt,
		}
		if len(row.Details) > 0 {
			if err := sonic.Unmarshal(row.Details, &entry.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		out = append(out, entry)
	}

	return out, nil
}
