package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
)

// AuditService exposes the audit trail for inspection.
type AuditService struct {
	auditRepo audit.Repository
}

func NewAuditService(auditRepo audit.Repository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) ListByEntity(ctx context.Context, entityType, entityID string) ([]audit.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "AuditService.ListByEntity")
	defer span.End()

	entityType = strings.TrimSpace(entityType)
	entityID = strings.TrimSpace(entityID)
	if entityType == "" || entityID == "" {
		return nil, fmt.Errorf("%w: entity type and id are required", ErrInvalidInput)
	}

	entries, err := s.auditRepo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}
