package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
)

const defaultAuditListLimit = 100

type AuditService struct {
	auditRepo audit.Repository
}

func NewAuditService(auditRepo audit.Repository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) List(ctx context.Context, limit int) ([]audit.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "AuditService.List")
	defer span.End()

	if limit <= 0 {
		limit = defaultAuditListLimit
	}

	records, err := s.auditRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	return records, nil
}

func (s *AuditService) LatestByFile(ctx context.Context, repo, filePath string) (audit.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "AuditService.LatestByFile")
	defer span.End()

	repo = strings.TrimSpace(repo)
	filePath = strings.TrimSpace(filePath)
	if repo == "" || filePath == "" {
		return audit.Record{}, fmt.Errorf("%w: repo and file path are required", ErrInvalidInput)
	}

	record, exists, err := s.auditRepo.LatestByFile(ctx, repo, filePath)
	if err != nil {
		return audit.Record{}, fmt.Errorf("get latest audit record: %w", err)
	}
	if !exists {
		return audit.Record{}, fmt.Errorf("%w: audit record for %s/%s", ErrNotFound, repo, filePath)
	}

	return record, nil
}
