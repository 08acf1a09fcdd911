package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
	qb "github.com/KevinKasozi/MatchWise/internal/platform/querybuilder"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, rec audit.Record) (audit.Record, error) {
	if err := rec.Validate(); err != nil {
		return audit.Record{}, err
	}

	query, args, err := qb.InsertInto("ingestion_audit").
		Columns("repo", "file_path", "ingested_at", "records_added", "records_updated", "records_skipped", "status", "hash").
		Values(rec.Repo, rec.FilePath, rec.IngestedAt, rec.RecordsAdded, rec.RecordsUpdated, rec.RecordsSkipped, rec.Status, rec.Hash).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return audit.Record{}, fmt.Errorf("build insert audit record query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		return audit.Record{}, fmt.Errorf("insert audit record: %w", err)
	}

	return rec, nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]audit.Record, error) {
	builder := qb.Select("*").From("ingestion_audit").
		OrderBy("ingested_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select audit records query: %w", err)
	}

	var rows []auditTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select audit records: %w", err)
	}

	out := make([]audit.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *AuditRepository) LatestByFile(ctx context.Context, repo, filePath string) (audit.Record, bool, error) {
	query, args, err := qb.Select("*").From("ingestion_audit").
		Where(
			qb.Eq("repo", repo),
			qb.Eq("file_path", filePath),
		).
		OrderBy("ingested_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return audit.Record{}, false, fmt.Errorf("build latest audit record query: %w", err)
	}

	var row auditTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return audit.Record{}, false, nil
		}
		return audit.Record{}, false, fmt.Errorf("get latest audit record: %w", err)
	}

	return row.toDomain(), true, nil
}
