package memory

import (
	"context"
	"sync"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
)

type AuditRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records []audit.Record
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{nextID: 1}
}

func (r *AuditRepository) Append(_ context.Context, rec audit.Record) (audit.Record, error) {
	if err := rec.Validate(); err != nil {
		return audit.Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, rec)

	return rec, nil
}

// List returns the newest records first.
func (r *AuditRepository) List(_ context.Context, limit int) ([]audit.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Record, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}

func (r *AuditRepository) LatestByFile(_ context.Context, repo, filePath string) (audit.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.Repo == repo && rec.FilePath == filePath {
			return rec, true, nil
		}
	}

	return audit.Record{}, false, nil
}
