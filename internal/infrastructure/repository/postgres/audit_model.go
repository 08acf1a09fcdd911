package postgres

import (
	"time"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
)

type auditTableModel struct {
	ID             int64     `db:"id"`
	Repo           string    `db:"repo"`
	FilePath       string    `db:"file_path"`
	IngestedAt     time.Time `db:"ingested_at"`
	RecordsAdded   int       `db:"records_added"`
	RecordsUpdated int       `db:"records_updated"`
	RecordsSkipped int       `db:"records_skipped"`
	Status         string    `db:"status"`
	Hash           string    `db:"hash"`
}

func (m auditTableModel) toDomain() audit.Record {
	return audit.Record{
		ID:             m.ID,
		Repo:           m.Repo,
		FilePath:       m.FilePath,
		IngestedAt:     m.IngestedAt,
		RecordsAdded:   m.RecordsAdded,
		RecordsUpdated: m.RecordsUpdated,
		RecordsSkipped: m.RecordsSkipped,
		Status:         m.Status,
		Hash:           m.Hash,
	}
}
