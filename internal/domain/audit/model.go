package audit

import (
	"fmt"
	"time"
)

const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Record captures the outcome of processing one source file. Records are
// append-only; nothing mutates them after creation.
type Record struct {
	ID             int64
	Repo           string
	FilePath       string
	IngestedAt     time.Time
	RecordsAdded   int
	RecordsUpdated int
	RecordsSkipped int
	Status         string
	Hash           string
}

func (r Record) Validate() error {
	if r.Repo == "" {
		return fmt.Errorf("audit repo is required")
	}
	if r.FilePath == "" {
		return fmt.Errorf("audit file path is required")
	}
	switch r.Status {
	case StatusOK, StatusPartial, StatusFailed:
	default:
		return fmt.Errorf("invalid audit status %q", r.Status)
	}

	return nil
}
