package ingest

import (
	"sync/atomic"
	"time"
)

// Stats aggregates counters across workers. All fields are atomics because
// parallel runs update them from multiple goroutines.
type Stats struct {
	start time.Time

	FilesProcessed  atomic.Int64
	FilesSkipped    atomic.Int64
	FilesFailed     atomic.Int64
	ClubsAdded      atomic.Int64
	ClubsUpdated    atomic.Int64
	FixturesAdded   atomic.Int64
	FixturesUpdated atomic.Int64
	RowsSkipped     atomic.Int64
	RowErrors       atomic.Int64
}

func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// Summary is an immutable snapshot of a finished (or in-flight) run.
type Summary struct {
	FilesProcessed  int64         `json:"files_processed"`
	FilesSkipped    int64         `json:"files_skipped"`
	FilesFailed     int64         `json:"files_failed"`
	ClubsAdded      int64         `json:"clubs_added"`
	ClubsUpdated    int64         `json:"clubs_updated"`
	FixturesAdded   int64         `json:"fixtures_added"`
	FixturesUpdated int64         `json:"fixtures_updated"`
	RowsSkipped     int64         `json:"rows_skipped"`
	RowErrors       int64         `json:"row_errors"`
	Elapsed         time.Duration `json:"elapsed"`
}

func (s *Stats) Summary() Summary {
	return Summary{
		FilesProcessed:  s.FilesProcessed.Load(),
		FilesSkipped:    s.FilesSkipped.Load(),
		FilesFailed:     s.FilesFailed.Load(),
		ClubsAdded:      s.ClubsAdded.Load(),
		ClubsUpdated:    s.ClubsUpdated.Load(),
		FixturesAdded:   s.FixturesAdded.Load(),
		FixturesUpdated: s.FixturesUpdated.Load(),
		RowsSkipped:     s.RowsSkipped.Load(),
		RowErrors:       s.RowErrors.Load(),
		Elapsed:         time.Since(s.start),
	}
}
