package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
	"github.com/KevinKasozi/MatchWise/internal/ingest"
	"github.com/KevinKasozi/MatchWise/internal/usecase"
)

type auditRecordDTO struct {
	ID             int64  `json:"id"`
	Repo           string `json:"repo"`
	FilePath       string `json:"filePath"`
	IngestedAt     string `json:"ingestedAt"`
	RecordsAdded   int    `json:"recordsAdded"`
	RecordsUpdated int    `json:"recordsUpdated"`
	RecordsSkipped int    `json:"recordsSkipped"`
	Status         string `json:"status"`
	Hash           string `json:"hash"`
}

type runIngestionRequest struct {
	Force    bool   `json:"force"`
	League   string `json:"league"`
	Parallel bool   `json:"parallel"`
	Workers  int    `json:"workers" validate:"gte=0,lte=16"`
	DryRun   bool   `json:"dryRun"`
}

type ingestionSummaryDTO struct {
	FilesProcessed  int64  `json:"filesProcessed"`
	FilesSkipped    int64  `json:"filesSkipped"`
	FilesFailed     int64  `json:"filesFailed"`
	ClubsAdded      int64  `json:"clubsAdded"`
	ClubsUpdated    int64  `json:"clubsUpdated"`
	FixturesAdded   int64  `json:"fixturesAdded"`
	FixturesUpdated int64  `json:"fixturesUpdated"`
	RowsSkipped     int64  `json:"rowsSkipped"`
	RowErrors       int64  `json:"rowErrors"`
	Elapsed         string `json:"elapsed"`
}

func (h *Handler) ListIngestionAudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListIngestionAudit")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	records, err := h.auditService.List(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list ingestion audit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]auditRecordDTO, 0, len(records))
	for _, record := range records {
		out = append(out, toAuditRecordDTO(record))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetLatestIngestionAudit returns the most recent audit record for one data
// file, identified by its repo and repo-relative path query parameters.
func (h *Handler) GetLatestIngestionAudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestIngestionAudit")
	defer span.End()

	repo := r.URL.Query().Get("repo")
	filePath := r.URL.Query().Get("file")

	record, err := h.auditService.LatestByFile(ctx, repo, filePath)
	if err != nil {
		h.logger.ErrorContext(ctx, "get latest ingestion audit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toAuditRecordDTO(record))
}

func (h *Handler) RunIngestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestion")
	defer span.End()

	var req runIngestionRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.ingestionService.Run(ctx, ingest.Options{
		Force:    req.Force,
		League:   strings.TrimSpace(req.League),
		Parallel: req.Parallel,
		Workers:  req.Workers,
		DryRun:   req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "ingestion run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestionSummaryDTO{
		FilesProcessed:  summary.FilesProcessed,
		FilesSkipped:    summary.FilesSkipped,
		FilesFailed:     summary.FilesFailed,
		ClubsAdded:      summary.ClubsAdded,
		ClubsUpdated:    summary.ClubsUpdated,
		FixturesAdded:   summary.FixturesAdded,
		FixturesUpdated: summary.FixturesUpdated,
		RowsSkipped:     summary.RowsSkipped,
		RowErrors:       summary.RowErrors,
		Elapsed:         summary.Elapsed.String(),
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func toAuditRecordDTO(record audit.Record) auditRecordDTO {
	return auditRecordDTO{
		ID:             record.ID,
		Repo:           record.Repo,
		FilePath:       record.FilePath,
		IngestedAt:     record.IngestedAt.Format(time.RFC3339),
		RecordsAdded:   record.RecordsAdded,
		RecordsUpdated: record.RecordsUpdated,
		RecordsSkipped: record.RecordsSkipped,
		Status:         record.Status,
		Hash:           record.Hash,
	}
}
