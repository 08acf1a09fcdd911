package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
	"github.com/KevinKasozi/MatchWise/internal/ingest"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
	"github.com/KevinKasozi/MatchWise/internal/usecase"
)

const testInternalToken = "test-internal-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _ := newTestRouterWithAudits(t)
	return router
}

func newTestRouterWithAudits(t *testing.T) (http.Handler, *memory.AuditRepository) {
	t.Helper()

	clubs := memory.NewClubRepository(memory.SeedClubs())
	teams := memory.NewTeamRepository()
	competitions := memory.NewCompetitionRepository()
	seasons := memory.NewSeasonRepository()
	fixtures := memory.NewFixtureRepository()
	audits := memory.NewAuditRepository()

	runner := ingest.NewRunner(ingest.RunnerParams{
		DataPath:     t.TempDir(),
		StatePath:    filepath.Join(t.TempDir(), "state.json"),
		Clubs:        clubs,
		Teams:        teams,
		Competitions: competitions,
		Seasons:      seasons,
		Fixtures:     fixtures,
		Audits:       audits,
		Logger:       logging.NewNop(),
	})

	handler := NewHandler(
		usecase.NewClubService(clubs, teams),
		usecase.NewTeamService(teams, clubs),
		usecase.NewCompetitionService(competitions, seasons),
		usecase.NewFixtureService(seasons, fixtures),
		usecase.NewAuditService(audits),
		usecase.NewIngestionService(runner),
		logging.NewNop(),
	)

	return NewRouter(handler, logging.NewNop(), false, []string{"*"}, testInternalToken), audits
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListClubsReturnsSeedData(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/clubs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, data)
}

func TestListClubsSearchFiltersByAlias(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/clubs?q=gunners", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Arsenal FC", first["name"])
}

func TestGetClubDetailsUnknownID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/clubs/9999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetClubDetailsBadID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/clubs/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunIngestionRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/run", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/run", strings.NewReader("{}"))
	req.Header.Set("X-Internal-Token", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRunIngestionWithToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/run", strings.NewReader(`{"dryRun":true}`))
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "filesProcessed")
}

func TestRunIngestionRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/ingestion/run", strings.NewReader(`{"bogus":true}`))
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListIngestionAuditEmpty(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ingestion/audit?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetLatestIngestionAuditByFile(t *testing.T) {
	router, audits := newTestRouterWithAudits(t)

	ctx := context.Background()
	for _, status := range []string{"partial", "ok"} {
		_, err := audits.Append(ctx, audit.Record{
			Repo:       "eng-england",
			FilePath:   "eng-england/2023-24/1-premierleague.txt",
			IngestedAt: time.Now().UTC(),
			Status:     status,
			Hash:       "abc123",
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/v1/ingestion/audit/latest?repo=eng-england&file=eng-england%2F2023-24%2F1-premierleague.txt", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "eng-england", data["repo"])
}

func TestGetLatestIngestionAuditValidation(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ingestion/audit/latest?repo=eng-england", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet,
		"/v1/ingestion/audit/latest?repo=eng-england&file=eng-england%2Fmissing.txt", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCompetitionsEmpty(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/competitions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
