// Package ingest turns raw football data files into relational rows:
// parse, resolve team names, upsert by natural key, audit.
package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	stderrors "errors"

	"github.com/panjf2000/ants/v2"

	"github.com/KevinKasozi/MatchWise/internal/domain/audit"
	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
	"github.com/KevinKasozi/MatchWise/internal/ingest/mapper"
	"github.com/KevinKasozi/MatchWise/internal/ingest/parser"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

const (
	defaultWorkers = 4
	maxWorkers     = 16

	maxPlausibleScore = 20
)

// Options controls one ingestion run.
type Options struct {
	// Force reprocesses files whose content hash is unchanged.
	Force bool
	// League restricts the run to one repository directory.
	League string
	// Parallel fans files out across Workers goroutines.
	Parallel bool
	Workers  int
	// DryRun parses and resolves but writes nothing.
	DryRun bool
}

// RunnerParams carries everything a Runner needs.
type RunnerParams struct {
	DataPath  string
	StatePath string
	Mapper    *mapper.Mapper

	Clubs        club.Repository
	Teams        team.Repository
	Competitions competition.Repository
	Seasons      competition.SeasonRepository
	Fixtures     fixture.Repository
	Audits       audit.Repository

	Logger *logging.Logger
}

// Runner executes ingestion runs. One file is the unit of work: workers own
// disjoint files, so the database natural-key constraint is the only shared
// mutation discipline needed.
type Runner struct {
	dataPath  string
	statePath string
	resolver  *mapper.Mapper

	clubs        club.Repository
	teams        team.Repository
	competitions competition.Repository
	seasons      competition.SeasonRepository
	fixtures     fixture.Repository
	audits       audit.Repository

	logger *logging.Logger

	mu        sync.Mutex
	teamIDs   map[string]int64
	seasonIDs map[string]int64
}

func NewRunner(p RunnerParams) *Runner {
	if p.Logger == nil {
		p.Logger = logging.Default()
	}
	if p.Mapper == nil {
		p.Mapper = mapper.Empty()
	}
	return &Runner{
		dataPath:     p.DataPath,
		statePath:    p.StatePath,
		resolver:     p.Mapper,
		clubs:        p.Clubs,
		teams:        p.Teams,
		competitions: p.Competitions,
		seasons:      p.Seasons,
		fixtures:     p.Fixtures,
		audits:       p.Audits,
		logger:       p.Logger,
		teamIDs:      make(map[string]int64),
		seasonIDs:    make(map[string]int64),
	}
}

type fileKind int

const (
	kindClubTxt fileKind = iota
	kindClubJSON
	kindFixtureTxt
)

type fileTask struct {
	repoName string
	repoPath string
	path     string
	kind     fileKind
}

// Run processes every data repository under the data root. Row and file
// errors are absorbed into the audit trail; only an unusable data root
// aborts the run.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	info, err := os.Stat(r.dataPath)
	if err != nil || !info.IsDir() {
		return Summary{}, fmt.Errorf("%w: data root %s is not a readable directory", ErrConnectionFailure, r.dataPath)
	}

	state, err := LoadState(r.statePath)
	if err != nil {
		return Summary{}, err
	}

	tasks, err := r.collectTasks(opts.League)
	if err != nil {
		return Summary{}, err
	}

	stats := NewStats()
	workers := normalizeWorkerCount(opts)
	r.logger.InfoContext(ctx, "ingestion run starting",
		"data_path", r.dataPath,
		"files", len(tasks),
		"workers", workers,
		"force", opts.Force,
		"dry_run", opts.DryRun,
	)

	if workers <= 1 {
		for _, task := range tasks {
			r.processFile(ctx, task, opts, state, stats)
		}
	} else {
		pool, err := ants.NewPool(workers)
		if err != nil {
			return Summary{}, fmt.Errorf("create worker pool: %w", err)
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for _, task := range tasks {
			task := task
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				r.processFile(ctx, task, opts, state, stats)
			}); err != nil {
				wg.Done()
				return Summary{}, fmt.Errorf("submit file to worker pool: %w", err)
			}
		}
		wg.Wait()
	}

	if !opts.DryRun {
		if err := state.Save(); err != nil {
			return stats.Summary(), err
		}
	}

	summary := stats.Summary()
	r.logger.InfoContext(ctx, "ingestion run complete",
		"files_processed", summary.FilesProcessed,
		"files_skipped", summary.FilesSkipped,
		"files_failed", summary.FilesFailed,
		"clubs_added", summary.ClubsAdded,
		"clubs_updated", summary.ClubsUpdated,
		"fixtures_added", summary.FixturesAdded,
		"fixtures_updated", summary.FixturesUpdated,
		"rows_skipped", summary.RowsSkipped,
		"row_errors", summary.RowErrors,
		"elapsed", summary.Elapsed.String(),
	)
	for _, item := range r.resolver.ReviewQueue() {
		r.logger.WarnContext(ctx, "team name needs manual review",
			"raw", item.Raw,
			"candidates", item.Candidates,
		)
	}
	return summary, nil
}

func (r *Runner) collectTasks(league string) ([]fileTask, error) {
	entries, err := os.ReadDir(r.dataPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read data root: %v", ErrConnectionFailure, err)
	}

	var tasks []fileTask
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		repoName := entry.Name()
		if league != "" && repoName != league {
			continue
		}
		repoPath := filepath.Join(r.dataPath, repoName)

		walkErr := filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			kind, ok := classifyFile(repoPath, path)
			if !ok {
				return nil
			}
			tasks = append(tasks, fileTask{
				repoName: repoName,
				repoPath: repoPath,
				path:     path,
				kind:     kind,
			})
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk repo %s: %w", repoName, walkErr)
		}
	}
	return tasks, nil
}

// classifyFile decides whether a file is ingestible and as what. Squad
// files, READMEs and unknown extensions are ignored.
func classifyFile(repoPath, path string) (fileKind, bool) {
	name := strings.ToLower(filepath.Base(path))
	rel, err := filepath.Rel(repoPath, path)
	if err != nil {
		rel = path
	}

	inSquadsDir := pathHasPart(rel, "squads")
	inClubsDir := pathHasPart(rel, "clubs")
	isClubFile := strings.Contains(name, "club")

	switch {
	case isClubFile && strings.HasSuffix(name, ".txt"):
		return kindClubTxt, true
	case isClubFile && strings.HasSuffix(name, ".json"):
		return kindClubJSON, true
	case strings.HasSuffix(name, ".txt") && !inSquadsDir && !inClubsDir && !strings.HasPrefix(name, "readme"):
		return kindFixtureTxt, true
	default:
		return 0, false
	}
}

func (r *Runner) processFile(ctx context.Context, task fileTask, opts Options, state *State, stats *Stats) {
	rel, err := filepath.Rel(task.repoPath, task.path)
	if err != nil {
		rel = filepath.Base(task.path)
	}
	stateKey := task.repoName + "/" + filepath.ToSlash(rel)

	hash, err := fileSHA1(task.path)
	if err != nil {
		r.logger.ErrorContext(ctx, "cannot hash file", "file", stateKey, "error", err)
		stats.FilesFailed.Add(1)
		return
	}
	if !opts.Force {
		if known, ok := state.Get(stateKey); ok && known == hash {
			stats.FilesSkipped.Add(1)
			return
		}
	}

	outcome := fileOutcome{}
	switch task.kind {
	case kindClubTxt, kindClubJSON:
		outcome = r.processClubFile(ctx, task, opts)
	case kindFixtureTxt:
		outcome = r.processFixtureFile(ctx, task, opts)
	}

	stats.FilesProcessed.Add(1)
	stats.ClubsAdded.Add(int64(outcome.clubsAdded))
	stats.ClubsUpdated.Add(int64(outcome.clubsUpdated))
	stats.FixturesAdded.Add(int64(outcome.added))
	stats.FixturesUpdated.Add(int64(outcome.updated))
	stats.RowsSkipped.Add(int64(outcome.skipped))
	stats.RowErrors.Add(int64(outcome.rowErrors))
	if outcome.status == audit.StatusFailed {
		stats.FilesFailed.Add(1)
	}

	if opts.DryRun {
		return
	}

	rec := audit.Record{
		Repo:           task.repoName,
		FilePath:       stateKey,
		IngestedAt:     time.Now().UTC(),
		RecordsAdded:   outcome.clubsAdded + outcome.added,
		RecordsUpdated: outcome.clubsUpdated + outcome.updated,
		RecordsSkipped: outcome.skipped + outcome.rowErrors,
		Status:         outcome.status,
		Hash:           hash,
	}
	if _, err := r.audits.Append(ctx, rec); err != nil {
		r.logger.ErrorContext(ctx, "cannot write audit record", "file", stateKey, "error", err)
	}
	if outcome.status != audit.StatusFailed {
		state.Set(stateKey, hash)
	}
}

type fileOutcome struct {
	clubsAdded   int
	clubsUpdated int
	added        int
	updated      int
	skipped      int
	rowErrors    int
	status       string
}

func (r *Runner) processClubFile(ctx context.Context, task fileTask, opts Options) fileOutcome {
	var (
		clubs    []parser.ClubRecord
		lineErrs []parser.LineError
		err      error
	)
	switch task.kind {
	case kindClubJSON:
		clubs, err = parser.ParseClubJSON(task.path)
	default:
		country := inferCountry(task.path)
		clubs, lineErrs, err = parser.ParseClubFile(task.path, country)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "club file unusable", "file", task.path, "error", err)
		return fileOutcome{rowErrors: len(lineErrs), status: audit.StatusFailed}
	}

	out := fileOutcome{rowErrors: len(lineErrs)}
	for _, rec := range clubs {
		created, changed, err := r.upsertClub(ctx, rec, opts.DryRun)
		if err != nil {
			r.logger.WarnContext(ctx, "club upsert failed", "club", rec.Name, "error", err)
			out.rowErrors++
			continue
		}
		if created {
			out.clubsAdded++
		} else if changed {
			out.clubsUpdated++
		}
	}

	out.status = audit.StatusOK
	if out.rowErrors > 0 {
		out.status = audit.StatusPartial
	}
	return out
}

func (r *Runner) upsertClub(ctx context.Context, rec parser.ClubRecord, dryRun bool) (created, changed bool, err error) {
	existing, found, err := r.clubs.GetByName(ctx, rec.Name)
	if err != nil {
		return false, false, err
	}

	if !found {
		item := club.Club{
			Name:             rec.Name,
			FoundedYear:      rec.FoundedYear,
			StadiumName:      rec.StadiumName,
			City:             rec.City,
			Country:          rec.Country,
			AlternativeNames: rec.AlternativeNames,
		}
		if err := item.Validate(); err != nil {
			return false, false, err
		}
		if dryRun {
			return true, false, nil
		}
		if _, err := r.clubs.Create(ctx, item); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	// Enrichment only fills or corrects fields the source actually carries.
	if rec.FoundedYear != nil && (existing.FoundedYear == nil || *existing.FoundedYear != *rec.FoundedYear) {
		existing.FoundedYear = rec.FoundedYear
		changed = true
	}
	if rec.StadiumName != "" && existing.StadiumName != rec.StadiumName {
		existing.StadiumName = rec.StadiumName
		changed = true
	}
	if rec.City != "" && existing.City != rec.City {
		existing.City = rec.City
		changed = true
	}
	if rec.Country != "" && existing.Country != rec.Country {
		existing.Country = rec.Country
		changed = true
	}
	if len(rec.AlternativeNames) > 0 && !sameStrings(existing.AlternativeNames, rec.AlternativeNames) {
		existing.AlternativeNames = mergeStrings(existing.AlternativeNames, rec.AlternativeNames)
		changed = true
	}

	if !changed || dryRun {
		return false, changed, nil
	}
	if err := r.clubs.Update(ctx, existing); err != nil {
		return false, false, err
	}
	return false, true, nil
}

func (r *Runner) processFixtureFile(ctx context.Context, task fileTask, opts Options) fileOutcome {
	seasonYear := seasonYearFromPath(task.path)
	if seasonYear == 0 {
		r.logger.WarnContext(ctx, "cannot classify season for file", "file", task.path)
		return fileOutcome{status: audit.StatusFailed}
	}

	records, lineErrs, err := parser.ParseFixtureFile(task.path, seasonYear)
	if err != nil {
		r.logger.WarnContext(ctx, "fixture file unusable", "file", task.path, "error", err)
		return fileOutcome{rowErrors: len(lineErrs), status: audit.StatusFailed}
	}

	seasonID, err := r.getOrCreateSeason(ctx, task.repoName, task.path, seasonYear, opts.DryRun)
	if err != nil {
		r.logger.ErrorContext(ctx, "cannot resolve season", "file", task.path, "error", err)
		return fileOutcome{status: audit.StatusFailed}
	}

	out := fileOutcome{rowErrors: len(lineErrs)}
	country := inferCountry(task.path)
	for _, rec := range records {
		switch r.ingestFixtureRecord(ctx, rec, seasonID, country, opts.DryRun) {
		case rowAdded:
			out.added++
		case rowUpdated:
			out.updated++
		case rowSkipped:
			out.skipped++
		case rowFailed:
			out.rowErrors++
		}
	}

	out.status = audit.StatusOK
	if out.rowErrors > 0 || out.skipped > 0 {
		out.status = audit.StatusPartial
	}
	return out
}

type rowResult int

const (
	rowAdded rowResult = iota
	rowUpdated
	rowSkipped
	rowFailed
)

func (r *Runner) ingestFixtureRecord(ctx context.Context, rec parser.Record, seasonID int64, country string, dryRun bool) rowResult {
	if rec.MatchDate == "" {
		r.logger.Debug("fixture row without date skipped", "home", rec.HomeTeam, "away", rec.AwayTeam)
		return rowSkipped
	}
	matchDate, err := time.Parse(parser.DateLayout, rec.MatchDate)
	if err != nil {
		return rowSkipped
	}
	if rec.IsCompleted && !plausibleScore(rec.HomeScore, rec.AwayScore) {
		r.logger.Debug("fixture row with implausible score skipped",
			"home", rec.HomeTeam, "away", rec.AwayTeam, "date", rec.MatchDate)
		return rowSkipped
	}

	homeID, err := r.resolveTeam(ctx, rec.HomeTeam, country, dryRun)
	if err != nil {
		if stderrors.Is(err, mapper.ErrAmbiguousName) {
			return rowSkipped
		}
		r.logger.WarnContext(ctx, "cannot resolve home team", "name", rec.HomeTeam, "error", err)
		return rowFailed
	}
	awayID, err := r.resolveTeam(ctx, rec.AwayTeam, country, dryRun)
	if err != nil {
		if stderrors.Is(err, mapper.ErrAmbiguousName) {
			return rowSkipped
		}
		r.logger.WarnContext(ctx, "cannot resolve away team", "name", rec.AwayTeam, "error", err)
		return rowFailed
	}
	if homeID == awayID {
		return rowSkipped
	}

	item := fixture.Fixture{
		SeasonID:    seasonID,
		MatchDate:   matchDate,
		MatchTime:   rec.MatchTime,
		HomeTeamID:  homeID,
		AwayTeamID:  awayID,
		Stage:       rec.Stage,
		IsCompleted: rec.IsCompleted,
	}
	if err := item.Validate(); err != nil {
		r.logger.Debug("fixture row invalid", "error", err)
		return rowSkipped
	}

	if dryRun {
		_, found, err := r.fixtures.GetByKey(ctx, item.Key())
		if err != nil {
			return rowFailed
		}
		if found {
			return rowUpdated
		}
		return rowAdded
	}

	stored, created, err := r.fixtures.Upsert(ctx, item)
	if stderrors.Is(err, fixture.ErrDuplicateKey) {
		// A concurrent insert won the natural key race; retrying lands on
		// the update path.
		stored, created, err = r.fixtures.Upsert(ctx, item)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "fixture upsert failed",
			"home", rec.HomeTeam, "away", rec.AwayTeam, "date", rec.MatchDate, "error", err)
		return rowFailed
	}

	if rec.IsCompleted && rec.HomeScore != nil && rec.AwayScore != nil {
		result := fixture.Result{
			FixtureID: stored.ID,
			HomeScore: *rec.HomeScore,
			AwayScore: *rec.AwayScore,
		}
		if err := r.fixtures.SetResult(ctx, result); err != nil {
			r.logger.WarnContext(ctx, "result upsert failed", "fixture_id", stored.ID, "error", err)
			return rowFailed
		}
	}

	if created {
		return rowAdded
	}
	return rowUpdated
}

// resolveTeam maps a raw name to a team row, creating club and team rows when
// the mapper reports a brand new canonical name. Resolutions are cached per
// run so workers do not race on get-or-create for the same club.
func (r *Runner) resolveTeam(ctx context.Context, rawName, country string, dryRun bool) (int64, error) {
	canonical, _, err := r.resolver.Resolve(rawName)
	if err != nil {
		if stderrors.Is(err, mapper.ErrAmbiguousName) {
			r.logger.Warn("ambiguous team name queued for review", "name", rawName)
		}
		return 0, err
	}

	r.mu.Lock()
	if id, ok := r.teamIDs[canonical]; ok {
		r.mu.Unlock()
		return id, nil
	}
	defer r.mu.Unlock()

	clubRow, found, err := r.clubs.GetByName(ctx, canonical)
	if err != nil {
		return 0, err
	}
	if !found {
		if dryRun {
			// Pseudo-ID so dry runs still distinguish the would-be teams.
			id := int64(-(len(r.teamIDs) + 1))
			r.teamIDs[canonical] = id
			return id, nil
		}
		clubRow, err = r.clubs.Create(ctx, club.Club{Name: canonical, Country: country})
		if err != nil {
			return 0, err
		}
	}

	teamRow, found, err := r.teams.GetByClub(ctx, clubRow.ID, team.TypeClub)
	if err != nil {
		return 0, err
	}
	if !found {
		if dryRun {
			id := int64(-(len(r.teamIDs) + 1))
			r.teamIDs[canonical] = id
			return id, nil
		}
		clubID := clubRow.ID
		teamRow, err = r.teams.Create(ctx, team.Team{ClubID: &clubID, Type: team.TypeClub})
		if err != nil {
			return 0, err
		}
	}

	r.teamIDs[canonical] = teamRow.ID
	return teamRow.ID, nil
}

func (r *Runner) getOrCreateSeason(ctx context.Context, repoName, path string, seasonYear int, dryRun bool) (int64, error) {
	cacheKey := repoName + "/" + strconv.Itoa(seasonYear)

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.seasonIDs[cacheKey]; ok {
		return id, nil
	}

	comp, found, err := r.competitions.GetByName(ctx, repoName)
	if err != nil {
		return 0, err
	}
	if !found {
		if dryRun {
			id := int64(-(len(r.seasonIDs) + 1))
			r.seasonIDs[cacheKey] = id
			return id, nil
		}
		comp, err = r.competitions.Create(ctx, competition.Competition{
			Name:    repoName,
			Country: inferCountry(path),
			Type:    competition.ClassifyType(repoName),
		})
		if err != nil {
			return 0, err
		}
	}

	seasonName := fmt.Sprintf("%d-%d", seasonYear, seasonYear+1)
	season, found, err := r.seasons.GetByCompetitionAndName(ctx, comp.ID, seasonName)
	if err != nil {
		return 0, err
	}
	if !found {
		if dryRun {
			id := int64(-(len(r.seasonIDs) + 1))
			r.seasonIDs[cacheKey] = id
			return id, nil
		}
		season, err = r.seasons.Create(ctx, competition.Season{
			CompetitionID: comp.ID,
			YearStart:     seasonYear,
			YearEnd:       seasonYear + 1,
			Name:          seasonName,
		})
		if err != nil {
			return 0, err
		}
	}

	r.seasonIDs[cacheKey] = season.ID
	return season.ID, nil
}

// ReviewQueue exposes ambiguous names collected during the run.
func (r *Runner) ReviewQueue() []mapper.ReviewItem {
	return r.resolver.ReviewQueue()
}

func plausibleScore(home, away *int) bool {
	if home == nil || away == nil {
		return false
	}
	return *home >= 0 && *home <= maxPlausibleScore && *away >= 0 && *away <= maxPlausibleScore
}

func normalizeWorkerCount(opts Options) int {
	if !opts.Parallel {
		return 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

func fileSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var seasonDirPattern = regexp.MustCompile(`^(\d{4})-\d{2}$`)

// seasonYearFromPath finds a season directory like "2023-24" in the path and
// returns its start year, or zero when the path carries none.
func seasonYearFromPath(path string) int {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if m := seasonDirPattern.FindStringSubmatch(part); m != nil {
			year, _ := strconv.Atoi(m[1])
			return year
		}
	}
	return 0
}

var knownCountries = map[string]string{
	"england": "England", "eng-england": "England",
	"france": "France", "fr-france": "France",
	"germany": "Germany", "de-deutschland": "Germany",
	"italy": "Italy", "it-italy": "Italy",
	"spain": "Spain", "es-espana": "Spain",
	"portugal": "Portugal", "netherlands": "Netherlands",
	"belgium": "Belgium", "scotland": "Scotland",
	"austria": "Austria", "switzerland": "Switzerland",
	"champions-league": "Europe", "europa-league": "Europe",
}

func inferCountry(path string) string {
	for _, part := range strings.Split(filepath.ToSlash(strings.ToLower(path)), "/") {
		if country, ok := knownCountries[part]; ok {
			return country
		}
	}
	return ""
}

func pathHasPart(rel, part string) bool {
	for _, p := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.Contains(strings.ToLower(p), part) {
			return true
		}
	}
	return false
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mergeStrings(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, s := range existing {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range incoming {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
