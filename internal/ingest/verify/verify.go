// Package verify cross-checks team-to-competition assignments in storage
// against the raw data files they were ingested from.
package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
	"github.com/KevinKasozi/MatchWise/internal/ingest/parser"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

const (
	IssueWrongCountry = "wrong_country"
	IssueMissingTeam  = "missing_team"
)

// Issue flags one club whose competition assignment disagrees with the raw
// data.
type Issue struct {
	Team            string `json:"team"`
	AssignedCountry string `json:"assigned_country"`
	ExpectedCountry string `json:"expected_country,omitempty"`
	Kind            string `json:"kind"`
}

// Report is the read-only result of a verification pass.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Issues      []Issue   `json:"issues"`
}

// Save writes the report as JSON for operator review.
func (r Report) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	raw, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Verifier compares stored fixture data against the newest season of each
// raw league repository. It never mutates storage.
type Verifier struct {
	dataPath string

	clubs        club.Repository
	teams        team.Repository
	competitions competition.Repository
	seasons      competition.SeasonRepository
	fixtures     fixture.Repository

	logger *logging.Logger
}

type VerifierParams struct {
	DataPath     string
	Clubs        club.Repository
	Teams        team.Repository
	Competitions competition.Repository
	Seasons      competition.SeasonRepository
	Fixtures     fixture.Repository
	Logger       *logging.Logger
}

func NewVerifier(p VerifierParams) *Verifier {
	if p.Logger == nil {
		p.Logger = logging.Default()
	}
	return &Verifier{
		dataPath:     p.DataPath,
		clubs:        p.Clubs,
		teams:        p.Teams,
		competitions: p.Competitions,
		seasons:      p.Seasons,
		fixtures:     p.Fixtures,
		logger:       p.Logger,
	}
}

var repoCountries = map[string]string{
	"eng-england":      "England",
	"es-espana":        "Spain",
	"de-deutschland":   "Germany",
	"it-italy":         "Italy",
	"fr-france":        "France",
	"champions-league": "Europe",
	"europa-league":    "Europe",
}

// Run rebuilds team-per-country sets from the newest season directory of
// each repo and reports clubs whose stored competition country disagrees.
func (v *Verifier) Run(ctx context.Context) (Report, error) {
	countryTeams, err := v.loadCountryTeams()
	if err != nil {
		return Report{}, err
	}

	assignments, clubsByName, err := v.loadStoredAssignments(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{GeneratedAt: time.Now().UTC()}
	for clubName, countryCounts := range assignments {
		assigned := mostCommon(countryCounts)
		clubRow := clubsByName[clubName]

		foundAssigned := false
		var foundElsewhere string
		for country, teams := range countryTeams {
			if !setMentionsClub(teams, clubName, clubRow) {
				continue
			}
			if country == assigned {
				foundAssigned = true
			} else {
				foundElsewhere = country
			}
		}

		switch {
		case foundAssigned:
		case foundElsewhere != "":
			report.Issues = append(report.Issues, Issue{
				Team:            clubName,
				AssignedCountry: assigned,
				ExpectedCountry: foundElsewhere,
				Kind:            IssueWrongCountry,
			})
		default:
			report.Issues = append(report.Issues, Issue{
				Team:            clubName,
				AssignedCountry: assigned,
				Kind:            IssueMissingTeam,
			})
		}
	}

	sort.Slice(report.Issues, func(i, j int) bool { return report.Issues[i].Team < report.Issues[j].Team })
	v.logger.InfoContext(ctx, "verification complete", "issues", len(report.Issues))
	return report, nil
}

// loadCountryTeams reads the newest season directory of every known repo
// and collects the team names appearing in its fixture files.
func (v *Verifier) loadCountryTeams() (map[string]map[string]struct{}, error) {
	entries, err := os.ReadDir(v.dataPath)
	if err != nil {
		return nil, fmt.Errorf("read data root: %w", err)
	}

	out := make(map[string]map[string]struct{})
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		country, ok := repoCountries[entry.Name()]
		if !ok {
			continue
		}
		if _, exists := out[country]; !exists {
			out[country] = make(map[string]struct{})
		}

		repoPath := filepath.Join(v.dataPath, entry.Name())
		seasonDir := newestSeasonDir(repoPath)
		if seasonDir == "" {
			continue
		}

		seasonYear := 0
		if len(seasonDir) >= 4 {
			fmt.Sscanf(seasonDir[:4], "%d", &seasonYear)
		}

		files, err := os.ReadDir(filepath.Join(repoPath, seasonDir))
		if err != nil {
			continue
		}
		for _, file := range files {
			name := file.Name()
			if file.IsDir() || !strings.HasSuffix(name, ".txt") || strings.HasPrefix(strings.ToLower(name), "readme") {
				continue
			}
			records, _, err := parser.ParseFixtureFile(filepath.Join(repoPath, seasonDir, name), seasonYear)
			if err != nil {
				continue
			}
			for _, rec := range records {
				out[country][rec.HomeTeam] = struct{}{}
				out[country][rec.AwayTeam] = struct{}{}
			}
		}
	}
	return out, nil
}

// loadStoredAssignments maps each club name to how often it appears under
// each competition country in stored fixtures, along with the club rows so
// alias matching can consult alternative names later.
func (v *Verifier) loadStoredAssignments(ctx context.Context) (map[string]map[string]int, map[string]club.Club, error) {
	comps, err := v.competitions.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list competitions: %w", err)
	}

	clubNames := make(map[int64]string)
	clubsByName := make(map[string]club.Club)
	assignments := make(map[string]map[string]int)

	record := func(teamID int64, country string) error {
		name, ok := clubNames[teamID]
		if !ok {
			teamRow, found, err := v.teams.GetByID(ctx, teamID)
			if err != nil || !found || teamRow.ClubID == nil {
				return err
			}
			clubRow, found, err := v.clubs.GetByID(ctx, *teamRow.ClubID)
			if err != nil || !found {
				return err
			}
			name = clubRow.Name
			clubNames[teamID] = name
			clubsByName[name] = clubRow
		}
		if name == "" {
			return nil
		}
		if _, exists := assignments[name]; !exists {
			assignments[name] = make(map[string]int)
		}
		assignments[name][country]++
		return nil
	}

	for _, comp := range comps {
		if comp.Country == "" {
			continue
		}
		seasons, err := v.seasons.ListByCompetition(ctx, comp.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("list seasons competition=%d: %w", comp.ID, err)
		}
		for _, season := range seasons {
			items, err := v.fixtures.ListBySeason(ctx, season.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("list fixtures season=%d: %w", season.ID, err)
			}
			for _, item := range items {
				if err := record(item.HomeTeamID, comp.Country); err != nil {
					return nil, nil, err
				}
				if err := record(item.AwayTeamID, comp.Country); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return assignments, clubsByName, nil
}

// setMentionsClub reports whether a raw-file team set contains the club,
// either by canonical name or by one of its known alternative names. Files
// often use short forms of the name the mapper canonicalized.
func setMentionsClub(teams map[string]struct{}, name string, c club.Club) bool {
	if _, ok := teams[name]; ok {
		return true
	}
	for raw := range teams {
		if c.HasAlias(raw) {
			return true
		}
	}
	return false
}

func newestSeasonDir(repoPath string) string {
	entries, err := os.ReadDir(repoPath)
	if err != nil {
		return ""
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "20") {
			dirs = append(dirs, entry.Name())
		}
	}
	if len(dirs) == 0 {
		return ""
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	return dirs[0]
}

func mostCommon(counts map[string]int) string {
	best, bestN := "", -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}
