package parser

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Record is one parsed fixture line. Dates are already normalized to
// DateLayout; MatchDate stays empty when neither the line nor a preceding
// [date] header carried one.
type Record struct {
	MatchDate   string
	MatchTime   string
	HomeTeam    string
	AwayTeam    string
	Stage       string
	IsCompleted bool
	HomeScore   *int
	AwayScore   *int
}

var (
	dateHeaderPattern = regexp.MustCompile(`^\[(.+)\]$`)
	timeTokenPattern  = regexp.MustCompile(`^\d{1,2}[.:]\d{2}$`)

	// HOME 2-1 (1-0) AWAY: score between the teams, optional half-time note.
	midScorePattern = regexp.MustCompile(`^(.+?)\s+(\d+)-(\d+)(?:\s*\([^)]*\))?\s+(.+)$`)

	// HOME AWAY 2-1: score trailing the line.
	trailScorePattern = regexp.MustCompile(`^(.+?)\s+(\d+)-(\d+)$`)

	separatorPattern = regexp.MustCompile(`^(.+?)\s+(?:vs\.?|v\.?|-)\s+(.+)$`)
)

// teamSuffixTokens lets a two-team blob without any separator be split after
// a token that conventionally ends a club name.
var teamSuffixTokens = map[string]struct{}{
	"fc": {}, "afc": {}, "cf": {}, "sc": {}, "ac": {}, "united": {}, "utd": {}, "city": {},
}

// ParseFixtureFile reads one fixture text file. Blank lines, comments and
// header decoration are skipped; a malformed candidate line is collected as a
// LineError and parsing continues. The returned error is non-nil only when
// the file cannot be opened or when not a single valid record was found.
func ParseFixtureFile(path string, seasonYear int) ([]Record, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer f.Close()

	var (
		records     []Record
		lineErrs    []LineError
		currentDate string
		stage       string
		lineNo      int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "=") {
			continue
		}

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "matchday") || strings.HasPrefix(lower, "round") {
			stage = line
			continue
		}

		if m := dateHeaderPattern.FindStringSubmatch(line); m != nil {
			normalized, err := NormalizeDate(m[1], seasonYear)
			if err != nil {
				currentDate = ""
				lineErrs = append(lineErrs, LineError{Line: lineNo, Text: line, Err: err})
				continue
			}
			currentDate = normalized
			continue
		}

		rec, err := parseMatchLine(line, seasonYear)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		if rec.MatchDate == "" {
			rec.MatchDate = currentDate
		}
		rec.Stage = stage
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, lineErrs, fmt.Errorf("read fixture file: %w", err)
	}

	if len(records) == 0 {
		return nil, lineErrs, fmt.Errorf("%w: %s yielded no valid fixture lines", ErrUnparseableFile, path)
	}
	return records, lineErrs, nil
}

func parseMatchLine(line string, seasonYear int) (Record, error) {
	var rec Record
	rest := line

	// Inline date token, as in "2024-05-10 15:00 Arsenal FC Chelsea FC".
	if token, tail, ok := strings.Cut(rest, " "); ok {
		if isoDatePattern.MatchString(token) || dottedDatePattern.MatchString(token) {
			normalized, err := NormalizeDate(token, seasonYear)
			if err != nil {
				return Record{}, err
			}
			rec.MatchDate = normalized
			rest = strings.TrimSpace(tail)
		}
	}

	if token, tail, ok := strings.Cut(rest, " "); ok && timeTokenPattern.MatchString(token) {
		rec.MatchTime = strings.ReplaceAll(token, ".", ":")
		rest = strings.TrimSpace(tail)
	}

	if m := midScorePattern.FindStringSubmatch(rest); m != nil {
		home, err := parseScore(m[2])
		if err != nil {
			return Record{}, err
		}
		away, err := parseScore(m[3])
		if err != nil {
			return Record{}, err
		}
		rec.HomeTeam = strings.TrimSpace(m[1])
		rec.AwayTeam = strings.TrimSpace(m[4])
		rec.HomeScore = &home
		rec.AwayScore = &away
		rec.IsCompleted = true
		return finishRecord(rec)
	}

	if m := trailScorePattern.FindStringSubmatch(rest); m != nil {
		homeTeam, awayTeam, err := splitTeams(strings.TrimSpace(m[1]))
		if err != nil {
			return Record{}, err
		}
		home, err := parseScore(m[2])
		if err != nil {
			return Record{}, err
		}
		away, err := parseScore(m[3])
		if err != nil {
			return Record{}, err
		}
		rec.HomeTeam = homeTeam
		rec.AwayTeam = awayTeam
		rec.HomeScore = &home
		rec.AwayScore = &away
		rec.IsCompleted = true
		return finishRecord(rec)
	}

	homeTeam, awayTeam, err := splitTeams(rest)
	if err != nil {
		return Record{}, err
	}
	rec.HomeTeam = homeTeam
	rec.AwayTeam = awayTeam
	return finishRecord(rec)
}

func finishRecord(rec Record) (Record, error) {
	if rec.HomeTeam == "" || rec.AwayTeam == "" {
		return Record{}, fmt.Errorf("%w: missing team name", ErrUnparseableLine)
	}
	return rec, nil
}

// splitTeams divides a string holding exactly two team names: first on an
// explicit v/vs/- separator, then on a run of two or more spaces, then after
// a known club-suffix token.
func splitTeams(s string) (string, string, error) {
	if m := separatorPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), nil
	}

	if idx := strings.Index(s, "  "); idx > 0 {
		return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx:]), nil
	}

	tokens := strings.Fields(s)
	for i := 1; i < len(tokens)-1; i++ {
		if _, ok := teamSuffixTokens[strings.ToLower(tokens[i])]; ok {
			return strings.Join(tokens[:i+1], " "), strings.Join(tokens[i+1:], " "), nil
		}
	}

	return "", "", fmt.Errorf("%w: cannot split %q into two teams", ErrUnparseableLine, s)
}

func parseScore(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad score %q", ErrUnparseableLine, s)
	}
	return n, nil
}
