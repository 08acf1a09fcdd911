package parser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// ClubRecord is one club parsed from a source file.
type ClubRecord struct {
	Name             string
	FoundedYear      *int
	StadiumName      string
	City             string
	Country          string
	AlternativeNames []string
}

// ParseClubFile reads an openfootball club text file. Each club is a main
// line "Name, 1886, @ Stadium, City (Region)" optionally followed by
// "|"-prefixed alias lines.
func ParseClubFile(path, country string) ([]ClubRecord, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open club file: %w", err)
	}
	defer f.Close()

	var (
		clubs    []ClubRecord
		lineErrs []LineError
		current  *ClubRecord
		lineNo   int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "=") {
			continue
		}

		if strings.HasPrefix(line, "|") {
			if current == nil {
				lineErrs = append(lineErrs, LineError{
					Line: lineNo,
					Text: line,
					Err:  fmt.Errorf("%w: alias line before any club line", ErrUnparseableLine),
				})
				continue
			}
			current.AlternativeNames = append(current.AlternativeNames, parseAliasLine(line)...)
			continue
		}

		rec, err := parseClubLine(line, country)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		clubs = append(clubs, rec)
		current = &clubs[len(clubs)-1]
	}
	if err := scanner.Err(); err != nil {
		return clubs, lineErrs, fmt.Errorf("read club file: %w", err)
	}

	if len(clubs) == 0 {
		return nil, lineErrs, fmt.Errorf("%w: %s yielded no clubs", ErrUnparseableFile, path)
	}
	return clubs, lineErrs, nil
}

func parseClubLine(line, country string) (ClubRecord, error) {
	parts := strings.Split(line, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ClubRecord{}, fmt.Errorf("%w: missing club name", ErrUnparseableLine)
	}

	rec := ClubRecord{Name: name, Country: country}
	if len(parts) > 1 {
		if year, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			rec.FoundedYear = &year
		}
	}
	for _, p := range parts[2:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case strings.HasPrefix(p, "@"):
			rec.StadiumName = strings.TrimSpace(strings.TrimPrefix(p, "@"))
		case strings.Contains(p, "("):
			rec.City = strings.TrimSpace(p[:strings.Index(p, "(")])
		default:
			rec.City = p
		}
	}
	return rec, nil
}

func parseAliasLine(line string) []string {
	body := strings.TrimSpace(strings.TrimPrefix(line, "|"))
	// Trailing comments after '#' are not aliases.
	if idx := strings.Index(body, "#"); idx >= 0 {
		body = strings.TrimSpace(body[:idx])
	}
	if body == "" {
		return nil
	}

	var out []string
	for _, alias := range strings.Split(body, "|") {
		if alias = strings.TrimSpace(alias); alias != "" {
			out = append(out, alias)
		}
	}
	return out
}

type clubJSONEntry struct {
	Name     string   `json:"name"`
	AltNames []string `json:"alt_names"`
	Founded  *int     `json:"founded"`
	Stadium  string   `json:"stadium"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
}

// ParseClubJSON reads an openfootball club JSON file, a list of club objects.
func ParseClubJSON(path string) ([]ClubRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open club json: %w", err)
	}

	var entries []clubJSONEntry
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnparseableFile, path, err)
	}

	clubs := make([]ClubRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		clubs = append(clubs, ClubRecord{
			Name:             entry.Name,
			FoundedYear:      entry.Founded,
			StadiumName:      entry.Stadium,
			City:             entry.City,
			Country:          entry.Country,
			AlternativeNames: entry.AltNames,
		})
	}
	if len(clubs) == 0 {
		return nil, fmt.Errorf("%w: %s contains no clubs", ErrUnparseableFile, path)
	}
	return clubs, nil
}
