package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar representation every source date is
// normalized to.
const DateLayout = "2006-01-02"

var (
	isoDatePattern    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dottedDatePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
)

// NormalizeDate converts the date formats seen across source years into
// DateLayout. Month/day headers like "Fri Aug/11" carry no year, so the
// season start year decides it: July or later falls in the start year,
// anything earlier in the following year. seasonYear zero falls back to the
// current year.
func NormalizeDate(raw string, seasonYear int) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty date", ErrUnparseableLine)
	}

	if m := isoDatePattern.FindStringSubmatch(raw); m != nil {
		return rebuildDate(m[1], m[2], m[3])
	}
	if m := dottedDatePattern.FindStringSubmatch(raw); m != nil {
		return rebuildDate(m[3], m[2], m[1])
	}

	for _, layout := range []string{"Mon Jan/2", "Jan/2"} {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		year := seasonYear
		if year == 0 {
			year = time.Now().Year()
		} else if parsed.Month() < time.July {
			year++
		}
		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC).Format(DateLayout), nil
	}

	return "", fmt.Errorf("%w: unrecognized date %q", ErrUnparseableLine, raw)
}

func rebuildDate(year, month, day string) (string, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", fmt.Errorf("%w: out-of-range date %s-%s-%s", ErrUnparseableLine, year, month, day)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format(DateLayout), nil
}
