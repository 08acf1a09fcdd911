package mapper

import (
	"strconv"
	"strings"
)

// suffixTokens are corporate decorations and founding-year tokens that never
// distinguish one club from another.
var suffixTokens = map[string]struct{}{
	"fc": {}, "afc": {}, "cf": {}, "sc": {}, "ac": {},
	"united": {}, "utd": {}, "city": {},
	"football": {}, "club": {}, "association": {},
	"04": {}, "05": {}, "06": {}, "07": {}, "08": {}, "09": {},
}

func init() {
	for year := 1899; year <= 1915; year++ {
		suffixTokens[strconv.Itoa(year)] = struct{}{}
	}
}

// Normalize reduces a team name to a comparison key: lowercase, punctuation
// folded to spaces, suffix tokens removed, whitespace collapsed.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch r {
		case '\'', '.', '&', '-':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, field := range fields {
		if _, drop := suffixTokens[field]; drop {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}
