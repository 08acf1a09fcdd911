package competition

import (
	"fmt"
	"strings"
)

const (
	TypeLeague        = "league"
	TypeCup           = "cup"
	TypeInternational = "international"
)

// Competition is a league, cup or international tournament.
type Competition struct {
	ID      int64
	Name    string
	Country string
	Type    string
}

func (c Competition) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	switch c.Type {
	case TypeLeague, TypeCup, TypeInternational:
	default:
		return fmt.Errorf("invalid competition type %q", c.Type)
	}

	return nil
}

// ClassifyType infers the competition type from its name. Anything that is
// not recognisably a cup or a continental tournament is treated as a league.
func ClassifyType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "champions league"), strings.Contains(lower, "europa league"):
		return TypeInternational
	case strings.Contains(lower, "cup"), strings.Contains(lower, "pokal"), strings.Contains(lower, "copa"):
		return TypeCup
	default:
		return TypeLeague
	}
}

// Season is one time-bounded run of a competition.
type Season struct {
	ID            int64
	CompetitionID int64
	YearStart     int
	YearEnd       int
	Name          string
}

func (s Season) Validate() error {
	if s.CompetitionID == 0 {
		return fmt.Errorf("season competition reference is required")
	}
	if s.YearStart == 0 || s.YearEnd == 0 {
		return fmt.Errorf("season years are required")
	}
	if s.YearEnd < s.YearStart {
		return fmt.Errorf("season ends (%d) before it starts (%d)", s.YearEnd, s.YearStart)
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}

	return nil
}

// Overlaps reports whether two seasons of the same competition collide.
// Adjacent seasons sharing a boundary year (2023-24 then 2024-25) do not.
func (s Season) Overlaps(other Season) bool {
	if s.CompetitionID != other.CompetitionID {
		return false
	}
	return s.YearStart < other.YearEnd && other.YearStart < s.YearEnd
}
