package fixture

import (
	"fmt"
	"time"
)

// Fixture is one scheduled or played match.
type Fixture struct {
	ID          int64
	SeasonID    int64
	MatchDate   time.Time
	MatchTime   string
	HomeTeamID  int64
	AwayTeamID  int64
	Stage       string
	Venue       string
	IsCompleted bool
}

// Result is the outcome of a completed fixture; one row per fixture.
type Result struct {
	FixtureID int64
	HomeScore int
	AwayScore int
	ExtraTime bool
	Penalties bool
}

// Key is the natural key used to deduplicate fixtures across ingestion runs.
type Key struct {
	SeasonID   int64
	MatchDate  string
	HomeTeamID int64
	AwayTeamID int64
}

const dateLayout = "2006-01-02"

func (f Fixture) Key() Key {
	return Key{
		SeasonID:   f.SeasonID,
		MatchDate:  f.MatchDate.Format(dateLayout),
		HomeTeamID: f.HomeTeamID,
		AwayTeamID: f.AwayTeamID,
	}
}

func (f Fixture) Validate() error {
	if f.SeasonID == 0 {
		return fmt.Errorf("fixture season reference is required")
	}
	if f.MatchDate.IsZero() {
		return fmt.Errorf("fixture match date is required")
	}
	if f.HomeTeamID == 0 || f.AwayTeamID == 0 {
		return fmt.Errorf("fixture team references are required")
	}
	if f.HomeTeamID == f.AwayTeamID {
		return fmt.Errorf("fixture cannot pair a team with itself")
	}

	return nil
}

func (r Result) Validate() error {
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if r.HomeScore > 20 || r.AwayScore > 20 {
		return fmt.Errorf("score %d-%d is implausible", r.HomeScore, r.AwayScore)
	}

	return nil
}
