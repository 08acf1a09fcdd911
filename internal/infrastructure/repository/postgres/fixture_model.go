package postgres

import (
	"time"

	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID          int64     `db:"id"`
	SeasonID    int64     `db:"season_id"`
	MatchDate   time.Time `db:"match_date"`
	MatchTime   string    `db:"match_time"`
	HomeTeamID  int64     `db:"home_team_id"`
	AwayTeamID  int64     `db:"away_team_id"`
	Stage       string    `db:"stage"`
	Venue       string    `db:"venue"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:          m.ID,
		SeasonID:    m.SeasonID,
		MatchDate:   m.MatchDate,
		MatchTime:   m.MatchTime,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		Stage:       m.Stage,
		Venue:       m.Venue,
		IsCompleted: m.IsCompleted,
	}
}

type resultTableModel struct {
	FixtureID  int64     `db:"fixture_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	ExtraTime  bool      `db:"extra_time"`
	Penalties  bool      `db:"penalties"`
	RecordedAt time.Time `db:"recorded_at"`
}

func (m resultTableModel) toDomain() fixture.Result {
	return fixture.Result{
		FixtureID: m.FixtureID,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		ExtraTime: m.ExtraTime,
		Penalties: m.Penalties,
	}
}
