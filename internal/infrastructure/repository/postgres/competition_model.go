package postgres

import (
	"time"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
)

type competitionTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Country   string    `db:"country"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func (m competitionTableModel) toDomain() competition.Competition {
	return competition.Competition{
		ID:      m.ID,
		Name:    m.Name,
		Country: m.Country,
		Type:    m.Type,
	}
}

type seasonTableModel struct {
	ID            int64     `db:"id"`
	CompetitionID int64     `db:"competition_id"`
	YearStart     int       `db:"year_start"`
	YearEnd       int       `db:"year_end"`
	Name          string    `db:"name"`
	CreatedAt     time.Time `db:"created_at"`
}

func (m seasonTableModel) toDomain() competition.Season {
	return competition.Season{
		ID:            m.ID,
		CompetitionID: m.CompetitionID,
		YearStart:     m.YearStart,
		YearEnd:       m.YearEnd,
		Name:          m.Name,
	}
}
