package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
)

type clubTableModel struct {
	ID               int64          `db:"id"`
	Name             string         `db:"name"`
	FoundedYear      *int           `db:"founded_year"`
	StadiumName      string         `db:"stadium_name"`
	City             string         `db:"city"`
	Country          string         `db:"country"`
	AlternativeNames pq.StringArray `db:"alternative_names"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type clubInsertModel struct {
	Name             string         `db:"name"`
	FoundedYear      *int           `db:"founded_year"`
	StadiumName      string         `db:"stadium_name"`
	City             string         `db:"city"`
	Country          string         `db:"country"`
	AlternativeNames pq.StringArray `db:"alternative_names"`
}

func (m clubTableModel) toDomain() club.Club {
	return club.Club{
		ID:               m.ID,
		Name:             m.Name,
		FoundedYear:      m.FoundedYear,
		StadiumName:      m.StadiumName,
		City:             m.City,
		Country:          m.Country,
		AlternativeNames: []string(m.AlternativeNames),
	}
}
