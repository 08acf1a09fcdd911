package postgres

import (
	"time"

	"github.com/KevinKasozi/MatchWise/internal/domain/team"
)

type teamTableModel struct {
	ID        int64     `db:"id"`
	ClubID    *int64    `db:"club_id"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:     m.ID,
		ClubID: m.ClubID,
		Type:   m.Type,
	}
}
