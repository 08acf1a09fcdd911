package team

import "fmt"

const (
	TypeClub     = "club"
	TypeNational = "national"
)

// Team is a playing entity: either the side fielded by a club or a national
// team standing alone.
type Team struct {
	ID     int64
	ClubID *int64
	Type   string
}

func (t Team) Validate() error {
	switch t.Type {
	case TypeClub:
		if t.ClubID == nil {
			return fmt.Errorf("club team requires a club reference")
		}
	case TypeNational:
		if t.ClubID != nil {
			return fmt.Errorf("national team must not reference a club")
		}
	default:
		return fmt.Errorf("invalid team type %q", t.Type)
	}

	return nil
}
