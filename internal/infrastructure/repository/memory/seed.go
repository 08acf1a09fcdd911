package memory

import (
	"github.com/KevinKasozi/MatchWise/internal/domain/club"
)

// SeedClubs backs the no-database demo wiring with a handful of clubs so
// the API has something to serve before a first ingestion run.
func SeedClubs() []club.Club {
	arsenalFounded := 1886
	liverpoolFounded := 1892
	chelseaFounded := 1905
	madridFounded := 1902

	return []club.Club{
		{
			Name:             "Arsenal FC",
			FoundedYear:      &arsenalFounded,
			StadiumName:      "Emirates Stadium",
			City:             "London",
			Country:          "England",
			AlternativeNames: []string{"Arsenal", "The Gunners"},
		},
		{
			Name:             "Liverpool FC",
			FoundedYear:      &liverpoolFounded,
			StadiumName:      "Anfield",
			City:             "Liverpool",
			Country:          "England",
			AlternativeNames: []string{"Liverpool", "The Reds"},
		},
		{
			Name:             "Chelsea FC",
			FoundedYear:      &chelseaFounded,
			StadiumName:      "Stamford Bridge",
			City:             "London",
			Country:          "England",
			AlternativeNames: []string{"Chelsea"},
		},
		{
			Name:             "Real Madrid CF",
			FoundedYear:      &madridFounded,
			StadiumName:      "Santiago Bernabeu",
			City:             "Madrid",
			Country:          "Spain",
			AlternativeNames: []string{"Real Madrid", "Los Blancos"},
		},
	}
}
