package tournament_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mauv0809/club-evenings/internal/catalog"
	"github.com/mauv0809/club-evenings/internal/tournament"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func players(n int) []tournament.Player {
	out := make([]tournament.Player, n)
	for i := range out {
		out[i] = tournament.Player{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("P%d", i+1)}
	}
	return out
}

// fakeCatalog builds n clubs per star level from 3.5 to 5 with faker names.
func fakeCatalog(seed uint64, n int) catalog.Catalog {
	faker := gofakeit.New(seed)
	var clubs []catalog.Club
	for _, stars := range []float64{5, 4.5, 4, 3.5} {
		for i := 0; i < n; i++ {
			clubs = append(clubs, catalog.Club{
				ID:     fmt.Sprintf("c-%v-%d", stars, i),
				Name:   faker.City() + " FC",
				Stars:  stars,
				League: faker.Country(),
			})
		}
	}
	return catalog.New(clubs)
}
