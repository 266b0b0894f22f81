package schedule

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/livescores/go/internal/models"
)

// Power4Conferences are the conference names, as the teams endpoint reports
// them, whose games always make the all-sports day
var Power4Conferences = []string{"Atlantic Coast", "Big 12", "Big Ten", "Southeastern"}

// maxRanking is the lowest poll position that counts as ranked
const maxRanking = 25

type power4Teams map[models.Sport]map[int]struct{}

// power4Cache holds the Power 4 team ids of each college league. The lists
// only change between seasons, so a complete load is kept for the process
// lifetime and a failed one is retried on the next call.
type power4Cache struct {
	mu    sync.Mutex
	teams power4Teams
}

func (c *power4Cache) load(ctx context.Context, src Source) power4Teams {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.teams != nil {
		return c.teams
	}

	leagues := []models.Sport{models.SportNCAAF, models.SportNCAAB}
	sets := make([]map[int]struct{}, len(leagues))
	var g errgroup.Group
	for i, sport := range leagues {
		sets[i] = make(map[int]struct{})
		g.Go(func() error {
			teams, err := src.GetTeams(ctx, sport)
			if err != nil {
				return err
			}
			for _, team := range teams {
				if slices.Contains(Power4Conferences, team.Conference) {
					sets[i][team.ID] = struct{}{}
				}
			}
			return nil
		})
	}
	err := g.Wait()

	teams := make(power4Teams, len(leagues))
	for i, sport := range leagues {
		teams[sport] = sets[i]
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to load Power 4 teams, filtering on rankings only")
		return teams
	}
	c.teams = teams
	return teams
}

func isPower4OrRanked(g *models.Game, power4 map[int]struct{}) bool {
	if ranked(g.AwayRanking) || ranked(g.HomeRanking) {
		return true
	}
	_, away := power4[g.AwayTeam.ID]
	_, home := power4[g.HomeTeam.ID]
	return away || home
}

func ranked(rank *int) bool {
	return rank != nil && *rank <= maxRanking
}
