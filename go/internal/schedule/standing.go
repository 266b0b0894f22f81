package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/clients"
	"github.com/mcdev12/livescores/go/internal/models"
)

// TeamStanding returns a team's record. The team endpoint is used when it
// carries a conference record (the NFL does); otherwise the standings
// endpoint is read and the conference record built from its win and loss
// counts. nil means the league publishes no standing for the team.
func (s *Service) TeamStanding(ctx context.Context, sport models.Sport, teamID int) (*models.Standing, error) {
	team, err := s.src.GetTeam(ctx, sport, teamID)
	switch {
	case err != nil:
		log.Debug().Err(err).Str("sport", sport.String()).Int("team_id", teamID).
			Msg("team lookup failed, reading standings")
	case team != nil && team.Standing != nil && team.Standing.ShortConferenceRecord != "":
		return team.Standing, nil
	}

	rows, err := s.src.GetStandingsByTeam(ctx, sport, teamID)
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	standing := &models.Standing{
		ShortRecord: row.ShortRecord,
		Conference:  row.Conference,
		Division:    row.Division,
	}
	if row.ConferenceWins != nil && row.ConferenceLosses != nil {
		standing.ShortConferenceRecord = fmt.Sprintf("%d-%d", *row.ConferenceWins, *row.ConferenceLosses)
	}
	return standing, nil
}
