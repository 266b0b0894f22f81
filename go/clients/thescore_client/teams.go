package thescore_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/livescores/go/internal/models"
)

// GetTeams fetches every team of a league
func (c *TheScoreClient) GetTeams(ctx context.Context, sport models.Sport) ([]models.Team, error) {
	return getJSON[[]models.Team](ctx, c, fmt.Sprintf(TeamsEndpoint, sport), "teams")
}

// GetTeam fetches one team, including its standing when the league publishes it
func (c *TheScoreClient) GetTeam(ctx context.Context, sport models.Sport, teamID int) (*models.Team, error) {
	team, err := getJSON[models.Team](ctx, c, fmt.Sprintf(TeamEndpoint, sport, teamID), "team")
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeamFullSchedule fetches every event of a team's season
func (c *TheScoreClient) GetTeamFullSchedule(ctx context.Context, sport models.Sport, teamID int) ([]models.Game, error) {
	return getJSON[[]models.Game](ctx, c, fmt.Sprintf(TeamFullScheduleEndpoint, sport, teamID), "team schedule")
}

// GetStandingsByTeam fetches the standings rows for one team
func (c *TheScoreClient) GetStandingsByTeam(ctx context.Context, sport models.Sport, teamID int) ([]models.StandingRow, error) {
	return getJSON[[]models.StandingRow](ctx, c, fmt.Sprintf(StandingsByTeamEndpoint, sport, teamID), "standings")
}

// GetLiveLeagues fetches the leagues that currently have events in progress
func (c *TheScoreClient) GetLiveLeagues(ctx context.Context) ([]models.LiveLeague, error) {
	return getJSON[[]models.LiveLeague](ctx, c, LiveLeaguesEndpoint, "live leagues")
}
