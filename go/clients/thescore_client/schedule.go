package thescore_client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcdev12/livescores/go/internal/models"
)

// ScheduleUTCOffset is the offset, in seconds, the schedule groups are cut at (US Central)
const ScheduleUTCOffset = -21600

// GetSchedule fetches the season groups of a league, optionally for one conference
func (c *TheScoreClient) GetSchedule(ctx context.Context, sport models.Sport, conference string) (*models.Schedule, error) {
	endpoint := fmt.Sprintf(ScheduleEndpoint, sport, ScheduleUTCOffset, url.QueryEscape(conference))
	schedule, err := getJSON[models.Schedule](ctx, c, endpoint, "schedule")
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GetConferences fetches the conference groups of a college league
func (c *TheScoreClient) GetConferences(ctx context.Context, sport models.Sport) ([]models.ConferenceGroup, error) {
	return getJSON[[]models.ConferenceGroup](ctx, c, fmt.Sprintf(ConferencesEndpoint, sport), "conferences")
}
