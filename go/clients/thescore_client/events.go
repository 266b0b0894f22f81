package thescore_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mcdev12/livescores/go/clients"
	"github.com/mcdev12/livescores/go/internal/models"
)

// ErrEventNotFound is returned when the API has no event for the requested id
var ErrEventNotFound = errors.New("event not found")

// GetEvent fetches a single event for a league
func (c *TheScoreClient) GetEvent(ctx context.Context, sport models.Sport, eventID int) (*models.Game, error) {
	endpoint := fmt.Sprintf(EventsEndpoint, sport, eventID)
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		var statusErr *clients.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s event %d: %w", sport, eventID, ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &game, nil
}

// MultisportEvents maps a league code to its events for a day
type MultisportEvents map[string]struct {
	Events []models.Game `json:"events"`
}

// GetEventsByID fetches several events of one league in a single call
func (c *TheScoreClient) GetEventsByID(ctx context.Context, sport models.Sport, eventIDs []int) ([]models.Game, error) {
	ids := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		ids[i] = strconv.Itoa(id)
	}
	return getJSON[[]models.Game](ctx, c, fmt.Sprintf(EventsByIDEndpoint, sport, strings.Join(ids, ",")), "events")
}

// GetMultisportEvents fetches the events of several leagues whose game_date falls in [from, to)
func (c *TheScoreClient) GetMultisportEvents(ctx context.Context, sports []models.Sport, from, to time.Time) (MultisportEvents, error) {
	leagues := make([]string, len(sports))
	for i, s := range sports {
		leagues[i] = s.String()
	}
	endpoint := fmt.Sprintf(MultisportEventsEndpoint, strings.Join(leagues, ","), isoMillis(from), isoMillis(to))
	return getJSON[MultisportEvents](ctx, c, endpoint, "multisport events")
}

func isoMillis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// getJSON issues a GET and decodes the body into T
func getJSON[T any](ctx context.Context, c *TheScoreClient, endpoint, what string) (T, error) {
	var out T
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return out, fmt.Errorf("failed to get %s: %w", what, err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return out, nil
}
