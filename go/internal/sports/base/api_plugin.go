package base

import (
	"context"
	"fmt"

	thescore "github.com/mcdev12/livescores/go/clients/thescore_client"
	"github.com/mcdev12/livescores/go/internal/models"
)

// APIPlugin is the shared implementation for leagues served by the sports-data API.
// Sport packages embed it and register one instance per league.
type APIPlugin struct {
	sport  models.Sport
	api    *thescore.TheScoreClient
	config Config
}

// NewAPIPlugin creates an uninitialized plugin for a league
func NewAPIPlugin(sport models.Sport) *APIPlugin {
	return &APIPlugin{sport: sport}
}

// Init creates the API client from the plugin config.
func (p *APIPlugin) Init(cfg Config) error {
	p.config = cfg
	p.api = thescore.NewTheScoreClient(cfg.APIBaseURL)
	if cfg.Timeout > 0 {
		p.api.SetTimeout(cfg.Timeout)
	}
	if cfg.RequestsPerSecond > 0 {
		p.api.SetRateLimit(cfg.RequestsPerSecond, cfg.Burst)
	}
	return nil
}

func (p *APIPlugin) Sport() models.Sport {
	return p.sport
}

// FetchEvent retrieves the current state of one event.
func (p *APIPlugin) FetchEvent(ctx context.Context, eventID int) (*models.Game, error) {
	if p.api == nil {
		return nil, fmt.Errorf("%s: plugin not initialized", p.sport)
	}
	game, err := p.api.GetEvent(ctx, p.sport, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: FetchEvent error: %w", p.sport, err)
	}
	return game, nil
}
