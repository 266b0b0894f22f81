package base

import (
	"context"
	"fmt"

	"github.com/mcdev12/livescores/go/internal/models"
)

// Fetcher dispatches game lookups to the plugin serving each league.
type Fetcher struct {
	plugins map[models.Sport]SportPlugin
}

// NewFetcher builds a Fetcher over initialized plugins, keyed by their league.
func NewFetcher(plugins map[string]SportPlugin) *Fetcher {
	bySport := make(map[models.Sport]SportPlugin, len(plugins))
	for _, plg := range plugins {
		bySport[plg.Sport()] = plg
	}
	return &Fetcher{plugins: bySport}
}

// FetchGame fetches the current state of a game from the plugin for its league.
func (f *Fetcher) FetchGame(ctx context.Context, sport models.Sport, gameID int) (*models.Game, error) {
	plg, ok := f.plugins[sport]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}
	return plg.FetchEvent(ctx, gameID)
}

// Sports returns the leagues this fetcher can serve.
func (f *Fetcher) Sports() []models.Sport {
	out := make([]models.Sport, 0, len(f.plugins))
	for _, s := range models.Sports {
		if _, ok := f.plugins[s]; ok {
			out = append(out, s)
		}
	}
	return out
}
