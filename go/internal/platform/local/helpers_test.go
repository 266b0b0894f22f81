package local

import (
	"context"

	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/models"
)

type gameFetcherFunc func(ctx context.Context, sport models.Sport, gameID int) (*models.Game, error)

func (f gameFetcherFunc) FetchGame(ctx context.Context, sport models.Sport, gameID int) (*models.Game, error) {
	return f(ctx, sport, gameID)
}

func newMapStore() kvstore.Store {
	return kvstore.NewMemoryStore()
}
