package liveactivity

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Reconcile drops every record whose activity the platform no longer reports
// as alive. It never re-creates activities. When the platform cannot be
// queried the registry is returned untouched. changed reports whether
// anything was pruned.
func Reconcile(ctx context.Context, reg Registry, lister ActivityLister) (pruned Registry, changed bool) {
	ids, err := lister.ListActiveActivityIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to reconcile live activities")
		return reg, false
	}

	alive := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		alive[id] = struct{}{}
	}

	kept := reg.Filter(func(g TrackedGame) bool {
		_, ok := alive[g.ActivityID]
		if !ok {
			log.Info().
				Int("game_id", g.GameID).
				Str("activity_id", g.ActivityID).
				Msg("live activity no longer exists, dropping")
		}
		return ok
	})
	if kept.Len() == reg.Len() {
		return reg, false
	}
	return kept, true
}
