package liveactivity

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// retirePersistTimeout bounds the registry write when a poller retires its game.
const retirePersistTimeout = 5 * time.Second

// startPollerLocked launches the poller for tracked. Caller must hold s.mu.
func (s *Service) startPollerLocked(tracked TrackedGame) {
	if _, running := s.pollers[tracked.GameID]; running {
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.pollers[tracked.GameID] = cancel

	s.wg.Add(1)
	go s.runPoller(ctx, tracked)

	log.Debug().
		Int("game_id", tracked.GameID).
		Dur("interval", s.interval).
		Msg("poller started")
}

// stopPollerLocked cancels the poller for gameID. Caller must hold s.mu.
func (s *Service) stopPollerLocked(gameID int) {
	if cancel, ok := s.pollers[gameID]; ok {
		cancel()
		delete(s.pollers, gameID)
		log.Debug().Int("game_id", gameID).Msg("poller cancelled")
	}
}

// runPoller ticks until the game is retired or ctx is cancelled. The next
// tick is only scheduled once the previous one, retirement included, is done.
func (s *Service) runPoller(ctx context.Context, tracked TrackedGame) {
	defer s.wg.Done()

	for {
		timer := s.clock.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			stopAndDrainTimer(timer)
			log.Debug().Int("game_id", tracked.GameID).Msg("poller stopped")
			return
		case <-timer.Chan():
		}

		if done := s.poll(ctx, tracked); done {
			return
		}
	}
}

// stopAndDrainTimer stops a timer and drains its channel if it already fired.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}

// poll runs one tick for tracked and reports whether polling should stop.
func (s *Service) poll(ctx context.Context, tracked TrackedGame) bool {
	logger := log.With().
		Int("game_id", tracked.GameID).
		Str("activity_id", tracked.ActivityID).
		Str("sport", tracked.Sport.String()).
		Logger()

	game, err := s.fetcher.FetchGame(ctx, tracked.Sport, tracked.GameID)
	if err != nil {
		// the next tick is the retry
		logger.Debug().Err(err).Msg("poll fetch failed, skipping tick")
		s.metrics.RecordPoll(tracked.Sport, PollFetchError)
		return ctx.Err() != nil
	}
	if !s.stillTracking(ctx, tracked) {
		s.metrics.RecordPoll(tracked.Sport, PollStale)
		return true
	}

	state := ContentStateFromGame(game)
	ok, err := s.platform.UpdateActivity(ctx, tracked.ActivityID, state)
	if ctx.Err() != nil {
		return true
	}
	if errors.Is(err, ErrPlatformUnavailable) {
		// no answer from the platform; the next tick is the retry
		logger.Warn().Err(err).Msg("live activity platform unavailable, skipping tick")
		s.metrics.RecordPoll(tracked.Sport, PollPlatformDown)
		return false
	}
	if err != nil || !ok {
		logger.Info().Err(err).Msg("live activity is gone, retiring")
		s.retire(ctx, tracked, RetireActivityGone)
		return true
	}
	s.metrics.RecordPoll(tracked.Sport, PollUpdated)

	logger.Debug().
		Int("away_score", state.AwayScore).
		Int("home_score", state.HomeScore).
		Str("progress", state.ProgressString).
		Str("status", string(game.Status)).
		Msg("live activity updated")

	if game.Status.IsTerminal() {
		if !s.stillTracking(ctx, tracked) {
			return true
		}
		if err := s.platform.EndActivity(ctx, tracked.ActivityID); err != nil {
			logger.Error().Err(err).Msg("failed to end finished live activity")
		}
		s.retire(ctx, tracked, RetireFinished)
		return true
	}
	return false
}

// stillTracking reports whether the registry still holds this exact record;
// results for a game that was stopped or re-tracked meanwhile are discarded.
func (s *Service) stillTracking(ctx context.Context, tracked TrackedGame) bool {
	if ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Holds(tracked)
}

// retire removes tracked from the registry, persists and drops its poller.
// A record that was already replaced or removed is left alone.
func (s *Service) retire(ctx context.Context, tracked TrackedGame, reason RetireReason) {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), retirePersistTimeout)
	defer cancel()

	s.mu.Lock()
	if !s.registry.Holds(tracked) {
		s.mu.Unlock()
		return
	}
	s.stopPollerLocked(tracked.GameID)
	s.replaceLocked(persistCtx, s.registry.Remove(tracked.GameID), true)
	s.mu.Unlock()

	s.metrics.RecordRetirement(tracked.Sport, reason)
	log.Info().
		Int("game_id", tracked.GameID).
		Str("activity_id", tracked.ActivityID).
		Str("reason", string(reason)).
		Msg("retired tracked game")
}
