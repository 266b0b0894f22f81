package liveactivity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/livescores/go/internal/models"
)

// DefaultPollInterval is how often a tracked game is refreshed.
const DefaultPollInterval = 5 * time.Second

var (
	// ErrServiceClosed is returned by StartTracking after Close.
	ErrServiceClosed = errors.New("live activity service closed")
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("live activity service already started")
)

// Config holds tuning knobs for the Service.
type Config struct {
	PollInterval time.Duration
	// Clock drives the poll timers. In production, use clockwork.NewRealClock(). In tests, a FakeClock.
	Clock clockwork.Clock
}

// Deps are the collaborators the Service needs.
type Deps struct {
	Store    *RegistryStore
	Platform Platform
	Fetcher  GameFetcher
	Metrics  MetricsCollector
}

// Service owns the tracked-game registry, keeps it in step with the platform
// and runs one poller per tracked game.
type Service struct {
	store    *RegistryStore
	platform Platform
	fetcher  GameFetcher
	metrics  MetricsCollector
	clock    clockwork.Clock
	interval time.Duration

	// ctx bounds every poller; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	registry Registry
	pollers  map[int]context.CancelFunc
	started  bool
	closed   bool
}

// NewService creates a Service. Call Start to load the persisted registry.
func NewService(cfg Config, deps Deps) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if deps.Metrics == nil {
		deps.Metrics = NoOpMetricsCollector{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:    deps.Store,
		platform: deps.Platform,
		fetcher:  deps.Fetcher,
		metrics:  deps.Metrics,
		clock:    cfg.Clock,
		interval: cfg.PollInterval,
		ctx:      ctx,
		cancel:   cancel,
		registry: Registry{},
		pollers:  make(map[int]context.CancelFunc),
	}
}

// Start loads the registry, reconciles it against the platform and resumes
// polling for the games that survived.
func (s *Service) Start(ctx context.Context) error {
	loaded := s.store.Load(ctx)
	reconciled, changed := Reconcile(ctx, loaded, s.platform)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	if changed {
		for _, g := range loaded {
			if !reconciled.Holds(g) {
				s.metrics.RecordRetirement(g.Sport, RetireReconciled)
			}
		}
	}
	s.replaceLocked(ctx, reconciled, changed)

	for _, g := range s.registry {
		s.startPollerLocked(g)
	}

	log.Info().
		Int("loaded", loaded.Len()).
		Int("tracking", s.registry.Len()).
		Msg("live activity tracking started")
	return nil
}

// IsTrackingGame reports whether gameID has a live activity.
func (s *Service) IsTrackingGame(gameID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Contains(gameID)
}

// TrackedGames returns a snapshot of the registry.
func (s *Service) TrackedGames() []TrackedGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TrackedGame, len(s.registry))
	copy(out, s.registry)
	return out
}

// StartTracking creates a live activity for game and begins polling it.
// A game that is already tracked is returned as is. Platform failures are
// logged and returned; tracking does not begin in that case.
func (s *Service) StartTracking(ctx context.Context, game *models.Game) (TrackedGame, error) {
	if game == nil {
		return TrackedGame{}, errors.New("game is required")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return TrackedGame{}, ErrServiceClosed
	}
	if existing, ok := s.registry.Get(game.ID); ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.mu.Unlock()

	attrs := AttributesFromGame(game)
	s.cacheTeamLogos(ctx, game, attrs.Sport)

	activityID, err := s.platform.StartActivity(ctx, attrs, ContentStateFromGame(game))
	if err != nil {
		log.Error().
			Err(err).
			Int("game_id", game.ID).
			Str("sport", attrs.Sport.String()).
			Msg("failed to start live activity")
		s.metrics.RecordStartFailure(attrs.Sport)
		return TrackedGame{}, fmt.Errorf("start live activity: %w", err)
	}

	tracked := TrackedGame{GameID: game.ID, Sport: attrs.Sport, ActivityID: activityID}

	s.mu.Lock()
	existing, raced := s.registry.Get(game.ID)
	if s.closed || raced {
		s.mu.Unlock()
		// someone else won, or we are shutting down: the new activity is orphaned
		s.endActivity(ctx, tracked)
		if raced {
			return existing, nil
		}
		return TrackedGame{}, ErrServiceClosed
	}
	s.replaceLocked(ctx, s.registry.Add(tracked), true)
	s.startPollerLocked(tracked)
	s.mu.Unlock()

	log.Info().
		Int("game_id", tracked.GameID).
		Str("sport", tracked.Sport.String()).
		Str("activity_id", tracked.ActivityID).
		Msg("started tracking game")
	return tracked, nil
}

// StopTracking stops polling gameID, removes it from the registry and ends its
// activity. It reports whether the game was tracked. Cancelling ctx does not
// abort the persist or the end call.
func (s *Service) StopTracking(ctx context.Context, gameID int) bool {
	// the persist and end call outlive the caller
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), retirePersistTimeout)
	defer cancel()

	s.mu.Lock()
	tracked, ok := s.registry.Get(gameID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.stopPollerLocked(gameID)
	s.replaceLocked(ctx, s.registry.Remove(gameID), true)
	s.mu.Unlock()

	s.metrics.RecordRetirement(tracked.Sport, RetireUserStop)
	s.endActivity(ctx, tracked)

	log.Info().
		Int("game_id", gameID).
		Str("activity_id", tracked.ActivityID).
		Msg("stopped tracking game")
	return true
}

// Close stops every poller and waits for them to exit. The registry is left
// as persisted so the next Start resumes it.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.pollers = make(map[int]context.CancelFunc)
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Service) cacheTeamLogos(ctx context.Context, game *models.Game, sport models.Sport) {
	var g errgroup.Group
	for _, team := range []models.Team{game.AwayTeam, game.HomeTeam} {
		if team.Logos.Small == "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.platform.CacheTeamLogo(ctx, team.Logos.Small, sport, team.ID); err != nil {
				log.Warn().
					Err(err).
					Int("team_id", team.ID).
					Str("sport", sport.String()).
					Msg("failed to cache team logo")
			}
			return nil
		})
	}
	_ = g.Wait()
}

// endActivity is best effort: failures are logged, never returned.
func (s *Service) endActivity(ctx context.Context, tracked TrackedGame) {
	if err := s.platform.EndActivity(ctx, tracked.ActivityID); err != nil {
		log.Error().
			Err(err).
			Int("game_id", tracked.GameID).
			Str("activity_id", tracked.ActivityID).
			Msg("failed to end live activity")
	}
}

// replaceLocked swaps in reg and, when persist is set, writes it through.
// Caller must hold s.mu.
func (s *Service) replaceLocked(ctx context.Context, reg Registry, persist bool) {
	s.registry = reg
	s.metrics.SetTrackedGames(reg.Len())
	if !persist {
		return
	}
	if err := s.store.Persist(ctx, reg); err != nil {
		log.Error().Err(err).Int("tracking", reg.Len()).Msg("failed to persist tracked games")
	}
}
