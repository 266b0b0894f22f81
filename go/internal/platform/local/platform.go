package local

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
)

// DefaultMaxActivities mirrors the per-app cap iOS puts on concurrent activities
const DefaultMaxActivities = 5

var (
	ErrActivitiesDisabled = errors.New("live activities are disabled")
	ErrTooManyActivities  = errors.New("too many live activities")
	ErrActivityNotFound   = errors.New("live activity not found")
)

// Config configures the in-process platform
type Config struct {
	// MaxActivities caps concurrently running activities; zero means DefaultMaxActivities
	MaxActivities int
	// Disabled makes every start fail, like a device with activities turned off
	Disabled bool
	// Clock stamps events; defaults to the real clock
	Clock clockwork.Clock
}

type activity struct {
	attrs liveactivity.ActivityAttributes
	state liveactivity.ContentState
}

// Platform is an in-process live activity host. Activities live in memory and
// every change is pushed to a Notifier, typically the websocket gateway.
type Platform struct {
	mu         sync.RWMutex
	activities map[string]*activity

	config   Config
	notifier Notifier
	logos    *LogoCache
	clock    clockwork.Clock
}

var _ liveactivity.Platform = (*Platform)(nil)

// NewPlatform creates a Platform. A nil notifier drops events and a nil logo
// cache makes CacheTeamLogo a no-op.
func NewPlatform(cfg Config, notifier Notifier, logos *LogoCache) *Platform {
	if cfg.MaxActivities <= 0 {
		cfg.MaxActivities = DefaultMaxActivities
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Platform{
		activities: make(map[string]*activity),
		config:     cfg,
		notifier:   notifier,
		logos:      logos,
		clock:      cfg.Clock,
	}
}

func (p *Platform) StartActivity(_ context.Context, attrs liveactivity.ActivityAttributes, state liveactivity.ContentState) (string, error) {
	if p.config.Disabled {
		return "", ErrActivitiesDisabled
	}

	p.mu.Lock()
	if len(p.activities) >= p.config.MaxActivities {
		p.mu.Unlock()
		return "", fmt.Errorf("%w: limit is %d", ErrTooManyActivities, p.config.MaxActivities)
	}
	id := uuid.New().String()
	p.activities[id] = &activity{attrs: attrs, state: state}
	p.mu.Unlock()

	log.Debug().
		Str("activity_id", id).
		Int("game_id", attrs.GameID).
		Msg("local activity started")

	p.notifier.Notify(Event{
		Type:       EventActivityStarted,
		ActivityID: id,
		GameID:     attrs.GameID,
		Attributes: &attrs,
		State:      &state,
		Timestamp:  p.clock.Now(),
	})
	return id, nil
}

func (p *Platform) UpdateActivity(_ context.Context, activityID string, state liveactivity.ContentState) (bool, error) {
	p.mu.Lock()
	a, ok := p.activities[activityID]
	if !ok {
		p.mu.Unlock()
		return false, nil
	}
	a.state = state
	gameID := a.attrs.GameID
	p.mu.Unlock()

	p.notifier.Notify(Event{
		Type:       EventActivityUpdated,
		ActivityID: activityID,
		GameID:     gameID,
		State:      &state,
		Timestamp:  p.clock.Now(),
	})
	return true, nil
}

func (p *Platform) EndActivity(_ context.Context, activityID string) error {
	a, ok := p.remove(activityID)
	if !ok {
		return fmt.Errorf("end %s: %w", activityID, ErrActivityNotFound)
	}
	p.notifier.Notify(Event{
		Type:       EventActivityEnded,
		ActivityID: activityID,
		GameID:     a.attrs.GameID,
		State:      &a.state,
		Timestamp:  p.clock.Now(),
	})
	return nil
}

// Dismiss removes an activity the way a user swiping it away would. The
// tracker notices on its next update.
func (p *Platform) Dismiss(activityID string) bool {
	a, ok := p.remove(activityID)
	if !ok {
		return false
	}
	p.notifier.Notify(Event{
		Type:       EventActivityDismissed,
		ActivityID: activityID,
		GameID:     a.attrs.GameID,
		Timestamp:  p.clock.Now(),
	})
	return true
}

func (p *Platform) ListActiveActivityIDs(context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]string, 0, len(p.activities))
	for id := range p.activities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *Platform) CacheTeamLogo(ctx context.Context, url string, sport models.Sport, teamID int) (string, error) {
	if p.logos == nil {
		return "", nil
	}
	return p.logos.Cache(ctx, url, sport, teamID)
}

// State returns the current content of an activity
func (p *Platform) State(activityID string) (liveactivity.ContentState, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.activities[activityID]
	if !ok {
		return liveactivity.ContentState{}, false
	}
	return a.state, true
}

func (p *Platform) remove(activityID string) (*activity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.activities[activityID]
	if ok {
		delete(p.activities, activityID)
	}
	return a, ok
}
