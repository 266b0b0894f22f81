package liveactivity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mcdev12/livescores/go/internal/models"
)

type updateCall struct {
	ActivityID string
	State      ContentState
}

// fakePlatform is an in-memory Platform that records every call.
type fakePlatform struct {
	mu sync.Mutex

	nextID   int
	alive    map[string]bool
	startErr error
	listErr  error
	endErr   error
	// updateOK overrides the update result when non-nil
	updateOK  *bool
	updateErr error

	starts  []ActivityAttributes
	updates []updateCall
	ends    []string
	logos   []string
	// endCtxErrs records ctx.Err() as seen by each EndActivity call
	endCtxErrs []error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{alive: make(map[string]bool)}
}

func (p *fakePlatform) StartActivity(_ context.Context, attrs ActivityAttributes, _ ContentState) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startErr != nil {
		return "", p.startErr
	}
	p.nextID++
	id := fmt.Sprintf("activity-%d", p.nextID)
	p.alive[id] = true
	p.starts = append(p.starts, attrs)
	return id, nil
}

func (p *fakePlatform) UpdateActivity(_ context.Context, activityID string, state ContentState) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, updateCall{ActivityID: activityID, State: state})
	if p.updateErr != nil {
		return false, p.updateErr
	}
	if p.updateOK != nil {
		return *p.updateOK, nil
	}
	return p.alive[activityID], nil
}

func (p *fakePlatform) EndActivity(ctx context.Context, activityID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ends = append(p.ends, activityID)
	p.endCtxErrs = append(p.endCtxErrs, ctx.Err())
	delete(p.alive, activityID)
	return p.endErr
}

func (p *fakePlatform) ListActiveActivityIDs(context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listErr != nil {
		return nil, p.listErr
	}
	ids := make([]string, 0, len(p.alive))
	for id := range p.alive {
		ids = append(ids, id)
	}
	return ids, nil
}

func (p *fakePlatform) CacheTeamLogo(_ context.Context, url string, _ models.Sport, _ int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logos = append(p.logos, url)
	return "/cache/" + url, nil
}

func (p *fakePlatform) setAlive(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		p.alive[id] = true
	}
}

func (p *fakePlatform) setUpdateOK(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateOK = &ok
}

func (p *fakePlatform) updateCalls() []updateCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]updateCall(nil), p.updates...)
}

func (p *fakePlatform) endCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.ends...)
}

func (p *fakePlatform) startCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.starts)
}

// fakeFetcher serves whatever game was last set for an id.
type fakeFetcher struct {
	mu    sync.Mutex
	games map[int]*models.Game
	err   error
	calls int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{games: make(map[int]*models.Game)}
}

func (f *fakeFetcher) FetchGame(_ context.Context, _ models.Sport, gameID int) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.games[gameID]
	if !ok {
		return nil, errors.New("404")
	}
	return g, nil
}

func (f *fakeFetcher) set(g *models.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.ID] = g
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func nflGame(id int, status models.GameStatus, away, home int, progress string) *models.Game {
	return &models.Game{
		ID:       id,
		APIURI:   fmt.Sprintf("/nfl/events/%d", id),
		Status:   status,
		AwayTeam: models.Team{ID: 10, Abbreviation: "KC", Logos: models.Logos{Small: "kc.png"}},
		HomeTeam: models.Team{ID: 20, Abbreviation: "BUF", Logos: models.Logos{Small: "buf.png"}},
		BoxScore: &models.BoxScore{
			Progress: models.Progress{String: progress},
			Score: &models.Score{
				Away: models.TeamScore{Score: away},
				Home: models.TeamScore{Score: home},
			},
		},
	}
}
