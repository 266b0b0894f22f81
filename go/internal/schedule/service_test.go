package schedule

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/livescores/go/clients"
	thescore "github.com/mcdev12/livescores/go/clients/thescore_client"
	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/models"
)

type fakeSource struct {
	mu sync.Mutex

	events     thescore.MultisportEvents
	eventsErr  error
	eventsArgs []time.Time

	teams     map[models.Sport][]models.Team
	teamsErr  error
	teamCalls int

	byID        []models.Game
	byIDCalls   int
	conferences []models.ConferenceGroup
	confErr     error

	team         *models.Team
	teamErr      error
	standings    []models.StandingRow
	standingsErr error

	schedules    map[int][]models.Game
	scheduleErrs map[int]error

	live    []models.LiveLeague
	liveErr error
}

func (f *fakeSource) GetMultisportEvents(_ context.Context, _ []models.Sport, from, to time.Time) (thescore.MultisportEvents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventsArgs = []time.Time{from, to}
	return f.events, f.eventsErr
}

func (f *fakeSource) GetEventsByID(context.Context, models.Sport, []int) ([]models.Game, error) {
	f.byIDCalls++
	return f.byID, nil
}

func (f *fakeSource) GetSchedule(context.Context, models.Sport, string) (*models.Schedule, error) {
	return &models.Schedule{}, nil
}

func (f *fakeSource) GetConferences(context.Context, models.Sport) ([]models.ConferenceGroup, error) {
	return f.conferences, f.confErr
}

func (f *fakeSource) GetTeams(_ context.Context, sport models.Sport) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamCalls++
	if f.teamsErr != nil {
		return nil, f.teamsErr
	}
	return f.teams[sport], nil
}

func (f *fakeSource) GetTeam(context.Context, models.Sport, int) (*models.Team, error) {
	return f.team, f.teamErr
}

func (f *fakeSource) GetTeamFullSchedule(_ context.Context, _ models.Sport, teamID int) ([]models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.scheduleErrs[teamID]; err != nil {
		return nil, err
	}
	return f.schedules[teamID], nil
}

func (f *fakeSource) GetStandingsByTeam(context.Context, models.Sport, int) ([]models.StandingRow, error) {
	return f.standings, f.standingsErr
}

func (f *fakeSource) GetLiveLeagues(context.Context) ([]models.LiveLeague, error) {
	return f.live, f.liveErr
}

func intPtr(v int) *int { return &v }

func game(id, away, home int, date string) models.Game {
	return models.Game{
		ID:       id,
		GameDate: date,
		Status:   models.StatusPreGame,
		AwayTeam: models.Team{ID: away},
		HomeTeam: models.Team{ID: home},
	}
}

func gameIDs(games []models.Game) []int {
	ids := make([]int, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return ids
}

func newTestService(src Source, clock clockwork.Clock) *Service {
	return NewService(src, NewFavoritesStore(kvstore.NewMemoryStore()), clock)
}

func TestService_DayGamesFiltersCollegeGames(t *testing.T) {
	ranked := game(21, 900, 901, "Sat, 13 Sep 2025 16:00:00 -0000")
	ranked.HomeRanking = intPtr(7)
	unranked := game(22, 900, 901, "Sat, 13 Sep 2025 15:00:00 -0000")
	unranked.AwayRanking = intPtr(30)

	src := &fakeSource{
		events: thescore.MultisportEvents{
			"nfl": {Events: []models.Game{
				game(2, 1, 2, "Sun, 14 Sep 2025 20:25:00 -0000"),
				game(1, 3, 4, "Sun, 14 Sep 2025 17:00:00 -0000"),
			}},
			"ncaaf": {Events: []models.Game{
				game(20, 10, 900, "Sat, 13 Sep 2025 19:30:00 -0000"),
				ranked,
				unranked,
				game(23, 900, 901, "Sat, 13 Sep 2025 12:00:00 -0000"),
			}},
		},
		teams: map[models.Sport][]models.Team{
			models.SportNCAAF: {{ID: 10, Conference: "Big Ten"}, {ID: 900, Conference: "Sun Belt"}},
			models.SportNCAAB: {{ID: 50, Conference: "Southeastern"}},
		},
	}
	svc := newTestService(src, clockwork.NewFakeClock())

	day, err := svc.DayGames(context.Background(), "2025-09-14")
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		time.Date(2025, 9, 14, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 15, 6, 0, 0, 0, time.UTC),
	}, src.eventsArgs)
	assert.Equal(t, []int{1, 2}, gameIDs(day[models.SportNFL]))
	assert.Equal(t, []int{21, 20}, gameIDs(day[models.SportNCAAF]))
	require.Contains(t, day, models.SportNCAAB)
	assert.Empty(t, day[models.SportNCAAB])
	assert.NotNil(t, day[models.SportNCAAB])
}

func TestService_DayGamesCachesPower4OnlyOnSuccess(t *testing.T) {
	src := &fakeSource{teamsErr: errors.New("teams down")}
	svc := newTestService(src, clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := svc.DayGames(ctx, "2025-09-14")
	require.NoError(t, err)
	assert.Equal(t, 2, src.teamCalls)

	src.teamsErr = nil
	_, err = svc.DayGames(ctx, "2025-09-14")
	require.NoError(t, err)
	_, err = svc.DayGames(ctx, "2025-09-15")
	require.NoError(t, err)
	assert.Equal(t, 4, src.teamCalls)
}

func TestService_DayGamesErrors(t *testing.T) {
	svc := newTestService(&fakeSource{}, clockwork.NewFakeClock())
	_, err := svc.DayGames(context.Background(), "14/09/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)

	upstream := errors.New("multisport down")
	svc = newTestService(&fakeSource{eventsErr: upstream}, clockwork.NewFakeClock())
	_, err = svc.DayGames(context.Background(), "2025-09-14")
	assert.ErrorIs(t, err, upstream)
}

func TestService_Today(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 15, 3, 0, 0, 0, time.UTC))
	svc := newTestService(&fakeSource{}, clock)
	assert.Equal(t, "2025-09-14", svc.Today())

	clock.Advance(4 * time.Hour)
	assert.Equal(t, "2025-09-15", svc.Today())
}

func TestService_Conferences(t *testing.T) {
	src := &fakeSource{conferences: []models.ConferenceGroup{
		{Name: "FBS", Conferences: []string{"Sun Belt", "SEC", "Top 25", "American"}},
		{Name: "FCS", Conferences: []string{"All FCS", "Big Ten", "ACC"}},
	}}
	svc := newTestService(src, clockwork.NewFakeClock())
	ctx := context.Background()

	conferences, err := svc.Conferences(ctx, models.SportNCAAF)
	require.NoError(t, err)
	assert.Equal(t, []string{"Top 25", "ACC", "Big Ten", "SEC", "All FCS", "American", "Sun Belt"}, conferences)

	conferences, err = svc.Conferences(ctx, models.SportNFL)
	require.NoError(t, err)
	assert.Equal(t, []string{}, conferences)

	src.confErr = &clients.StatusError{StatusCode: http.StatusNotFound}
	conferences, err = svc.Conferences(ctx, models.SportNCAAB)
	require.NoError(t, err)
	assert.Equal(t, []string{}, conferences)

	src.confErr = &clients.StatusError{StatusCode: http.StatusInternalServerError}
	_, err = svc.Conferences(ctx, models.SportNCAAB)
	assert.Error(t, err)
}

func TestService_Games(t *testing.T) {
	src := &fakeSource{byID: []models.Game{
		game(2, 1, 2, "Sun, 14 Sep 2025 20:25:00 -0000"),
		game(1, 3, 4, "Sun, 14 Sep 2025 17:00:00 -0000"),
	}}
	svc := newTestService(src, clockwork.NewFakeClock())

	games, err := svc.Games(context.Background(), models.SportNFL, nil)
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Zero(t, src.byIDCalls)

	games, err = svc.Games(context.Background(), models.SportNFL, []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, gameIDs(games))
}

func TestService_TeamStanding(t *testing.T) {
	ctx := context.Background()

	t.Run("team endpoint with conference record", func(t *testing.T) {
		want := &models.Standing{Wins: 3, Losses: 1, ShortRecord: "3-1", ShortConferenceRecord: "2-0"}
		src := &fakeSource{team: &models.Team{ID: 7, Standing: want}, standingsErr: errors.New("unused")}
		got, err := newTestService(src, nil).TeamStanding(ctx, models.SportNFL, 7)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("falls back to standings", func(t *testing.T) {
		src := &fakeSource{
			team: &models.Team{ID: 8, Standing: &models.Standing{ShortRecord: "10-2"}},
			standings: []models.StandingRow{
				{ShortRecord: "10-2", Conference: "Big 12", ConferenceWins: intPtr(3), ConferenceLosses: intPtr(1)},
			},
		}
		got, err := newTestService(src, nil).TeamStanding(ctx, models.SportNCAAB, 8)
		require.NoError(t, err)
		assert.Equal(t, &models.Standing{ShortRecord: "10-2", ShortConferenceRecord: "3-1", Conference: "Big 12"}, got)
	})

	t.Run("team lookup fails", func(t *testing.T) {
		src := &fakeSource{
			teamErr:   errors.New("boom"),
			standings: []models.StandingRow{{ShortRecord: "4-4", ConferenceWins: intPtr(2)}},
		}
		got, err := newTestService(src, nil).TeamStanding(ctx, models.SportNCAAF, 9)
		require.NoError(t, err)
		assert.Equal(t, &models.Standing{ShortRecord: "4-4"}, got)
	})

	t.Run("no standing", func(t *testing.T) {
		src := &fakeSource{team: &models.Team{ID: 9}}
		got, err := newTestService(src, nil).TeamStanding(ctx, models.SportNCAAF, 9)
		require.NoError(t, err)
		assert.Nil(t, got)

		src.standingsErr = &clients.StatusError{StatusCode: http.StatusNotFound}
		got, err = newTestService(src, nil).TeamStanding(ctx, models.SportNCAAF, 9)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestService_LiveLeagues(t *testing.T) {
	src := &fakeSource{live: []models.LiveLeague{
		{League: "ncaab", InProgressEventCount: 12},
		{League: "nhl", InProgressEventCount: 3},
	}}
	svc := newTestService(src, nil)

	counts, err := svc.LiveLeagues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[models.Sport]int{models.SportNFL: 0, models.SportNCAAF: 0, models.SportNCAAB: 12}, counts)

	src.liveErr = errors.New("meta down")
	_, err = svc.LiveLeagues(context.Background())
	assert.Error(t, err)
}

func TestService_FavoriteGames(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 14, 12, 0, 0, 0, time.UTC))
	final := game(103, 7, 40, "Sun, 21 Sep 2025 17:00:00 -0000")
	final.Status = models.StatusFinal

	src := &fakeSource{
		schedules: map[int][]models.Game{
			7: {
				game(100, 7, 40, "Sun, 28 Sep 2025 17:00:00 -0000"),
				game(101, 8, 7, "Sun, 07 Sep 2025 17:00:00 -0000"),
				game(102, 7, 8, "Sun, 21 Sep 2025 20:25:00 -0000"),
				final,
				game(104, 7, 41, "TBD"),
			},
			8: {
				game(102, 7, 8, "Sun, 21 Sep 2025 20:25:00 -0000"),
				game(105, 60, 61, "Sun, 21 Sep 2025 17:00:00 -0000"),
			},
		},
		scheduleErrs: map[int]error{9: errors.New("schedule down")},
	}
	svc := newTestService(src, clock)
	ctx := context.Background()

	games, err := svc.FavoriteGames(ctx)
	require.NoError(t, err)
	assert.Empty(t, games)

	for _, id := range []int{7, 9, 8} {
		_, err := svc.Favorites().Add(ctx, models.FavoriteTeam{ID: id, Sport: models.SportNFL})
		require.NoError(t, err)
	}
	// same id in another league is a different team
	_, err = svc.Favorites().Add(ctx, models.FavoriteTeam{ID: 60, Sport: models.SportNCAAB})
	require.NoError(t, err)

	games, err = svc.FavoriteGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{102, 100}, gameIDs(games))
}
