package schedule

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/livescores/go/clients"
	thescore "github.com/mcdev12/livescores/go/clients/thescore_client"
	"github.com/mcdev12/livescores/go/internal/models"
)

// DateLayout is the format of the day accepted by DayGames
const DateLayout = "2006-01-02"

// dayStartOffset moves the UTC day so late US evening games stay on their date
const dayStartOffset = 6 * time.Hour

// favoriteFetchLimit caps concurrent team schedule requests
const favoriteFetchLimit = 4

// ErrInvalidDate is returned when a day is not in DateLayout
var ErrInvalidDate = errors.New("invalid date")

// Source is the part of the sports API the schedule views read
type Source interface {
	GetMultisportEvents(ctx context.Context, sports []models.Sport, from, to time.Time) (thescore.MultisportEvents, error)
	GetEventsByID(ctx context.Context, sport models.Sport, ids []int) ([]models.Game, error)
	GetSchedule(ctx context.Context, sport models.Sport, conference string) (*models.Schedule, error)
	GetConferences(ctx context.Context, sport models.Sport) ([]models.ConferenceGroup, error)
	GetTeams(ctx context.Context, sport models.Sport) ([]models.Team, error)
	GetTeam(ctx context.Context, sport models.Sport, teamID int) (*models.Team, error)
	GetTeamFullSchedule(ctx context.Context, sport models.Sport, teamID int) ([]models.Game, error)
	GetStandingsByTeam(ctx context.Context, sport models.Sport, teamID int) ([]models.StandingRow, error)
	GetLiveLeagues(ctx context.Context) ([]models.LiveLeague, error)
}

// Service builds the browsing views: the all-sports day, league schedules,
// team pages and the favorites feed
type Service struct {
	src       Source
	favorites *FavoritesStore
	clock     clockwork.Clock
	power4    power4Cache
}

func NewService(src Source, favorites *FavoritesStore, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{src: src, favorites: favorites, clock: clock}
}

// Favorites exposes the favorite teams store
func (s *Service) Favorites() *FavoritesStore {
	return s.favorites
}

// Today is the current day in DateLayout
func (s *Service) Today() string {
	return s.clock.Now().Add(-dayStartOffset).UTC().Format(DateLayout)
}

// DayGames returns the games of every league on date, earliest first. College
// games are limited to Power 4 or ranked matchups. Every league has an entry,
// possibly empty.
func (s *Service) DayGames(ctx context.Context, date string) (map[models.Sport][]models.Game, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDate, date, err)
	}
	from := day.Add(dayStartOffset)

	var (
		events thescore.MultisportEvents
		teams  power4Teams
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.src.GetMultisportEvents(gctx, models.Sports, from, from.AddDate(0, 0, 1))
		return err
	})
	g.Go(func() error {
		teams = s.power4.load(gctx, s.src)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[models.Sport][]models.Game, len(models.Sports))
	for _, sport := range models.Sports {
		games := slices.Clone(events[sport.String()].Events)
		if sport != models.SportNFL {
			ids := teams[sport]
			games = slices.DeleteFunc(games, func(game models.Game) bool {
				return !isPower4OrRanked(&game, ids)
			})
		}
		if games == nil {
			games = []models.Game{}
		}
		models.SortByGameDate(games)
		result[sport] = games
	}
	return result, nil
}

// Schedule returns the season groups of a league, optionally for one conference
func (s *Service) Schedule(ctx context.Context, sport models.Sport, conference string) (*models.Schedule, error) {
	return s.src.GetSchedule(ctx, sport, conference)
}

// featuredConferences lead the conference picker in this order
var featuredConferences = []string{"Top 25", "ACC", "Big 12", "Big Ten", "SEC", "All FBS", "All FCS"}

// Conferences lists the conference filters of a college league, featured
// conferences first and the rest alphabetically. Leagues without conferences
// yield an empty list.
func (s *Service) Conferences(ctx context.Context, sport models.Sport) ([]string, error) {
	conferences := []string{}
	if sport != models.SportNCAAF && sport != models.SportNCAAB {
		return conferences, nil
	}

	groups, err := s.src.GetConferences(ctx, sport)
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return conferences, nil
	}
	if err != nil {
		return nil, err
	}

	for _, group := range groups {
		conferences = append(conferences, group.Conferences...)
	}
	slices.SortStableFunc(conferences, compareConferences)
	return conferences, nil
}

func compareConferences(a, b string) int {
	ai, aok := featuredRank(a)
	bi, bok := featuredRank(b)
	switch {
	case aok && bok:
		return cmp.Compare(ai, bi)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

func featuredRank(conference string) (int, bool) {
	i := slices.Index(featuredConferences, conference)
	return i, i >= 0
}

// Games fetches a set of events, earliest first
func (s *Service) Games(ctx context.Context, sport models.Sport, ids []int) ([]models.Game, error) {
	if len(ids) == 0 {
		return []models.Game{}, nil
	}
	games, err := s.src.GetEventsByID(ctx, sport, ids)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.Game{}
	}
	models.SortByGameDate(games)
	return games, nil
}

// TeamSchedule returns every event of a team's season
func (s *Service) TeamSchedule(ctx context.Context, sport models.Sport, teamID int) ([]models.Game, error) {
	games, err := s.src.GetTeamFullSchedule(ctx, sport, teamID)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.Game{}
	}
	return games, nil
}

// LiveLeagues counts the in-progress events of every league
func (s *Service) LiveLeagues(ctx context.Context) (map[models.Sport]int, error) {
	leagues, err := s.src.GetLiveLeagues(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Sport]int, len(models.Sports))
	for _, sport := range models.Sports {
		counts[sport] = 0
	}
	for _, league := range leagues {
		sport := models.Sport(league.League)
		if _, ok := counts[sport]; ok {
			counts[sport] = league.InProgressEventCount
		}
	}
	return counts, nil
}

// FavoriteGames returns the upcoming games of the favorite teams, earliest
// first. A team whose schedule cannot be fetched is skipped.
func (s *Service) FavoriteGames(ctx context.Context) ([]models.Game, error) {
	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, err
	}

	schedules := make([][]models.Game, len(favorites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoriteFetchLimit)
	for i, team := range favorites {
		g.Go(func() error {
			games, err := s.src.GetTeamFullSchedule(gctx, team.Sport, team.ID)
			if err != nil {
				log.Warn().Err(err).Str("sport", team.Sport.String()).Int("team_id", team.ID).
					Msg("failed to fetch favorite team schedule")
				return nil
			}
			schedules[i] = games
			return nil
		})
	}
	_ = g.Wait()

	// team and event ids are only unique within a league
	type key struct {
		sport models.Sport
		id    int
	}
	followed := make(map[key]struct{}, len(favorites))
	for _, team := range favorites {
		followed[key{team.Sport, team.ID}] = struct{}{}
	}

	now := s.clock.Now()
	seen := make(map[key]struct{})
	upcoming := []models.Game{}
	for i, games := range schedules {
		sport := favorites[i].Sport
		for _, game := range games {
			if _, dup := seen[key{sport, game.ID}]; dup {
				continue
			}
			_, away := followed[key{sport, game.AwayTeam.ID}]
			_, home := followed[key{sport, game.HomeTeam.ID}]
			if (!away && !home) || game.Status.IsTerminal() {
				continue
			}
			start, ok := game.StartTime()
			if !ok || start.Before(now) {
				continue
			}
			seen[key{sport, game.ID}] = struct{}{}
			upcoming = append(upcoming, game)
		}
	}
	models.SortByGameDate(upcoming)
	return upcoming, nil
}
