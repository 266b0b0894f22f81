package models

import (
	"slices"
	"time"
)

// GameStatus is the event lifecycle state reported by the sports API
type GameStatus string

const (
	StatusPreGame    GameStatus = "pre_game"
	StatusInProgress GameStatus = "in_progress"
	StatusHalfTime   GameStatus = "half_time"
	StatusFinal      GameStatus = "final"
	StatusFinished   GameStatus = "finished"
	StatusPostponed  GameStatus = "postponed"
	StatusCancelled  GameStatus = "cancelled"
)

// IsTerminal reports whether no further score updates will follow
func (s GameStatus) IsTerminal() bool {
	return s == StatusFinal || s == StatusFinished
}

// Progress describes the clock and period of a game
type Progress struct {
	ClockLabel         string  `json:"clock_label"`
	String             string  `json:"string"`
	Status             string  `json:"status"`
	EventStatus        string  `json:"event_status"`
	Segment            *int    `json:"segment"`
	SegmentString      *string `json:"segment_string"`
	SegmentDescription *string `json:"segment_description"`
	Clock              string  `json:"clock"`
	Overtime           bool    `json:"overtime"`
}

// TeamScore is one side of a box score
type TeamScore struct {
	Score int `json:"score"`
}

// Score is the scoreline of a box score. Basketball payloads may omit it.
type Score struct {
	Home        TeamScore `json:"home"`
	Away        TeamScore `json:"away"`
	WinningTeam string    `json:"winning_team"`
	LosingTeam  string    `json:"losing_team"`
	TieGame     bool      `json:"tie_game"`
}

// BoxScore carries the live state of a game
type BoxScore struct {
	ID        int      `json:"id"`
	APIURI    string   `json:"api_uri"`
	Progress  Progress `json:"progress"`
	Score     *Score   `json:"score,omitempty"`
	UpdatedAt string   `json:"updated_at"`
}

// Game is an event as returned by GET /{sport}/events/{id}
type Game struct {
	ID          int        `json:"id"`
	APIURI      string     `json:"api_uri"`
	Status      GameStatus `json:"status"`
	EventStatus string     `json:"event_status"`
	GameDate    string     `json:"game_date"`
	AwayTeam    Team       `json:"away_team"`
	HomeTeam    Team       `json:"home_team"`
	AwayRanking *int       `json:"away_ranking"`
	HomeRanking *int       `json:"home_ranking"`
	BoxScore    *BoxScore  `json:"box_score,omitempty"`
	Location    string     `json:"location"`
	Stadium     string     `json:"stadium"`
}

// Sport derives the league from the event's api_uri
func (g *Game) Sport() Sport {
	return SportFromAPIURI(g.APIURI)
}

// Scores returns the away and home score, zero when no box score is present
func (g *Game) Scores() (away, home int) {
	if g.BoxScore == nil || g.BoxScore.Score == nil {
		return 0, 0
	}
	return g.BoxScore.Score.Away.Score, g.BoxScore.Score.Home.Score
}

// ProgressString returns the human readable progress, empty without a box score
func (g *Game) ProgressString() string {
	if g.BoxScore == nil {
		return ""
	}
	return g.BoxScore.Progress.String
}

// gameDateLayouts are the formats the sports API uses for game_date
var gameDateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC3339}

// StartTime parses game_date. ok is false when the date is missing or malformed.
func (g *Game) StartTime() (t time.Time, ok bool) {
	for _, layout := range gameDateLayouts {
		if parsed, err := time.Parse(layout, g.GameDate); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// SortByGameDate orders games by start time, earliest first. Games without a
// parsable date keep their relative order at the front.
func SortByGameDate(games []Game) {
	slices.SortStableFunc(games, func(a, b Game) int {
		at, _ := a.StartTime()
		bt, _ := b.StartTime()
		return at.Compare(bt)
	})
}
