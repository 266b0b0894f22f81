package liveactivity

import (
	"context"
	"errors"

	"github.com/mcdev12/livescores/go/internal/models"
)

// TrackedGame is one game currently mirrored to an OS live activity.
// The JSON field names match the format persisted by earlier app versions.
type TrackedGame struct {
	GameID     int          `json:"gameId"`
	Sport      models.Sport `json:"sport"`
	ActivityID string       `json:"activityId"`
}

// ContentState is the part of a live activity that changes while the game is played.
type ContentState struct {
	AwayScore      int    `json:"awayScore"`
	HomeScore      int    `json:"homeScore"`
	ProgressString string `json:"progressString"`
}

// ActivityAttributes are fixed for the lifetime of a live activity.
type ActivityAttributes struct {
	GameID       int          `json:"gameId"`
	AwayTeamAbbr string       `json:"awayTeamAbbr"`
	HomeTeamAbbr string       `json:"homeTeamAbbr"`
	Sport        models.Sport `json:"sport"`
	AwayTeamID   int          `json:"awayTeamId"`
	HomeTeamID   int          `json:"homeTeamId"`
	DeepLink     string       `json:"deepLink"`
}

// ErrPlatformUnavailable marks a platform call that never got an answer, such
// as a transport timeout. It says nothing about whether the activity exists.
var ErrPlatformUnavailable = errors.New("live activity platform unavailable")

// ActivityLister reports which activities the platform still considers alive.
type ActivityLister interface {
	ListActiveActivityIDs(ctx context.Context) ([]string, error)
}

// Platform is the OS live-activity subsystem.
type Platform interface {
	ActivityLister
	// StartActivity creates an activity and returns its opaque id.
	StartActivity(ctx context.Context, attrs ActivityAttributes, state ContentState) (string, error)
	// UpdateActivity pushes new content. ok is false when the activity no longer exists.
	UpdateActivity(ctx context.Context, activityID string, state ContentState) (ok bool, err error)
	EndActivity(ctx context.Context, activityID string) error
	// CacheTeamLogo stores a team logo where the widget can read it and returns its local path.
	CacheTeamLogo(ctx context.Context, url string, sport models.Sport, teamID int) (string, error)
}

// GameFetcher retrieves the current state of a game from the sports-data API.
type GameFetcher interface {
	FetchGame(ctx context.Context, sport models.Sport, gameID int) (*models.Game, error)
}
