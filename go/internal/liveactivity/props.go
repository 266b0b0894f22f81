package liveactivity

import (
	"fmt"

	"github.com/mcdev12/livescores/go/internal/models"
)

// DeepLinkScheme is the URL scheme the app registers for game detail links.
const DeepLinkScheme = "justscores"

// DeepLink returns the link a tapped activity opens.
func DeepLink(sport models.Sport, gameID int) string {
	return fmt.Sprintf("%s://details/%s/%d", DeepLinkScheme, sport, gameID)
}

// ContentStateFromGame extracts the live fields of a game. Missing box score
// data yields zero scores and an empty progress string.
func ContentStateFromGame(game *models.Game) ContentState {
	away, home := game.Scores()
	return ContentState{
		AwayScore:      away,
		HomeScore:      home,
		ProgressString: game.ProgressString(),
	}
}

// AttributesFromGame builds the static attributes of a game's activity.
func AttributesFromGame(game *models.Game) ActivityAttributes {
	sport := game.Sport()
	return ActivityAttributes{
		GameID:       game.ID,
		AwayTeamAbbr: game.AwayTeam.Abbreviation,
		HomeTeamAbbr: game.HomeTeam.Abbreviation,
		Sport:        sport,
		AwayTeamID:   game.AwayTeam.ID,
		HomeTeamID:   game.HomeTeam.ID,
		DeepLink:     DeepLink(sport, game.ID),
	}
}
