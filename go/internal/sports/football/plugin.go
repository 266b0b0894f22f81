package football

import (
	"fmt"

	"github.com/mcdev12/livescores/go/internal/models"
	"github.com/mcdev12/livescores/go/internal/sports/base"
)

// FootballPlugin implements the SportPlugin interface for the NFL and NCAA football.
type FootballPlugin struct {
	*base.APIPlugin
}

// init registers the football leagues with the base registry.
func init() {
	for _, sport := range []models.Sport{models.SportNFL, models.SportNCAAF} {
		plugin := &FootballPlugin{APIPlugin: base.NewAPIPlugin(sport)}
		if err := base.RegisterPlugin(sport.String(), plugin); err != nil {
			panic(fmt.Sprintf("Failed to register %s plugin: %v", sport, err))
		}
	}
}
