package basketball

import (
	"fmt"

	"github.com/mcdev12/livescores/go/internal/models"
	"github.com/mcdev12/livescores/go/internal/sports/base"
)

// BasketballPlugin implements the SportPlugin interface for NCAA basketball.
type BasketballPlugin struct {
	*base.APIPlugin
}

// init registers the NCAAB plugin with the base registry.
func init() {
	plugin := &BasketballPlugin{APIPlugin: base.NewAPIPlugin(models.SportNCAAB)}
	if err := base.RegisterPlugin(models.SportNCAAB.String(), plugin); err != nil {
		panic(fmt.Sprintf("Failed to register NCAAB plugin: %v", err))
	}
}
