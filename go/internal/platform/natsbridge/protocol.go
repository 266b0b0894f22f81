package natsbridge

import (
	"fmt"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
)

// Operations, appended to the subject prefix
const (
	OpStart  = "start"
	OpUpdate = "update"
	OpEnd    = "end"
	OpList   = "list"
	OpLogo   = "logo"
)

func subject(prefix, op string) string {
	return fmt.Sprintf("%s.%s", prefix, op)
}

type request struct {
	ActivityID string                           `json:"activity_id,omitempty"`
	Attributes *liveactivity.ActivityAttributes `json:"attributes,omitempty"`
	State      *liveactivity.ContentState       `json:"state,omitempty"`
	URL        string                           `json:"url,omitempty"`
	Sport      models.Sport                     `json:"sport,omitempty"`
	TeamID     int                              `json:"team_id,omitempty"`
}

type response struct {
	Error       string   `json:"error,omitempty"`
	ActivityID  string   `json:"activity_id,omitempty"`
	OK          bool     `json:"ok,omitempty"`
	ActivityIDs []string `json:"activity_ids,omitempty"`
	Path        string   `json:"path,omitempty"`
}

// RemoteError is a failure reported by the platform on the far side of the bridge
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s failed: %s", e.Op, e.Message)
}
