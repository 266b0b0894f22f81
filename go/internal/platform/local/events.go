package local

import (
	"time"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
)

// EventType identifies a live activity lifecycle event
type EventType string

const (
	EventActivityStarted   EventType = "activity.started"
	EventActivityUpdated   EventType = "activity.updated"
	EventActivityEnded     EventType = "activity.ended"
	EventActivityDismissed EventType = "activity.dismissed"
)

// Event is what the widget side sees for every change to an activity
type Event struct {
	Type       EventType                        `json:"type"`
	ActivityID string                           `json:"activity_id"`
	GameID     int                              `json:"game_id"`
	Attributes *liveactivity.ActivityAttributes `json:"attributes,omitempty"`
	State      *liveactivity.ContentState       `json:"state,omitempty"`
	Timestamp  time.Time                        `json:"timestamp"`
}

// Notifier receives activity events. Implementations must not block.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier drops every event
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
