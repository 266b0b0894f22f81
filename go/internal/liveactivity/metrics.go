package liveactivity

import "github.com/mcdev12/livescores/go/internal/models"

// RetireReason says why a game stopped being tracked
type RetireReason string

const (
	RetireFinished     RetireReason = "finished"
	RetireActivityGone RetireReason = "activity_gone"
	RetireUserStop     RetireReason = "user_stop"
	RetireReconciled   RetireReason = "reconciled"
)

// Poll outcomes
const (
	PollUpdated      = "updated"
	PollFetchError   = "fetch_error"
	PollPlatformDown = "platform_unavailable"
	PollStale        = "stale"
)

// MetricsCollector defines the interface for collecting tracker metrics
type MetricsCollector interface {
	RecordPoll(sport models.Sport, outcome string)
	RecordRetirement(sport models.Sport, reason RetireReason)
	RecordStartFailure(sport models.Sport)
	SetTrackedGames(n int)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) RecordPoll(models.Sport, string)             {}
func (NoOpMetricsCollector) RecordRetirement(models.Sport, RetireReason) {}
func (NoOpMetricsCollector) RecordStartFailure(models.Sport)             {}
func (NoOpMetricsCollector) SetTrackedGames(int)                         {}
