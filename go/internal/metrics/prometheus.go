package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
)

const namespace = "livescores"

// PrometheusMetrics implements liveactivity.MetricsCollector using Prometheus
type PrometheusMetrics struct {
	polls         *prometheus.CounterVec
	retirements   *prometheus.CounterVec
	startFailures *prometheus.CounterVec
	trackedGames  prometheus.Gauge
}

var _ liveactivity.MetricsCollector = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the tracker metrics on reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		polls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_activity_polls_total",
			Help:      "Poll ticks by sport and outcome",
		}, []string{"sport", "outcome"}),
		retirements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_activity_retirements_total",
			Help:      "Games that stopped being tracked, by sport and reason",
		}, []string{"sport", "reason"}),
		startFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "live_activity_start_failures_total",
			Help:      "Live activities the platform refused to start",
		}, []string{"sport"}),
		trackedGames: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_activity_tracked_games",
			Help:      "Games currently tracked",
		}),
	}
}

func (m *PrometheusMetrics) RecordPoll(sport models.Sport, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.polls.WithLabelValues(sportLabel(sport), outcome).Inc()
}

func (m *PrometheusMetrics) RecordRetirement(sport models.Sport, reason liveactivity.RetireReason) {
	m.retirements.WithLabelValues(sportLabel(sport), string(reason)).Inc()
}

func (m *PrometheusMetrics) RecordStartFailure(sport models.Sport) {
	m.startFailures.WithLabelValues(sportLabel(sport)).Inc()
}

func (m *PrometheusMetrics) SetTrackedGames(n int) {
	m.trackedGames.Set(float64(n))
}

// sportLabel keeps label cardinality bounded to the known leagues
func sportLabel(sport models.Sport) string {
	if _, err := models.ParseSport(string(sport)); err != nil {
		return "unknown"
	}
	return sport.String()
}
