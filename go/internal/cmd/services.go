package main

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	thescore "github.com/mcdev12/livescores/go/clients/thescore_client"
	"github.com/mcdev12/livescores/go/internal/gateway"
	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/metrics"
	"github.com/mcdev12/livescores/go/internal/platform/local"
	"github.com/mcdev12/livescores/go/internal/platform/natsbridge"
	"github.com/mcdev12/livescores/go/internal/schedule"
	"github.com/mcdev12/livescores/go/internal/sports/base"
)

type Services struct {
	Store    kvstore.Store
	Fetcher  *base.Fetcher
	Platform liveactivity.Platform
	Tracker  *liveactivity.Service
	Schedule *schedule.Service
	Gateway  *gateway.ConnectionManager
	Metrics  *prometheus.Registry

	// set only when NATS is in use
	nc       *nats.Conn
	bridge   *natsbridge.Server
	consumer *gateway.EventConsumer
}

func setupServices(ctx context.Context, cfg AppConfig, plugins map[string]base.SportPlugin) (*Services, error) {
	// Wire up dependency injection chain
	// Store → Platform → Tracker, with the gateway fed by platform events
	store, err := setupStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svcs := &Services{
		Store:   store,
		Fetcher: base.NewFetcher(plugins),
		Metrics: registry,
	}

	if err := svcs.setupPlatform(ctx, cfg); err != nil {
		svcs.Close()
		return nil, err
	}

	svcs.Tracker = liveactivity.NewService(liveactivity.Config{PollInterval: cfg.PollInterval}, liveactivity.Deps{
		Store:    liveactivity.NewRegistryStore(store),
		Platform: svcs.Platform,
		Fetcher:  svcs.Fetcher,
		Metrics:  metrics.NewPrometheusMetrics(registry),
	})

	scores := thescore.NewTheScoreClient(cfg.ScoresAPIURL)
	svcs.Schedule = schedule.NewService(scores, schedule.NewFavoritesStore(store), nil)
	log.Info().Str("api", scores.BaseURL()).Msg("schedule views ready")
	return svcs, nil
}

func (s *Services) setupPlatform(ctx context.Context, cfg AppConfig) error {
	if cfg.Platform == PlatformNATS || cfg.ServeBridge {
		nc, err := natsbridge.Connect(cfg.NATS)
		if err != nil {
			return err
		}
		s.nc = nc
	}

	switch cfg.Platform {
	case PlatformLocal:
		var logos *local.LogoCache
		if cfg.LogoDir != "" {
			logos = local.NewLogoCache(cfg.LogoDir, nil)
		}

		// the gateway dismisses through the platform and receives its events
		notifier := &fanout{}
		platform := local.NewPlatform(local.Config{MaxActivities: cfg.MaxActivities}, notifier, logos)
		s.Gateway = gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), platform)
		notifier.add(s.Gateway)

		if s.nc != nil {
			publisher, err := natsbridge.NewEventPublisher(ctx, s.nc, natsbridge.DefaultStreamConfig())
			if err != nil {
				return fmt.Errorf("failed to set up event publisher: %w", err)
			}
			notifier.add(publisher)
		}
		if cfg.ServeBridge {
			s.bridge = natsbridge.NewServer(s.nc, platform, cfg.NATS)
		}
		s.Platform = platform

	case PlatformNATS:
		s.Platform = natsbridge.NewClient(s.nc, cfg.NATS)
		s.Gateway = gateway.NewConnectionManager(gateway.DefaultConnectionConfig(), nil)
		consumer, err := gateway.NewEventConsumer(ctx, s.nc, s.Gateway, gateway.DefaultJetStreamConsumerConfig())
		if err != nil {
			log.Warn().Err(err).Msg("activity event stream unavailable, gateway will stay quiet")
		} else {
			s.consumer = consumer
		}

	default:
		return fmt.Errorf("unknown platform: %s (supported: %s, %s)", cfg.Platform, PlatformLocal, PlatformNATS)
	}

	log.Info().Str("platform", cfg.Platform).Bool("bridge", cfg.ServeBridge).Msg("live activity platform ready")
	return nil
}

// Start runs the background pieces and resumes tracking
func (s *Services) Start(ctx context.Context) error {
	go s.Gateway.Start(ctx)

	if s.consumer != nil {
		go func() {
			if err := s.consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}
	if s.bridge != nil {
		if err := s.bridge.Start(ctx); err != nil {
			return fmt.Errorf("failed to start platform bridge: %w", err)
		}
	}
	return s.Tracker.Start(ctx)
}

func (s *Services) Close() {
	if s.Tracker != nil {
		s.Tracker.Close()
	}
	if s.bridge != nil {
		s.bridge.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kv store")
		}
	}
}

// fanout forwards platform events to every sink. Sinks are added during
// setup, before any activity exists.
type fanout struct {
	sinks []local.Notifier
}

func (f *fanout) add(n local.Notifier) {
	f.sinks = append(f.sinks, n)
}

func (f *fanout) Notify(event local.Event) {
	for _, n := range f.sinks {
		n.Notify(event)
	}
}
