package natsbridge

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Config holds the NATS settings shared by the client, server and event publisher
type Config struct {
	URL            string
	SubjectPrefix  string        // e.g. "liveactivity"
	RequestTimeout time.Duration // applied when the caller's context has no deadline
	MaxReconnects  int
	ReconnectWait  time.Duration
}

// DefaultConfig returns default NATS bridge configuration
func DefaultConfig() Config {
	return Config{
		URL:            nats.DefaultURL,
		SubjectPrefix:  "liveactivity",
		RequestTimeout: 5 * time.Second,
		MaxReconnects:  -1, // Infinite
		ReconnectWait:  2 * time.Second,
	}
}

// Connect opens a NATS connection that logs disconnects and reconnects
func Connect(cfg Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("livescores"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}
