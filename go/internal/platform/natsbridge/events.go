package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/platform/local"
)

// StreamConfig configures the JetStream stream activity events are kept in
type StreamConfig struct {
	StreamName    string
	SubjectPrefix string // events go to {SubjectPrefix}.{event type}
	MaxAge        time.Duration
	Replicas      int
}

// DefaultStreamConfig returns default activity event stream configuration
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		StreamName:    "LIVE_ACTIVITY_EVENTS",
		SubjectPrefix: "liveactivity.events",
		MaxAge:        24 * time.Hour,
		Replicas:      1,
	}
}

// EventPublisher forwards local platform events to JetStream so widgets on
// other hosts can follow them
type EventPublisher struct {
	js     jetstream.JetStream
	config StreamConfig
}

var _ local.Notifier = (*EventPublisher)(nil)

// NewEventPublisher creates the stream if needed
func NewEventPublisher(ctx context.Context, nc *nats.Conn, cfg StreamConfig) (*EventPublisher, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	p := &EventPublisher{js: js, config: cfg}
	if err := p.ensureStream(ctx); err != nil {
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	return p, nil
}

func (p *EventPublisher) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:        p.config.StreamName,
		Description: "Live activity lifecycle events",
		Subjects:    []string{fmt.Sprintf("%s.>", p.config.SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      p.config.MaxAge,
		Storage:     jetstream.FileStorage,
		Replicas:    p.config.Replicas,
	}

	if _, err := p.js.CreateOrUpdateStream(ctx, sc); err != nil {
		return fmt.Errorf("create stream: %w", err)
	}
	log.Info().Str("stream", p.config.StreamName).Msg("activity event stream ready")
	return nil
}

// Notify publishes asynchronously; failures are logged
func (p *EventPublisher) Notify(event local.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal activity event")
		return
	}

	msg := &nats.Msg{
		Subject: eventSubject(p.config.SubjectPrefix, event.Type),
		Data:    data,
		Header: nats.Header{
			"Event-Type":  []string{string(event.Type)},
			"Activity-ID": []string{event.ActivityID},
		},
	}
	future, err := p.js.PublishMsgAsync(msg, jetstream.WithMsgID(uuid.New().String()))
	if err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to publish activity event")
		return
	}

	go func() {
		select {
		case <-future.Ok():
		case err := <-future.Err():
			log.Error().Err(err).Str("subject", msg.Subject).Msg("activity event not acknowledged")
		}
	}()
}

func eventSubject(prefix string, t local.EventType) string {
	return fmt.Sprintf("%s.%s", prefix, t)
}
