package natsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
)

const serverQueue = "livescores-platform"

// Server exposes a liveactivity.Platform to remote trackers over NATS
type Server struct {
	nc       *nats.Conn
	platform liveactivity.Platform
	config   Config
	sub      *nats.Subscription
}

func NewServer(nc *nats.Conn, platform liveactivity.Platform, cfg Config) *Server {
	return &Server{nc: nc, platform: platform, config: cfg}
}

// Start subscribes to every operation subject. Requests are served until ctx
// is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	sub, err := s.nc.QueueSubscribe(s.config.SubjectPrefix+".*", serverQueue, func(msg *nats.Msg) {
		op := strings.TrimPrefix(msg.Subject, s.config.SubjectPrefix+".")

		reqCtx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()

		reply := s.handle(reqCtx, op, msg.Data)
		if err := msg.Respond(reply); err != nil {
			log.Error().Err(err).Str("op", op).Msg("failed to respond to platform request")
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.config.SubjectPrefix, err)
	}
	s.sub = sub

	log.Info().Str("prefix", s.config.SubjectPrefix).Msg("platform bridge serving")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Server) Stop() {
	if s.sub == nil {
		return
	}
	if err := s.sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) && !errors.Is(err, nats.ErrBadSubscription) {
		log.Warn().Err(err).Msg("failed to drain platform subscription")
	}
}

// handle dispatches one request and returns the encoded reply
func (s *Server) handle(ctx context.Context, op string, data []byte) []byte {
	var req request
	resp := response{}

	if err := json.Unmarshal(data, &req); err != nil {
		resp.Error = fmt.Sprintf("invalid request: %v", err)
		return encode(resp)
	}

	var err error
	switch op {
	case OpStart:
		if req.Attributes == nil {
			err = errors.New("attributes are required")
			break
		}
		state := liveactivity.ContentState{}
		if req.State != nil {
			state = *req.State
		}
		resp.ActivityID, err = s.platform.StartActivity(ctx, *req.Attributes, state)
	case OpUpdate:
		state := liveactivity.ContentState{}
		if req.State != nil {
			state = *req.State
		}
		resp.OK, err = s.platform.UpdateActivity(ctx, req.ActivityID, state)
	case OpEnd:
		err = s.platform.EndActivity(ctx, req.ActivityID)
	case OpList:
		resp.ActivityIDs, err = s.platform.ListActiveActivityIDs(ctx)
	case OpLogo:
		resp.Path, err = s.platform.CacheTeamLogo(ctx, req.URL, req.Sport, req.TeamID)
	default:
		err = fmt.Errorf("unknown operation %q", op)
	}

	if err != nil {
		log.Debug().Err(err).Str("op", op).Msg("platform request failed")
		resp = response{Error: err.Error()}
	}
	return encode(resp)
}

func encode(resp response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"error":"failed to encode reply"}`)
	}
	return data
}
