package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
)

// Requester is the part of *nats.Conn the client needs
type Requester interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// Client is a liveactivity.Platform reached over NATS request/reply
type Client struct {
	nc     Requester
	config Config
}

var _ liveactivity.Platform = (*Client)(nil)

func NewClient(nc Requester, cfg Config) *Client {
	return &Client{nc: nc, config: cfg}
}

func (c *Client) StartActivity(ctx context.Context, attrs liveactivity.ActivityAttributes, state liveactivity.ContentState) (string, error) {
	resp, err := c.call(ctx, OpStart, request{Attributes: &attrs, State: &state})
	if err != nil {
		return "", err
	}
	if resp.ActivityID == "" {
		return "", fmt.Errorf("%s: empty activity id in reply", OpStart)
	}
	return resp.ActivityID, nil
}

func (c *Client) UpdateActivity(ctx context.Context, activityID string, state liveactivity.ContentState) (bool, error) {
	resp, err := c.call(ctx, OpUpdate, request{ActivityID: activityID, State: &state})
	if err != nil {
		return false, err
	}
	return resp.OK, nil
}

func (c *Client) EndActivity(ctx context.Context, activityID string) error {
	_, err := c.call(ctx, OpEnd, request{ActivityID: activityID})
	return err
}

func (c *Client) ListActiveActivityIDs(ctx context.Context) ([]string, error) {
	resp, err := c.call(ctx, OpList, request{})
	if err != nil {
		return nil, err
	}
	return resp.ActivityIDs, nil
}

func (c *Client) CacheTeamLogo(ctx context.Context, url string, sport models.Sport, teamID int) (string, error) {
	resp, err := c.call(ctx, OpLogo, request{URL: url, Sport: sport, TeamID: teamID})
	if err != nil {
		return "", err
	}
	return resp.Path, nil
}

func (c *Client) call(ctx context.Context, op string, req request) (*response, error) {
	if _, ok := ctx.Deadline(); !ok && c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", op, err)
	}

	msg, err := c.nc.RequestWithContext(ctx, subject(c.config.SubjectPrefix, op), data)
	if err != nil {
		// timeouts, no responders and dropped connections: the bridge never answered
		return nil, fmt.Errorf("%s request: %w: %w", op, liveactivity.ErrPlatformUnavailable, err)
	}

	var resp response
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal %s reply: %w", op, err)
	}
	if resp.Error != "" {
		return nil, &RemoteError{Op: op, Message: resp.Error}
	}
	return &resp, nil
}
