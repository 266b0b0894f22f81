package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/models"
)

const maxLogoBytes = 2 << 20

// LogoCache stores team logos where the widget can read them without network access
type LogoCache struct {
	dir    string
	client *http.Client
}

// NewLogoCache creates a cache rooted at dir. A nil client gets a 10s timeout.
func NewLogoCache(dir string, client *http.Client) *LogoCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &LogoCache{dir: dir, client: client}
}

// Path is where the logo for a team is stored
func (c *LogoCache) Path(sport models.Sport, teamID int) string {
	return filepath.Join(c.dir, "team_logos", sport.String(), strconv.Itoa(teamID)+".png")
}

// Cache downloads url and atomically replaces the stored logo for the team
func (c *LogoCache) Cache(ctx context.Context, url string, sport models.Sport, teamID int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create logo request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download logo: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}

	path := c.Path(sport, teamID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create logo dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write logo: %w", err)
	}

	log.Debug().
		Str("sport", sport.String()).
		Int("team_id", teamID).
		Str("path", path).
		Msg("team logo cached")
	return path, nil
}
