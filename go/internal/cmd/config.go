package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	thescore "github.com/mcdev12/livescores/go/clients/thescore_client"
	"github.com/mcdev12/livescores/go/internal/dbconfig"
	"github.com/mcdev12/livescores/go/internal/kvstore"
	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/models"
	"github.com/mcdev12/livescores/go/internal/platform/local"
	"github.com/mcdev12/livescores/go/internal/platform/natsbridge"
	"github.com/mcdev12/livescores/go/internal/sports/base"
)

// Platform backends
const (
	PlatformLocal = "local"
	PlatformNATS  = "nats"
)

// Config is the sports section of the YAML config file
type Config struct {
	Sports struct {
		EnabledPlugins []string               `yaml:"enabled_plugins"`
		Plugins        map[string]base.Config `yaml:"plugins"`
	} `yaml:"sports"`
}

// AppConfig is everything the binary reads from the environment
type AppConfig struct {
	Port         string
	LogLevel     string
	ConfigPath   string
	PollInterval time.Duration
	// ScoresAPIURL is the sports API the browsing routes read
	ScoresAPIURL string

	Store kvstore.Config

	Platform      string
	NATS          natsbridge.Config
	ServeBridge   bool
	LogoDir       string
	MaxActivities int
	// RateLimit is the per-IP budget, per minute, for starting and stopping tracking
	RateLimit int
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func loadAppConfig() AppConfig {
	natsCfg := natsbridge.DefaultConfig()
	natsCfg.URL = getEnv("NATS_URL", natsCfg.URL)
	natsCfg.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", natsCfg.SubjectPrefix)
	natsCfg.RequestTimeout = getEnvAsDuration("NATS_REQUEST_TIMEOUT", natsCfg.RequestTimeout)

	return AppConfig{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ConfigPath:   getEnv("CONFIG_PATH", "config.yaml"),
		PollInterval: getEnvAsDuration("POLL_INTERVAL", liveactivity.DefaultPollInterval),
		ScoresAPIURL: getEnv("SCORES_API_URL", thescore.BaseURL),
		Store: kvstore.Config{
			Backend:    getEnv("KV_BACKEND", ""),
			BadgerPath: getEnv("BADGER_PATH", ""),
			SQLitePath: getEnv("SQLITE_PATH", "livescores.db"),
			Redis: kvstore.RedisConfig{
				Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
				Password:  getEnv("REDIS_PASSWORD", ""),
				DB:        getEnvAsInt("REDIS_DB", 0),
				KeyPrefix: getEnv("REDIS_KEY_PREFIX", "livescores:"),
			},
			PostgresDSN: dbconfig.NewConfigFromEnv().DSN(),
		},
		Platform:      getEnv("PLATFORM", PlatformLocal),
		NATS:          natsCfg,
		ServeBridge:   getEnvAsBool("SERVE_PLATFORM_BRIDGE", false),
		LogoDir:       getEnv("LOGO_DIR", ""),
		MaxActivities: getEnvAsInt("MAX_ACTIVITIES", local.DefaultMaxActivities),
		RateLimit:     getEnvAsInt("API_RATE_LIMIT", 60),
	}
}

// loadConfig reads the YAML file at path. A missing file enables every
// league against the public API.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", path).Msg("no config file, enabling all sports")
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	for _, sport := range models.Sports {
		cfg.Sports.EnabledPlugins = append(cfg.Sports.EnabledPlugins, sport.String())
	}
	return cfg
}

func setupSportsPlugins(config *Config) (map[string]base.SportPlugin, error) {
	plugins := make(map[string]base.SportPlugin)
	for _, key := range config.Sports.EnabledPlugins {
		pluginCfg := config.Sports.Plugins[key]
		if pluginCfg.APIBaseURL == "" {
			pluginCfg.APIBaseURL = thescore.BaseURL
		}

		if err := base.InitializePlugin(key, pluginCfg); err != nil {
			return nil, fmt.Errorf("failed to initialize plugin %s: %w", key, err)
		}

		plg, err := base.GetPlugin(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get plugin %s: %w", key, err)
		}

		log.Info().Str("plugin", key).Str("api", pluginCfg.APIBaseURL).Msg("initialized sport plugin")
		plugins[key] = plg
	}
	if len(plugins) == 0 {
		return nil, errors.New("no sport plugins enabled")
	}
	return plugins, nil
}
