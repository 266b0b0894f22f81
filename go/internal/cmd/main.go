package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	// sport plugins register themselves
	_ "github.com/mcdev12/livescores/go/internal/sports/basketball"
	_ "github.com/mcdev12/livescores/go/internal/sports/football"
)

var (
	appConfig  AppConfig
	configPath string
	jsonLogs   bool
)

var rootCmd = &cobra.Command{
	Use:   "livescores",
	Short: "Mirror live game scores to lock-screen live activities",
	Long: `livescores tracks games the user chose to follow, polls the sports API
every few seconds and pushes the score and clock to each game's live activity
until the game is final or the activity disappears.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(appConfig.LogLevel, jsonLogs)
		if configPath != "" {
			appConfig.ConfigPath = configPath
		}
		return nil
	},
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	appConfig = loadAppConfig()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the sports YAML config (default $CONFIG_PATH or config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON instead of console output")

	rootCmd.AddCommand(serveCmd, trackedCmd, reconcileCmd)
}

func setupLogging(level string, jsonOutput bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if !jsonOutput {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
