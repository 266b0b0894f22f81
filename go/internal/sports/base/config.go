package base

import "time"

// Config holds per-plugin settings, read from the sports section of the config file.
type Config struct {
	APIBaseURL        string        `yaml:"api_base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	// RequestsPerSecond limits calls to the API across every game of the sport; zero disables.
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}
