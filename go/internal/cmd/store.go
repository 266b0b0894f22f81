package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/livescores/go/internal/kvstore"
)

func setupStore(ctx context.Context, cfg kvstore.Config) (kvstore.Store, error) {
	store, err := kvstore.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store: %w", err)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = "auto"
	}
	log.Info().
		Str("backend", backend).
		Str("badger_path", cfg.BadgerPath).
		Str("sqlite_path", cfg.SQLitePath).
		Msg("kv store opened")
	return store, nil
}
