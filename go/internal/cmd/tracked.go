package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mcdev12/livescores/go/internal/liveactivity"
	"github.com/mcdev12/livescores/go/internal/platform/natsbridge"
)

var trackedJSON bool

var trackedCmd = &cobra.Command{
	Use:   "tracked",
	Short: "Print the persisted tracked games",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := setupStore(cmd.Context(), appConfig.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		reg := liveactivity.NewRegistryStore(store).Load(cmd.Context())
		return printRegistry(cmd.OutOrStdout(), reg, trackedJSON)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Drop tracked games whose activity the remote platform no longer has",
	Long: `Loads the persisted tracked games, asks the platform reachable over NATS
for its live activities and persists only the games that still have one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := setupStore(ctx, appConfig.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		nc, err := natsbridge.Connect(appConfig.NATS)
		if err != nil {
			return err
		}
		defer nc.Close()

		pruned, err := reconcileStored(ctx, liveactivity.NewRegistryStore(store), natsbridge.NewClient(nc, appConfig.NATS))
		if err != nil {
			return err
		}
		return printRegistry(cmd.OutOrStdout(), pruned, trackedJSON)
	},
}

func init() {
	trackedCmd.Flags().BoolVar(&trackedJSON, "json", false, "print as JSON")
	reconcileCmd.Flags().BoolVar(&trackedJSON, "json", false, "print as JSON")
}

func reconcileStored(ctx context.Context, rs *liveactivity.RegistryStore, lister liveactivity.ActivityLister) (liveactivity.Registry, error) {
	loaded := rs.Load(ctx)
	pruned, changed := liveactivity.Reconcile(ctx, loaded, lister)
	if !changed {
		log.Info().Int("tracking", loaded.Len()).Msg("nothing to reconcile")
		return loaded, nil
	}
	if err := rs.Persist(ctx, pruned); err != nil {
		return nil, fmt.Errorf("failed to persist reconciled games: %w", err)
	}
	log.Info().Int("dropped", loaded.Len()-pruned.Len()).Int("tracking", pruned.Len()).Msg("reconciled tracked games")
	return pruned, nil
}

func printRegistry(w io.Writer, reg liveactivity.Registry, asJSON bool) error {
	if asJSON {
		if reg == nil {
			reg = liveactivity.Registry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reg)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tSPORT\tACTIVITY")
	for _, g := range reg {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.GameID, g.Sport, g.ActivityID)
	}
	return tw.Flush()
}
