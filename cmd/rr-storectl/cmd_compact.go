package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/haukened/rr-store/internal/dns/repos/snapshot"
)

// newCmdCompact rewrites the snapshot with only the sets that decode. Entries written
// by an unknown format version stop the rewrite instead of being dropped.
func newCmdCompact(app *application) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Drop corrupt entries and rewrite the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.open()
			if err != nil {
				return err
			}
			defer store.Close()

			sets, loadErr := store.LoadAll()
			dropped := 0
			for _, err := range multierr.Errors(loadErr) {
				if !errors.Is(err, snapshot.ErrCorrupt) {
					return fmt.Errorf("refusing to compact: %w", err)
				}
				logger.Warn(map[string]any{"error": err.Error()}, "dropping snapshot entry")
				dropped++
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "would keep %d drop %d\n", len(sets), dropped)
				return nil
			}
			if err := store.ReplaceAll(sets); err != nil {
				return fmt.Errorf("rewriting snapshot: %w", err)
			}
			fmt.Fprintf(out, "kept %d dropped %d\n", len(sets), dropped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be dropped without writing")
	return cmd
}
