package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-store/internal/dns/common/clock"
	"github.com/haukened/rr-store/internal/dns/common/log"
	"github.com/haukened/rr-store/internal/dns/config"
	"github.com/haukened/rr-store/internal/dns/repos/snapshot"
)

const (
	version = "0.1.0-dev"
	appName = "rr-storectl"
)

var logger = log.Component(appName)

// openStore opens the snapshot database. Replaced in tests.
var openStore = func(path string) (snapshot.Store, error) {
	return snapshot.New(path, &clock.RealClock{})
}

func newRootCmd() *cobra.Command {
	app := &application{}

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Inspect and maintain rr-store record set snapshots",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&app.snapshotPath, "snapshot", "", "Snapshot database path (overrides DNS_SNAPSHOT_PATH)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if err := log.Configure(cfg.Env, cfg.Log.Level); err != nil {
			return fmt.Errorf("logging configuration error: %w", err)
		}
		if app.snapshotPath != "" {
			cfg.Snapshot.Path = app.snapshotPath
		}
		app.cfg = cfg
		return nil
	}

	cmd.AddCommand(
		newCmdVersion(),
		newCmdVerify(app),
		newCmdStats(app),
		newCmdDump(app),
		newCmdCompact(app),
		newCmdImport(app),
	)
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	err := root.Execute()
	log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
