package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// newCmdVerify checks every stored set and restores the good ones into a zone store.
func newCmdVerify(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Decode, re-encode and canonicalise every stored record set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.open()
			if err != nil {
				return err
			}
			defer store.Close()

			report, zones, errs := app.verify(store)
			out := cmd.OutOrStdout()
			for _, zone := range zones.Zones() {
				serial := "-"
				if s, ok := zones.Serial(zone); ok {
					serial = fmt.Sprint(s)
				}
				fmt.Fprintf(out, "zone %s. serial %s sets %d\n", zone, serial, len(zones.Sets(zone)))
			}
			fmt.Fprintf(out, "loaded %d verified %d failed %d\n", report.Loaded, report.Verified, report.Failed)

			for _, err := range multierr.Errors(errs) {
				logger.Error(map[string]any{"error": err.Error()}, "record set failed verification")
			}
			if errs != nil {
				return fmt.Errorf("%d record sets failed verification", report.Failed)
			}
			return nil
		},
	}
}
