package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCmdStats(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := app.open()
			if err != nil {
				return err
			}
			defer store.Close()

			st := store.Stats()
			updated := "never"
			if st.UpdatedUnix > 0 {
				updated = time.Unix(st.UpdatedUnix, 0).UTC().Format(time.RFC3339)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sets %d\n", st.Sets)
			fmt.Fprintf(out, "format %d\n", st.Version)
			fmt.Fprintf(out, "updated %s\n", updated)
			return nil
		},
	}
}
