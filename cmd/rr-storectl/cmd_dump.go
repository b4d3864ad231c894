package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

// newCmdDump prints stored records in presentation form, optionally limited to one zone.
func newCmdDump(app *application) *cobra.Command {
	var (
		dnssec bool
		dau    []uint
	)
	cmd := &cobra.Command{
		Use:   "dump [zone]",
		Short: "Print stored records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.open()
			if err != nil {
				return err
			}
			defer store.Close()

			var (
				sets    []*rrset.RecordSet
				loadErr error
			)
			if len(args) == 1 {
				sets, loadErr = store.LoadZone(args[0])
			} else {
				sets, loadErr = store.LoadAll()
			}

			algs, err := supportedAlgorithms(dau)
			if err != nil {
				return err
			}

			zones := app.restore(sets)
			out := cmd.OutOrStdout()
			for _, zone := range zones.Zones() {
				for _, set := range zones.Sets(zone) {
					records, ok := zones.Lookup(set.Name(), set.RecordType(), dnssec, algs)
					if !ok {
						continue
					}
					for _, rr := range records {
						fmt.Fprintln(out, rr.String())
					}
				}
			}
			return loadErr
		},
	}
	cmd.Flags().BoolVar(&dnssec, "dnssec", false, "Include RRSIG records")
	cmd.Flags().UintSliceVar(&dau, "dau", nil, "Algorithms the reader understands; selects one RRSIG per set (RFC 6975)")
	return cmd
}

func supportedAlgorithms(codes []uint) (domain.SupportedAlgorithms, error) {
	raw := make([]byte, 0, len(codes))
	for _, c := range codes {
		if c > 255 {
			return domain.SupportedAlgorithms{}, fmt.Errorf("invalid algorithm %d", c)
		}
		raw = append(raw, byte(c))
	}
	return domain.SupportedAlgorithmsFromDAU(raw), nil
}
