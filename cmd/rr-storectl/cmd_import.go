package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/repos/zone"
	"github.com/haukened/rr-store/internal/dns/repos/zonestore"
)

// newCmdImport loads zone definitions into a zone store and writes every resulting set
// to the snapshot.
func newCmdImport(app *application) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "import PATH...",
		Short: "Import YAML, JSON or TOML zone definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := make(map[string][]domain.Record)
			for _, path := range args {
				loaded, err := loadDefinitions(path, ttl)
				if err != nil {
					return err
				}
				for root, records := range loaded {
					defs[root] = append(defs[root], records...)
				}
			}

			zones := app.newZoneStore()
			ignored := 0
			for _, root := range slices.Sorted(maps.Keys(defs)) {
				ignored += upsertZone(zones, defs[root])
			}

			store, err := app.open()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			for _, z := range zones.Zones() {
				sets := zones.Sets(z)
				for _, set := range sets {
					if err := store.Put(set); err != nil {
						return fmt.Errorf("writing %s %s: %w", set.Name(), set.RecordType(), err)
					}
				}
				fmt.Fprintf(out, "imported zone %s. sets %d\n", z, len(sets))
			}
			if ignored > 0 {
				logger.Warn(map[string]any{"ignored": ignored}, "records ignored during import")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "TTL for definitions without a ttl key")
	return cmd
}

func loadDefinitions(path string, ttl time.Duration) (map[string][]domain.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return zone.LoadDirectory(path, ttl)
	}
	root, records, err := zone.LoadFile(path, ttl)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, fmt.Errorf("%s: unsupported zone definition format", path)
	}
	return map[string][]domain.Record{root: records}, nil
}

// upsertZone applies SOA records first so the other sets carry the zone serial.
// It returns how many records were rejected or duplicated.
func upsertZone(zones *zonestore.ZoneStore, records []domain.Record) int {
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b domain.Record) int {
		return boolRank(b.Type == domain.RRTypeSOA) - boolRank(a.Type == domain.RRTypeSOA)
	})
	ignored := 0
	for _, rr := range ordered {
		if !zones.Upsert(rr) {
			ignored++
		}
	}
	return ignored
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
