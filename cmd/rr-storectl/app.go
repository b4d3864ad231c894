package main

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/haukened/rr-store/internal/dns/config"
	"github.com/haukened/rr-store/internal/dns/repos/snapshot"
	"github.com/haukened/rr-store/internal/dns/repos/zonestore"
	"github.com/haukened/rr-store/internal/dns/rrset"
	"github.com/haukened/rr-store/internal/dns/services/canonical"
)

// errRoundTrip is reported when a set does not survive snapshot encoding unchanged.
var errRoundTrip = errors.New("snapshot round trip changed the record set")

// application holds what every subcommand shares.
type application struct {
	cfg          *config.AppConfig
	snapshotPath string
}

func (a *application) open() (snapshot.Store, error) {
	store, err := openStore(a.cfg.Snapshot.Path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", a.cfg.Snapshot.Path, err)
	}
	return store, nil
}

func (a *application) newZoneStore() *zonestore.ZoneStore {
	return zonestore.New(zonestore.Options{
		BloomCapacity: uint64(a.cfg.Bloom.Capacity),
		BloomFPRate:   a.cfg.Bloom.FPRate,
	})
}

func (a *application) newCanonical() (*canonical.Service, error) {
	cache, err := canonical.NewCache(a.cfg.Canonical.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("creating canonical cache: %w", err)
	}
	return canonical.New(cache), nil
}

// restore fills a zone store from sets.
func (a *application) restore(sets []*rrset.RecordSet) *zonestore.ZoneStore {
	zones := a.newZoneStore()
	for _, set := range sets {
		zones.PutSet(set)
	}
	return zones
}

// verifySet checks that set survives the snapshot codec and that its canonical form
// decodes back to the same records.
func verifySet(canon *canonical.Service, set *rrset.RecordSet) error {
	b, err := snapshot.EncodeSet(set)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	back, err := snapshot.DecodeSet(b)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	if !back.Equal(set) {
		return errRoundTrip
	}
	return canon.Verify(set)
}

// verifyReport summarises a verify run.
type verifyReport struct {
	Loaded   int
	Verified int
	Failed   int
}

// verify loads every set, checks each one and restores the good ones into a zone store.
// The returned error combines load and verification failures.
func (a *application) verify(store snapshot.Store) (verifyReport, *zonestore.ZoneStore, error) {
	var report verifyReport

	canon, err := a.newCanonical()
	if err != nil {
		return report, nil, err
	}

	sets, errs := store.LoadAll()
	report.Loaded = len(sets)
	report.Failed = len(multierr.Errors(errs))

	good := make([]*rrset.RecordSet, 0, len(sets))
	for _, set := range sets {
		if err := verifySet(canon, set); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", set.Name(), set.RecordType(), err))
			report.Failed++
			continue
		}
		good = append(good, set)
	}
	report.Verified = len(good)

	hits, misses, evictions := canon.Stats()
	logger.Debug(map[string]any{
		"cache_hits":      hits,
		"cache_misses":    misses,
		"cache_evictions": evictions,
	}, "canonical cache")

	return report, a.restore(good), errs
}
