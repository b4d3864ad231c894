// Package zonestore keeps authoritative record sets in memory, grouped by zone.
package zonestore

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/haukened/rr-store/internal/dns/common/log"
	"github.com/haukened/rr-store/internal/dns/common/rrdata"
	"github.com/haukened/rr-store/internal/dns/common/utils"
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/repos/bloom"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

var logger = log.Component("zonestore")

var (
	// ErrNotRRSIG is returned by AttachRRSIG for records that are not signatures.
	ErrNotRRSIG = errors.New("record is not an RRSIG")

	// ErrNoSuchSet is returned when the covered record set does not exist.
	ErrNoSuchSet = errors.New("record set not found")
)

// Options size the owner-name Bloom filter.
type Options struct {
	BloomCapacity uint64
	BloomFPRate   float64
}

// ZoneStore is a concurrency-safe in-memory authority store. Record sets are
// grouped by zone apex and keyed by owner name and type.
//
// All mutations of a stored RecordSet happen under the write lock, which gives every
// set a single mutator at a time.
type ZoneStore struct {
	mu     sync.RWMutex
	zones  map[string]map[string]*rrset.RecordSet // apex → SetKey → set
	owners bloom.Filter
	opts   Options
}

// New creates an empty ZoneStore.
func New(opts Options) *ZoneStore {
	return &ZoneStore{
		zones:  make(map[string]map[string]*rrset.RecordSet),
		owners: newOwnerFilter(opts),
		opts:   opts,
	}
}

func newOwnerFilter(opts Options) bloom.Filter {
	return bloom.NewFactory().New(opts.BloomCapacity, opts.BloomFPRate)
}

// SetKey is the map and storage key of the set owning name and rrType.
func SetKey(name domain.Name, rrType domain.RRType) string {
	return name.Key() + "|" + rrType.String()
}

// ZoneOf returns the apex of the zone name belongs to.
func ZoneOf(name domain.Name) string {
	return utils.GetApexDomain(name.Key())
}

// serialLocked returns the SOA serial of zone, or 0 when it has no SOA.
func (zs *ZoneStore) serialLocked(zone string) (uint32, bool) {
	set, ok := zs.zones[zone][zone+"|"+domain.RRTypeSOA.String()]
	if !ok {
		return 0, false
	}
	for rr := range set.All() {
		if serial, ok := rrdata.SOASerial(rr.RData); ok {
			return serial, true
		}
	}
	return 0, false
}

// Serial returns the SOA serial of zone.
func (zs *ZoneStore) Serial(zone string) (uint32, bool) {
	zs.mu.RLock()
	defer zs.mu.RUnlock()
	return zs.serialLocked(utils.CanonicalDNSName(zone))
}

// Upsert inserts rr into its record set, creating the set if needed, and reports
// whether anything changed. The zone's current SOA serial is recorded as the set
// serial; an SOA record uses its own serial.
func (zs *ZoneStore) Upsert(rr domain.Record) bool {
	zone := ZoneOf(rr.Name)
	key := SetKey(rr.Name, rr.Type)

	zs.mu.Lock()
	defer zs.mu.Unlock()

	serial, _ := zs.serialLocked(zone)
	if s, ok := rrdata.SOASerial(rr.RData); ok && rr.Type == domain.RRTypeSOA {
		serial = s
	}

	set, ok := zs.zones[zone][key]
	if !ok {
		set = rrset.New(rr.Name, rr.Type, serial)
		set.SetDNSClass(rr.Class)
	}

	changed := set.Insert(rr, serial)
	if changed && !ok {
		sets, found := zs.zones[zone]
		if !found {
			sets = make(map[string]*rrset.RecordSet)
			zs.zones[zone] = sets
		}
		sets[key] = set
		zs.owners.Add([]byte(rr.Name.Key()))
	}
	if changed {
		logger.Debug(map[string]any{
			"zone":   zone,
			"record": rr.String(),
			"serial": serial,
		}, "record upserted")
	}
	return changed
}

// Delete removes the records matching rr's rdata. An ANY-typed rr is applied to every
// set at the owner name. Empty sets are dropped. It reports whether anything was removed.
func (zs *ZoneStore) Delete(rr domain.Record) bool {
	zone := ZoneOf(rr.Name)

	zs.mu.Lock()
	defer zs.mu.Unlock()

	sets, ok := zs.zones[zone]
	if !ok {
		return false
	}
	serial, _ := zs.serialLocked(zone)

	var keys []string
	if rr.Type == domain.RRTypeANY {
		for key, set := range sets {
			if set.Name().Equal(rr.Name) {
				keys = append(keys, key)
			}
		}
	} else {
		keys = []string{SetKey(rr.Name, rr.Type)}
	}

	removed := false
	for _, key := range keys {
		set, ok := sets[key]
		if !ok || !set.Remove(rr, serial) {
			continue
		}
		removed = true
		if set.IsEmpty() {
			delete(sets, key)
		}
	}
	if len(sets) == 0 {
		delete(zs.zones, zone)
	}
	return removed
}

// AttachRRSIG adds a signature to the set it covers.
func (zs *ZoneStore) AttachRRSIG(rr domain.Record) error {
	sig, ok := rr.RData.(rrdata.RRSIG)
	if !ok || rr.Type != domain.RRTypeRRSIG {
		return fmt.Errorf("%w: %s", ErrNotRRSIG, rr.Type)
	}
	zone := ZoneOf(rr.Name)
	key := SetKey(rr.Name, sig.TypeCovered)

	zs.mu.Lock()
	defer zs.mu.Unlock()

	set, ok := zs.zones[zone][key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchSet, key)
	}
	set.InsertRRSIG(rr)
	return nil
}

// PutSet stores a copy of set, replacing any set with the same owner and type.
// Empty sets are ignored.
func (zs *ZoneStore) PutSet(set *rrset.RecordSet) {
	if set.IsEmpty() {
		return
	}
	zone := ZoneOf(set.Name())

	zs.mu.Lock()
	defer zs.mu.Unlock()

	sets, ok := zs.zones[zone]
	if !ok {
		sets = make(map[string]*rrset.RecordSet)
		zs.zones[zone] = sets
	}
	sets[SetKey(set.Name(), set.RecordType())] = set.Clone()
	zs.owners.Add([]byte(set.Name().Key()))
}

// MightExist reports whether name may own records. False means it certainly does not.
func (zs *ZoneStore) MightExist(name domain.Name) bool {
	zs.mu.RLock()
	defer zs.mu.RUnlock()
	return zs.owners.MightContain([]byte(name.Key()))
}

// Lookup returns the records of the set at name and rrType. With dnssecOK the
// signatures are selected for algs as described for RecordSet.RecordsWithRRSIGs.
func (zs *ZoneStore) Lookup(name domain.Name, rrType domain.RRType, dnssecOK bool, algs domain.SupportedAlgorithms) ([]domain.Record, bool) {
	zs.mu.RLock()
	defer zs.mu.RUnlock()

	if !zs.owners.MightContain([]byte(name.Key())) {
		return nil, false
	}
	set, ok := zs.zones[ZoneOf(name)][SetKey(name, rrType)]
	if !ok {
		return nil, false
	}
	return set.Records(dnssecOK, algs), true
}

// Get returns a copy of the set at name and rrType.
func (zs *ZoneStore) Get(name domain.Name, rrType domain.RRType) (*rrset.RecordSet, bool) {
	zs.mu.RLock()
	defer zs.mu.RUnlock()

	set, ok := zs.zones[ZoneOf(name)][SetKey(name, rrType)]
	if !ok {
		return nil, false
	}
	return set.Clone(), true
}

// Sets returns copies of every set in zone, ordered by key.
func (zs *ZoneStore) Sets(zone string) []*rrset.RecordSet {
	zone = utils.CanonicalDNSName(zone)

	zs.mu.RLock()
	defer zs.mu.RUnlock()

	sets := zs.zones[zone]
	keys := make([]string, 0, len(sets))
	for key := range sets {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make([]*rrset.RecordSet, 0, len(keys))
	for _, key := range keys {
		out = append(out, sets[key].Clone())
	}
	return out
}

// RemoveZone drops every set of zone. A new Bloom filter is built from the remaining
// owners and replaces the old one.
func (zs *ZoneStore) RemoveZone(zone string) {
	zone = utils.CanonicalDNSName(zone)

	zs.mu.Lock()
	defer zs.mu.Unlock()

	if _, ok := zs.zones[zone]; !ok {
		return
	}
	delete(zs.zones, zone)
	owners := newOwnerFilter(zs.opts)
	for _, sets := range zs.zones {
		for _, set := range sets {
			owners.Add([]byte(set.Name().Key()))
		}
	}
	zs.owners = owners
}

// Zones returns the apex of every zone held, sorted.
func (zs *ZoneStore) Zones() []string {
	zs.mu.RLock()
	defer zs.mu.RUnlock()

	zones := make([]string, 0, len(zs.zones))
	for zone := range zs.zones {
		zones = append(zones, zone)
	}
	slices.Sort(zones)
	return zones
}

// Count returns the number of record sets across all zones.
func (zs *ZoneStore) Count() int {
	zs.mu.RLock()
	defer zs.mu.RUnlock()

	count := 0
	for _, zone := range zs.zones {
		count += len(zone)
	}
	return count
}
