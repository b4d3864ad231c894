// Package snapshot persists record sets in a bbolt database so a zone store can be
// rebuilt after a restart.
package snapshot

import (
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

// Stats captures high-level counts and metadata for the persistent store.
type Stats struct {
	Sets        uint64
	Version     uint64
	UpdatedUnix int64 // seconds since epoch
}

// Store abstracts the persistent set index.
//   - Put writes a set, replacing the stored one; empty sets are deleted
//   - LoadAll decodes every set and reports undecodable entries together
//   - LoadZone returns the sets at or below a zone apex, in reversed-name key order
type Store interface {
	Put(set *rrset.RecordSet) error
	Get(name domain.Name, rrType domain.RRType) (*rrset.RecordSet, bool, error)
	Delete(name domain.Name, rrType domain.RRType) error
	ReplaceAll(sets []*rrset.RecordSet) error
	LoadAll() ([]*rrset.RecordSet, error)
	LoadZone(zone string) ([]*rrset.RecordSet, error)
	Stats() Stats
	Close() error
}
