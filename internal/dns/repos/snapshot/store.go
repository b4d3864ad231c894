package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
	"go.uber.org/multierr"

	"github.com/haukened/rr-store/internal/dns/common/clock"
	"github.com/haukened/rr-store/internal/dns/common/log"
	"github.com/haukened/rr-store/internal/dns/common/utils"
	"github.com/haukened/rr-store/internal/dns/domain"
	"github.com/haukened/rr-store/internal/dns/rrset"
)

var logger = log.Component("snapshot")

var (
	bucketSets = []byte("rrsets")
	bucketMeta = []byte("meta")

	metaVersion = []byte("version")
	metaUpdated = []byte("updated")
)

// boltStore implements Store using bbolt. Keys are the reversed owner name and the
// type mnemonic, e.g. "com.example.www|A", so every zone occupies one key range.
type boltStore struct {
	db    *bbolt.DB
	clock clock.Clock
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
// clk stamps the meta bucket on every write.
func New(path string, clk clock.Clock) (Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSets); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db, clock: clk}, nil
}

// setKey builds the storage key of a set.
func setKey(name domain.Name, rrType domain.RRType) []byte {
	return []byte(utils.ReverseDNSName(name.Key()) + "|" + rrType.String())
}

func (s *boltStore) Close() error { return s.db.Close() }

func (s *boltStore) Put(set *rrset.RecordSet) error {
	key := setKey(set.Name(), set.RecordType())
	if set.IsEmpty() {
		return s.update(func(b *bbolt.Bucket) error { return b.Delete(key) })
	}
	value, err := EncodeSet(set)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.update(func(b *bbolt.Bucket) error { return b.Put(key, value) })
}

func (s *boltStore) Delete(name domain.Name, rrType domain.RRType) error {
	key := setKey(name, rrType)
	return s.update(func(b *bbolt.Bucket) error { return b.Delete(key) })
}

// ReplaceAll swaps the whole bucket for sets in a single transaction.
func (s *boltStore) ReplaceAll(sets []*rrset.RecordSet) error {
	encoded := make(map[string][]byte, len(sets))
	for _, set := range sets {
		if set.IsEmpty() {
			continue
		}
		value, err := EncodeSet(set)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", set, err)
		}
		encoded[string(setKey(set.Name(), set.RecordType()))] = value
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketSets); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketSets)
		if err != nil {
			return err
		}
		for k, v := range encoded {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return s.setMeta(tx)
	})
}

// update runs fn against the sets bucket and stamps the meta bucket in the same transaction.
func (s *boltStore) update(fn func(b *bbolt.Bucket) error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := fn(tx.Bucket(bucketSets)); err != nil {
			return err
		}
		return s.setMeta(tx)
	})
}

func (s *boltStore) setMeta(tx *bbolt.Tx) error {
	b := tx.Bucket(bucketMeta)
	vbuf := make([]byte, 8)
	ubuf := make([]byte, 8)
	binary.BigEndian.PutUint64(vbuf, uint64(FormatVersion))
	//gosec:disable G115 -- unix seconds are positive for any real clock.
	binary.BigEndian.PutUint64(ubuf, uint64(s.clock.Now().Unix()))
	if err := b.Put(metaVersion, vbuf); err != nil {
		return err
	}
	return b.Put(metaUpdated, ubuf)
}

func (s *boltStore) Get(name domain.Name, rrType domain.RRType) (*rrset.RecordSet, bool, error) {
	var set *rrset.RecordSet
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSets).Get(setKey(name, rrType))
		if v == nil {
			return nil
		}
		decoded, err := DecodeSet(v)
		if err != nil {
			return err
		}
		set = decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return set, set != nil, nil
}

// LoadAll decodes every stored set. Entries that fail to decode are skipped and
// their errors combined into the returned error; the decodable sets are still returned.
func (s *boltStore) LoadAll() ([]*rrset.RecordSet, error) {
	var (
		sets []*rrset.RecordSet
		errs error
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSets).ForEach(func(k, v []byte) error {
			set, err := DecodeSet(v)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("snapshot key %q: %w", k, err))
				return nil
			}
			sets = append(sets, set)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if errs != nil {
		logger.Warn(map[string]any{
			"loaded": len(sets),
			"failed": len(multierr.Errors(errs)),
		}, "snapshot entries could not be decoded")
	}
	return sets, errs
}

// LoadZone walks the key range of zone with a cursor, in key order.
func (s *boltStore) LoadZone(zone string) ([]*rrset.RecordSet, error) {
	prefix := []byte(utils.ReverseDNSName(zone))

	var (
		sets []*rrset.RecordSet
		errs error
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketSets).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if !inZone(k, prefix) {
				continue
			}
			set, err := DecodeSet(v)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("snapshot key %q: %w", k, err))
				continue
			}
			sets = append(sets, set)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, errs
}

// inZone rejects keys that share the prefix only textually, such as
// "com.examples|A" for zone "com.example".
func inZone(key, prefix []byte) bool {
	if len(prefix) == 0 || len(key) == len(prefix) {
		return true
	}
	next := key[len(prefix)]
	return next == '|' || next == '.'
}

func (s *boltStore) Stats() Stats {
	st := Stats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketSets); b != nil {
			//gosec:disable G115 -- key counts are never negative.
			st.Sets = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(metaVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(metaUpdated); len(v) == 8 {
				//gosec:disable G115 -- written from a unix timestamp.
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

var _ Store = (*boltStore)(nil)
