// Package bloom provides the probabilistic owner-name index consulted by the zone
// store before it takes its lock.
package bloom

// Sizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type Sizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// Filter is the minimal interface the zone store needs from a Bloom filter.
type Filter interface {
	Add(key []byte)
	MightContain(key []byte) bool
	Clear()
	// Count returns how many keys were added since the last Clear.
	Count() uint64
}

// Factory builds filters sized for a dataset.
type Factory interface {
	New(capacity uint64, fpRate float64) Filter
}
