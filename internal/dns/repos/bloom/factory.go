package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"
)

type factory struct {
	sizer Sizer
}

// NewFactory returns a Factory that sizes filters from capacity and FP rate.
func NewFactory() Factory { return factory{sizer: NewSizer()} }

// New constructs a filter sized for capacity keys at the given false-positive rate.
func (f factory) New(capacity uint64, fpRate float64) Filter {
	m, k := f.sizer.Size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
