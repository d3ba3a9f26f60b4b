package config

import (
	"math"
	"sync/atomic"
)

// RefreshRate is the sampling interval shared between the UI (writer) and the
// sampler (reader). The sampler re-reads it each cycle, so changes take
// effect on the next cycle rather than immediately. Single writer, single
// reader; an atomic load/store of the float bits is all the synchronization
// this needs.
type RefreshRate struct {
	bits atomic.Uint64
}

// NewRefreshRate returns a rate initialized to the given interval, clamped to
// the supported range.
func NewRefreshRate(seconds float64) *RefreshRate {
	r := &RefreshRate{}
	r.Set(seconds)
	return r
}

// Seconds returns the current interval.
func (r *RefreshRate) Seconds() float64 {
	return math.Float64frombits(r.bits.Load())
}

// Set stores a new interval, clamped to [MinRefreshSeconds, MaxRefreshSeconds].
func (r *RefreshRate) Set(seconds float64) {
	if math.IsNaN(seconds) {
		seconds = DefaultRefreshSeconds
	}
	r.bits.Store(math.Float64bits(ClampRefresh(seconds)))
}

// Adjust shifts the interval by delta seconds and returns the new value.
func (r *RefreshRate) Adjust(delta float64) float64 {
	r.Set(r.Seconds() + delta)
	return r.Seconds()
}
