package config

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshRateClampsOnWrite(t *testing.T) {
	r := NewRefreshRate(10)
	assert.Equal(t, MaxRefreshSeconds, r.Seconds())

	r.Set(0.001)
	assert.Equal(t, MinRefreshSeconds, r.Seconds())

	r.Set(math.NaN())
	assert.Equal(t, DefaultRefreshSeconds, r.Seconds())
}

func TestRefreshRateAdjustStaysInRange(t *testing.T) {
	r := NewRefreshRate(0.5)
	assert.InDelta(t, 0.6, r.Adjust(0.1), 1e-9)

	r.Set(MinRefreshSeconds)
	assert.Equal(t, MinRefreshSeconds, r.Adjust(-0.1))

	r.Set(MaxRefreshSeconds)
	assert.Equal(t, MaxRefreshSeconds, r.Adjust(0.1))
}

func TestRefreshRateConcurrentReadWrite(t *testing.T) {
	r := NewRefreshRate(0.5)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			r.Set(0.1 + float64(i%50)/10)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			got := r.Seconds()
			assert.GreaterOrEqual(t, got, MinRefreshSeconds)
			assert.LessOrEqual(t, got, MaxRefreshSeconds)
		}
	}()
	wg.Wait()
}
