package qsim

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/theapemachine/errnie"
)

// bytesPerAmplitude is the size of one complex128.
const bytesPerAmplitude = 16

/*
ResourceGovernor admits dense matrix allocations against a byte budget. The
full-matrix strategy and ExpandedMatrix.FullMatrix both need N² amplitudes at
once, which is the only allocation in the engine that grows faster than the
state itself.
*/
type ResourceGovernor struct {
	mu       sync.RWMutex
	maxBytes int64
	admitted int64
	rejected int64
}

func NewResourceGovernor(maxBytes int64) *ResourceGovernor {
	return &ResourceGovernor{maxBytes: maxBytes}
}

/*
DenseBytes is the memory an N×N complex matrix needs. Sizes that do not fit
in an int64 saturate at math.MaxInt64, which no budget admits.
*/
func DenseBytes(dim int) int64 {
	if dim <= 0 {
		return 0
	}

	d := int64(dim)
	if d > math.MaxInt64/bytesPerAmplitude/d {
		return math.MaxInt64
	}

	return d * d * bytesPerAmplitude
}

// Admit fails with ErrMatrixTooLarge when a dim×dim matrix exceeds the budget.
func (rg *ResourceGovernor) Admit(dim int) error {
	need := DenseBytes(dim)

	rg.mu.Lock()
	defer rg.mu.Unlock()

	if need > rg.maxBytes {
		rg.rejected++

		errnie.Warn(
			"ResourceGovernor rejected %dx%d matrix: %d bytes over budget %d (heap in use %d)",
			dim, dim, need, rg.maxBytes, heapInUse(),
		)

		return fmt.Errorf("%w: %d bytes needed, budget %d", ErrMatrixTooLarge, need, rg.maxBytes)
	}

	rg.admitted++

	return nil
}

// GetThresholds returns the byte budget.
func (rg *ResourceGovernor) GetThresholds() int64 {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	return rg.maxBytes
}

// GetUsage returns how many allocations were admitted and rejected.
func (rg *ResourceGovernor) GetUsage() (admitted, rejected int64) {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	return rg.admitted, rg.rejected
}

func heapInUse() uint64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return memStats.HeapInuse
}
