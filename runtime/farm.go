package runtime

import (
	"context"
	"sync"

	"github.com/vividnetwork/suiswap-contract/types"
)

type markerKey struct {
	stakeID uint64
	poolID  uint64
}

// Farm is an in-memory stand-in for the staking subsystem's claim-marker
// store: the per-(stake, pool) "claimed at epoch" value the reward manager
// reads and writes.
type Farm struct {
	mu      sync.Mutex
	markers map[markerKey]uint64
}

var _ types.FarmKeeper = (*Farm)(nil)

// NewFarm returns an empty marker store.
func NewFarm() *Farm {
	return &Farm{markers: make(map[markerKey]uint64)}
}

// GetClaimMarker returns the marker for a (stake, pool) pair if present.
func (f *Farm) GetClaimMarker(_ context.Context, stakeID, poolID uint64) (uint64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	epoch, ok := f.markers[markerKey{stakeID, poolID}]
	return epoch, ok, nil
}

// SetClaimMarker records the epoch a stake last claimed a pool's reward.
func (f *Farm) SetClaimMarker(_ context.Context, stakeID, poolID uint64, epoch uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markers[markerKey{stakeID, poolID}] = epoch
	return nil
}

// ClearClaimMarker removes a marker. Clearing an absent marker is a no-op.
func (f *Farm) ClearClaimMarker(_ context.Context, stakeID, poolID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.markers, markerKey{stakeID, poolID})
	return nil
}
