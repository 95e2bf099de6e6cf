package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/vividnetwork/suiswap-contract/types"
)

// ManualEpochs is an epoch source driven explicitly. Tests use it to step the
// clock one window at a time.
type ManualEpochs struct {
	mu    sync.Mutex
	epoch uint64
}

var _ types.EpochKeeper = (*ManualEpochs)(nil)

// NewManualEpochs returns a manual epoch source starting at the given epoch.
func NewManualEpochs(start uint64) *ManualEpochs {
	return &ManualEpochs{epoch: start}
}

// CurrentEpoch returns the configured epoch.
func (m *ManualEpochs) CurrentEpoch(_ context.Context) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// Set moves the clock to the given epoch.
func (m *ManualEpochs) Set(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch = epoch
}

// Advance moves the clock forward by n epochs.
func (m *ManualEpochs) Advance(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch += n
}

// DayEpochs derives the epoch from whole days elapsed since a genesis
// instant, which is the production clock.
type DayEpochs struct {
	Genesis time.Time
}

var _ types.EpochKeeper = DayEpochs{}

// NewDayEpochs returns a day-based epoch source anchored at genesis.
func NewDayEpochs(genesis time.Time) DayEpochs {
	return DayEpochs{Genesis: genesis}
}

// CurrentEpoch returns the number of whole days since genesis, zero before it.
func (d DayEpochs) CurrentEpoch(_ context.Context) uint64 {
	elapsed := time.Since(d.Genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / (24 * time.Hour))
}
