package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"
)

// ShareReceipt is a caller-held claim on a pool's reserves. Besides the share
// Value it carries a mint-time snapshot of the pool (reserves, supply, mining
// accumulator) and the lock window the shares were minted under. Custody and
// transfer of receipts live outside this module; a receipt presented to
// RemoveLiquidity is the caller's proof of ownership.
type ShareReceipt struct {
	PoolId uint64      `json:"pool_id"`
	Value  sdkmath.Int `json:"value"`

	PoolX          sdkmath.Int   `json:"pool_x"`
	PoolY          sdkmath.Int   `json:"pool_y"`
	PoolLsp        sdkmath.Int   `json:"pool_lsp"`
	PoolMiningAmpt ValuePerToken `json:"pool_mining_ampt"`

	StartEpoch      uint64 `json:"start_epoch"`
	EndEpoch        uint64 `json:"end_epoch"`
	BoostMultiplier uint64 `json:"boost_multiplier"`
}

// Locked reports whether the receipt was minted under a lock window.
func (r ShareReceipt) Locked() bool {
	return r.EndEpoch > r.StartEpoch
}

// Unlocked reports whether the lock window has elapsed at the given epoch.
func (r ShareReceipt) Unlocked(epoch uint64) bool {
	return !r.Locked() || epoch >= r.EndEpoch
}

// Weight returns the boosted share weight this receipt contributes to the
// mining accumulator.
func (r ShareReceipt) Weight() sdkmath.Int {
	return r.Value.MulRaw(int64(r.BoostMultiplier))
}

// Validate verifies the receipt's internal fields.
func (r ShareReceipt) Validate() error {
	if r.Value.IsNil() || !r.Value.IsPositive() {
		return fmt.Errorf("receipt value must be positive")
	}
	if r.BoostMultiplier == 0 {
		return fmt.Errorf("receipt boost multiplier must be positive")
	}
	if r.EndEpoch < r.StartEpoch {
		return fmt.Errorf("receipt lock window [%d, %d] is inverted", r.StartEpoch, r.EndEpoch)
	}
	if err := r.PoolMiningAmpt.Validate(); err != nil {
		return fmt.Errorf("invalid receipt accumulator snapshot: %w", err)
	}
	return nil
}
