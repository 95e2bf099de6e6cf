package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"
)

// FarmTotals is the staking subsystem's aggregate view consumed at reward
// window rollover: total staked amount and total boosted stake weight.
type FarmTotals struct {
	StakeAmount sdkmath.Int `json:"stake_amount"`
	StakeBoost  sdkmath.Int `json:"stake_boost"`
}

// NewFarmTotals builds totals from raw stake figures.
func NewFarmTotals(amount, boost sdkmath.Int) FarmTotals {
	return FarmTotals{StakeAmount: amount, StakeBoost: boost}
}

// Validate verifies the totals are usable non-negative amounts.
func (f FarmTotals) Validate() error {
	if f.StakeAmount.IsNil() || f.StakeBoost.IsNil() {
		return fmt.Errorf("farm totals must be set")
	}
	if f.StakeAmount.IsNegative() || f.StakeBoost.IsNegative() {
		return fmt.Errorf("farm totals must be non-negative")
	}
	return nil
}

// StakeRecord is the read-only slice of a farm stake this module consumes for
// holder reward claims: the stake's identity, boosted weight, and lifetime.
// The per-pool claim marker attached to a stake lives with the farm and is
// reached through the FarmKeeper interface.
type StakeRecord struct {
	Id         uint64      `json:"id"`
	Boost      sdkmath.Int `json:"boost"`
	StartEpoch uint64      `json:"start_epoch"`
	EndEpoch   uint64      `json:"end_epoch"`
}

// Validate verifies the stake record fields.
func (s StakeRecord) Validate() error {
	if s.Boost.IsNil() || s.Boost.IsNegative() {
		return fmt.Errorf("stake boost must be a non-negative amount")
	}
	if s.EndEpoch < s.StartEpoch {
		return fmt.Errorf("stake window [%d, %d] is inverted", s.StartEpoch, s.EndEpoch)
	}
	return nil
}
