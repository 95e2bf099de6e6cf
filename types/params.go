package types

import (
	fmt "fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// DefaultHolderRewardNepoch is the default holder reward window length.
	DefaultHolderRewardNepoch uint64 = 7

	// DefaultBoostMultiplier is the share weight multiplier for unlocked deposits.
	DefaultBoostMultiplier uint64 = 100

	// MaxBoostMultiplier bounds schedule multipliers to keep weights in a sane range.
	MaxBoostMultiplier uint64 = 1_000_000
)

// BoostTier maps a lock duration offered at deposit time to the boost
// multiplier granted for it.
type BoostTier struct {
	LockEpochs uint64 `json:"lock_epochs"`
	Multiplier uint64 `json:"multiplier"`
}

// Params is the registry configuration: holder reward window length, default
// fee rates for permissionless pools, and the lock boost schedule.
type Params struct {
	HolderRewardNepoch     uint64      `json:"holder_reward_nepoch"`
	DefaultAdminFeeBps     uint64      `json:"default_admin_fee_bps"`
	DefaultLpFeeBps        uint64      `json:"default_lp_fee_bps"`
	DefaultThFeeBps        uint64      `json:"default_th_fee_bps"`
	DefaultWithdrawFeeBps  uint64      `json:"default_withdraw_fee_bps"`
	DefaultBoostMultiplier uint64      `json:"default_boost_multiplier"`
	BoostSchedule          []BoostTier `json:"boost_schedule,omitempty"`
	MiningRewardDenom      string      `json:"mining_reward_denom,omitempty"`
}

// DefaultParams returns the registry defaults: weekly reward windows, a
// 0.3% trade fee split 50/200/50 bps across admin/lp/holders, a 10 bps
// withdraw fee, and lock boosts of 1.2x/1.5x/2x at 30/90/180 epochs.
func DefaultParams() Params {
	return Params{
		HolderRewardNepoch:     DefaultHolderRewardNepoch,
		DefaultAdminFeeBps:     50,
		DefaultLpFeeBps:        200,
		DefaultThFeeBps:        50,
		DefaultWithdrawFeeBps:  10,
		DefaultBoostMultiplier: DefaultBoostMultiplier,
		BoostSchedule: []BoostTier{
			{LockEpochs: 30, Multiplier: 120},
			{LockEpochs: 90, Multiplier: 150},
			{LockEpochs: 180, Multiplier: 200},
		},
	}
}

// Validate verifies the registry parameters.
func (p Params) Validate() error {
	if p.HolderRewardNepoch == 0 {
		return fmt.Errorf("holder reward window length must be positive")
	}
	if err := ValidateFeeBps(p.DefaultAdminFeeBps, p.DefaultLpFeeBps, p.DefaultThFeeBps, p.DefaultWithdrawFeeBps); err != nil {
		return fmt.Errorf("invalid default fees: %w", err)
	}
	if p.DefaultBoostMultiplier == 0 || p.DefaultBoostMultiplier > MaxBoostMultiplier {
		return fmt.Errorf("default boost multiplier %d out of range [1, %d]", p.DefaultBoostMultiplier, MaxBoostMultiplier)
	}
	prev := uint64(0)
	for _, tier := range p.BoostSchedule {
		if tier.LockEpochs <= prev {
			return fmt.Errorf("boost schedule lock epochs must be positive and strictly increasing, got %d after %d", tier.LockEpochs, prev)
		}
		if tier.Multiplier == 0 || tier.Multiplier > MaxBoostMultiplier {
			return fmt.Errorf("boost multiplier %d out of range [1, %d]", tier.Multiplier, MaxBoostMultiplier)
		}
		prev = tier.LockEpochs
	}
	if p.MiningRewardDenom != "" {
		if err := sdk.ValidateDenom(p.MiningRewardDenom); err != nil {
			return fmt.Errorf("invalid mining reward denom: %w", err)
		}
	}
	return nil
}

// BoostMultiplierFor resolves the boost multiplier for a requested lock
// duration. Zero lock epochs grants the default multiplier; any other value
// must match a schedule tier exactly.
func (p Params) BoostMultiplierFor(lockEpochs uint64) (uint64, error) {
	if lockEpochs == 0 {
		return p.DefaultBoostMultiplier, nil
	}
	for _, tier := range p.BoostSchedule {
		if tier.LockEpochs == lockEpochs {
			return tier.Multiplier, nil
		}
	}
	return 0, fmt.Errorf("no boost tier for a %d epoch lock", lockEpochs)
}
