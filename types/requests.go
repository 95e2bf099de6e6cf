package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolAttributes is the full parameter set for creating a pool.
type PoolAttributes struct {
	PoolType         PoolType
	HolderRewardType HolderRewardType
	FeeDirection     FeeDirection

	DenomX string
	DenomY string

	AdminFeeBps    uint64
	LpFeeBps       uint64
	ThFeeBps       uint64
	WithdrawFeeBps uint64

	// Amp is the stableswap amplification coefficient, zero for constant
	// product pools.
	Amp uint64

	DecimalsX uint32
	DecimalsY uint32

	BasisX sdkmath.Int
	BasisY sdkmath.Int

	FreezeBits uint32
}

// Validate verifies the attribute set describes a creatable pool.
func (a PoolAttributes) Validate() error {
	if err := sdk.ValidateDenom(a.DenomX); err != nil {
		return fmt.Errorf("invalid denom x: %w", err)
	}
	if err := sdk.ValidateDenom(a.DenomY); err != nil {
		return fmt.Errorf("invalid denom y: %w", err)
	}
	if a.DenomX == a.DenomY {
		return fmt.Errorf("pool assets must differ, got %s twice", a.DenomX)
	}
	if a.FeeDirection != FeeCollectX && a.FeeDirection != FeeCollectY {
		return fmt.Errorf("unknown fee direction %q", a.FeeDirection)
	}
	if a.HolderRewardType != RewardDistributeAsBalance && a.HolderRewardType != RewardAutoBuyback {
		return fmt.Errorf("unknown holder reward type %q", a.HolderRewardType)
	}
	if err := ValidateFeeBps(a.AdminFeeBps, a.LpFeeBps, a.ThFeeBps, a.WithdrawFeeBps); err != nil {
		return err
	}
	if a.DecimalsX > MaxDecimals || a.DecimalsY > MaxDecimals {
		return fmt.Errorf("asset decimals capped at %d", MaxDecimals)
	}
	if a.FreezeBits&^FreezeAllBits != 0 {
		return fmt.Errorf("unknown freeze bits %#x", a.FreezeBits&^FreezeAllBits)
	}
	for _, basis := range []struct {
		name string
		amt  sdkmath.Int
	}{{"basis_x", a.BasisX}, {"basis_y", a.BasisY}} {
		if basis.amt.IsNil() || basis.amt.IsNegative() {
			return fmt.Errorf("%s must be a non-negative amount", basis.name)
		}
		if !basis.amt.IsUint64() {
			return fmt.Errorf("%s exceeds the amount domain", basis.name)
		}
	}
	switch a.PoolType {
	case PoolTypeConstantProduct:
		if a.Amp != 0 {
			return fmt.Errorf("amplification is only meaningful for stable pools")
		}
	case PoolTypeStableSwap:
		if a.Amp < MinAmp || a.Amp > MaxAmp {
			return fmt.Errorf("amplification %d out of range [%d, %d]", a.Amp, MinAmp, MaxAmp)
		}
	default:
		return fmt.Errorf("unknown pool type %q", a.PoolType)
	}
	return nil
}
