package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// PoolType selects the pricing curve a pool trades on.
type PoolType string

const (
	// PoolTypeConstantProduct prices trades on x*y=k.
	PoolTypeConstantProduct PoolType = "constant_product"
	// PoolTypeStableSwap prices trades on an amplified stable invariant.
	PoolTypeStableSwap PoolType = "stable_swap"
)

// Side identifies one of the two assets of a pool.
type Side string

const (
	// SideX is the pool's first asset.
	SideX Side = "x"
	// SideY is the pool's second asset.
	SideY Side = "y"
)

// Opposite returns the other asset side.
func (s Side) Opposite() Side {
	if s == SideX {
		return SideY
	}
	return SideX
}

// FeeDirection names the asset side trade fees are collected in.
type FeeDirection string

const (
	// FeeCollectX collects trade fees in the pool's X asset.
	FeeCollectX FeeDirection = "collect_x"
	// FeeCollectY collects trade fees in the pool's Y asset.
	FeeCollectY FeeDirection = "collect_y"
)

// Matches reports whether fees are collected on the given asset side.
func (d FeeDirection) Matches(side Side) bool {
	return (d == FeeCollectX && side == SideX) || (d == FeeCollectY && side == SideY)
}

// HolderRewardType selects what happens to collected holder fees.
type HolderRewardType string

const (
	// RewardDistributeAsBalance makes holder fees claimable as-is per window.
	RewardDistributeAsBalance HolderRewardType = "distribute_as_balance"
	// RewardAutoBuyback converts collected holder fees into the opposite asset
	// through the pool's own no-fee pricing path as they arrive.
	RewardAutoBuyback HolderRewardType = "auto_buyback"
)

// Freeze bits. A set bit rejects the matching operation for everyone but the
// pool owner.
const (
	FreezeSwapBit uint32 = 1 << iota
	FreezeAddLiquidityBit
	FreezeRemoveLiquidityBit

	// FreezeAllBits is every freeze bit at once.
	FreezeAllBits = FreezeSwapBit | FreezeAddLiquidityBit | FreezeRemoveLiquidityBit
)

const (
	// BpsDenominator is the basis-point scale for all fee rates.
	BpsDenominator = 10_000

	// MinimumLiquidity is the share amount permanently locked by the bootstrap
	// deposit. The first deposit must mint strictly more than this.
	MinimumLiquidity = 1_000

	// MinAmp and MaxAmp bound the stableswap amplification coefficient.
	MinAmp uint64 = 1
	MaxAmp uint64 = 1_000_000

	// MaxDecimals bounds the per-asset decimal places accepted at pool creation.
	MaxDecimals uint32 = 18

	// CurrentPoolVersion is the schema version stamped on new pools. Operations
	// reject pools persisted under any other version until migrated.
	CurrentPoolVersion uint64 = 1
)

// HolderRewardState is the per-pool epoch-windowed holder reward bucket.
// X and Y are the distributable balances of the current window; XSupply and
// YSupply snapshot those balances at window start and stay fixed while claims
// drain X and Y. TotalStakeAmount and TotalStakeBoost are the farm snapshot
// taken at the same instant.
type HolderRewardState struct {
	Type             HolderRewardType `json:"type"`
	X                sdkmath.Int      `json:"x"`
	Y                sdkmath.Int      `json:"y"`
	XSupply          sdkmath.Int      `json:"x_supply"`
	YSupply          sdkmath.Int      `json:"y_supply"`
	Nepoch           uint64           `json:"nepoch"`
	StartEpoch       uint64           `json:"start_epoch"`
	EndEpoch         uint64           `json:"end_epoch"`
	TotalStakeAmount sdkmath.Int      `json:"total_stake_amount"`
	TotalStakeBoost  sdkmath.Int      `json:"total_stake_boost"`
}

// MiningState carries the per-pool share-mining configuration and accumulator.
// An empty Treasury means reward disbursement is not authorized for the pool;
// accrual still runs so a treasury can be attached later without losing history.
type MiningState struct {
	Treasury    string        `json:"treasury,omitempty"`
	RewardDenom string        `json:"reward_denom,omitempty"`
	Speed       uint64        `json:"speed"`
	Ampt        ValuePerToken `json:"ampt"`
	LastEpoch   uint64        `json:"last_epoch"`
}

// Pool is one exchange market between two asset denominations.
//
// ReserveX/ReserveY are the tradable balances. AdminX/AdminY hold collected
// admin fees, ThX/ThY hold trade-period holder fees not yet promoted into a
// reward window. BasisX/BasisY are constant virtual-liquidity offsets: every
// pricing computation uses reserve+basis, never the raw reserve alone, but the
// offsets are never paid out.
type Pool struct {
	Id         uint64   `json:"id"`
	PoolType   PoolType `json:"pool_type"`
	Owner      string   `json:"owner"`
	Version    uint64   `json:"version"`
	FreezeBits uint32   `json:"freeze_bits"`

	DenomX string `json:"denom_x"`
	DenomY string `json:"denom_y"`

	LspSupply sdkmath.Int `json:"lsp_supply"`

	FeeDirection   FeeDirection `json:"fee_direction"`
	AdminFeeBps    uint64       `json:"admin_fee_bps"`
	LpFeeBps       uint64       `json:"lp_fee_bps"`
	ThFeeBps       uint64       `json:"th_fee_bps"`
	WithdrawFeeBps uint64       `json:"withdraw_fee_bps"`

	Amp    uint64      `json:"amp,omitempty"`
	ScaleX sdkmath.Int `json:"scale_x"`
	ScaleY sdkmath.Int `json:"scale_y"`

	ReserveX sdkmath.Int `json:"reserve_x"`
	ReserveY sdkmath.Int `json:"reserve_y"`
	AdminX   sdkmath.Int `json:"admin_x"`
	AdminY   sdkmath.Int `json:"admin_y"`
	ThX      sdkmath.Int `json:"th_x"`
	ThY      sdkmath.Int `json:"th_y"`
	BasisX   sdkmath.Int `json:"basis_x"`
	BasisY   sdkmath.Int `json:"basis_y"`

	TradedX          sdkmath.Int `json:"traded_x"`
	TradedY          sdkmath.Int `json:"traded_y"`
	TradeEpoch       uint64      `json:"trade_epoch"`
	TradeVolumeX     sdkmath.Int `json:"trade_volume_x"`
	TradeVolumeY     sdkmath.Int `json:"trade_volume_y"`
	LastTradeVolumeX sdkmath.Int `json:"last_trade_volume_x"`
	LastTradeVolumeY sdkmath.Int `json:"last_trade_volume_y"`

	ThReward HolderRewardState `json:"th_reward"`
	Mining   MiningState       `json:"mining"`
}

// Validate verifies the pool's internal fields.
func (p Pool) Validate() error {
	if _, err := sdk.AccAddressFromBech32(p.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %w", err)
	}
	if err := sdk.ValidateDenom(p.DenomX); err != nil {
		return fmt.Errorf("invalid denom x: %w", err)
	}
	if err := sdk.ValidateDenom(p.DenomY); err != nil {
		return fmt.Errorf("invalid denom y: %w", err)
	}
	if p.DenomX == p.DenomY {
		return fmt.Errorf("pool assets must differ, got %s twice", p.DenomX)
	}
	if p.PoolType != PoolTypeConstantProduct && p.PoolType != PoolTypeStableSwap {
		return fmt.Errorf("unknown pool type %q", p.PoolType)
	}
	if p.FeeDirection != FeeCollectX && p.FeeDirection != FeeCollectY {
		return fmt.Errorf("unknown fee direction %q", p.FeeDirection)
	}
	if p.ThReward.Type != RewardDistributeAsBalance && p.ThReward.Type != RewardAutoBuyback {
		return fmt.Errorf("unknown holder reward type %q", p.ThReward.Type)
	}
	if err := ValidateFeeBps(p.AdminFeeBps, p.LpFeeBps, p.ThFeeBps, p.WithdrawFeeBps); err != nil {
		return err
	}
	if p.FreezeBits&^FreezeAllBits != 0 {
		return fmt.Errorf("unknown freeze bits %#x", p.FreezeBits&^FreezeAllBits)
	}
	if p.Version == 0 {
		return fmt.Errorf("pool version must be positive")
	}
	if p.ThReward.Nepoch == 0 {
		return fmt.Errorf("holder reward window length must be positive")
	}
	if p.PoolType == PoolTypeStableSwap {
		if p.Amp < MinAmp || p.Amp > MaxAmp {
			return fmt.Errorf("amplification %d out of range [%d, %d]", p.Amp, MinAmp, MaxAmp)
		}
		if p.ScaleX.IsNil() || p.ScaleY.IsNil() || !p.ScaleX.IsPositive() || !p.ScaleY.IsPositive() {
			return fmt.Errorf("stable pool scales must be positive")
		}
	}
	for _, bal := range []struct {
		name string
		amt  sdkmath.Int
	}{
		{"lsp_supply", p.LspSupply},
		{"reserve_x", p.ReserveX}, {"reserve_y", p.ReserveY},
		{"admin_x", p.AdminX}, {"admin_y", p.AdminY},
		{"th_x", p.ThX}, {"th_y", p.ThY},
		{"basis_x", p.BasisX}, {"basis_y", p.BasisY},
	} {
		if bal.amt.IsNil() || bal.amt.IsNegative() {
			return fmt.Errorf("%s must be a non-negative amount", bal.name)
		}
	}
	return nil
}

// ValidateFeeBps checks the fee-rate invariants shared by pool creation and
// fee changes: the trade fee components must sum below one whole, and the
// withdraw fee must be below one whole.
func ValidateFeeBps(adminBps, lpBps, thBps, withdrawBps uint64) error {
	if adminBps+lpBps+thBps >= BpsDenominator {
		return fmt.Errorf("trade fee sum %d must be less than %d bps", adminBps+lpBps+thBps, BpsDenominator)
	}
	if withdrawBps >= BpsDenominator {
		return fmt.Errorf("withdraw fee %d must be less than %d bps", withdrawBps, BpsDenominator)
	}
	return nil
}

// IsStable reports whether the pool prices on the stable invariant.
func (p Pool) IsStable() bool {
	return p.PoolType == PoolTypeStableSwap
}

// IsFrozen reports whether the given freeze bit is set.
func (p Pool) IsFrozen(bit uint32) bool {
	return p.FreezeBits&bit != 0
}

// PricingReserves returns the offset reserves every price computation runs on.
func (p Pool) PricingReserves() (x, y sdkmath.Int) {
	return p.ReserveX.Add(p.BasisX), p.ReserveY.Add(p.BasisY)
}

// Denom returns the denomination of the given side.
func (p Pool) Denom(side Side) string {
	if side == SideX {
		return p.DenomX
	}
	return p.DenomY
}

// GetAddress returns the module account address holding this pool's balances.
func (p Pool) GetAddress() sdk.AccAddress {
	return GetPoolAddress(p.Id)
}

// RotateTradeEpoch rolls the per-epoch volume buckets forward to epoch. The
// current bucket becomes the last bucket only when exactly one epoch elapsed;
// a larger gap means the previous epoch saw no trades.
func (p *Pool) RotateTradeEpoch(epoch uint64) {
	if epoch <= p.TradeEpoch {
		return
	}
	if epoch == p.TradeEpoch+1 {
		p.LastTradeVolumeX = p.TradeVolumeX
		p.LastTradeVolumeY = p.TradeVolumeY
	} else {
		p.LastTradeVolumeX = sdkmath.ZeroInt()
		p.LastTradeVolumeY = sdkmath.ZeroInt()
	}
	p.TradeVolumeX = sdkmath.ZeroInt()
	p.TradeVolumeY = sdkmath.ZeroInt()
	p.TradeEpoch = epoch
}

// RecordTrade adds a settled trade to the cumulative and per-epoch statistics.
func (p *Pool) RecordTrade(dx, dy sdkmath.Int) {
	p.TradedX = p.TradedX.Add(dx)
	p.TradedY = p.TradedY.Add(dy)
	p.TradeVolumeX = p.TradeVolumeX.Add(dx)
	p.TradeVolumeY = p.TradeVolumeY.Add(dy)
}

// WindowStart returns the aligned start epoch of the reward window containing
// epoch for the given window length.
func WindowStart(epoch, nepoch uint64) uint64 {
	return epoch / nepoch * nepoch
}

// ScalesForDecimals returns the stable-pool scale factors aligning two assets
// with the given decimal places onto a common basis. The side with fewer
// decimals is scaled up by 10^(difference); the other side's scale is one.
func ScalesForDecimals(decimalsX, decimalsY uint32) (scaleX, scaleY sdkmath.Int) {
	scaleX, scaleY = sdkmath.OneInt(), sdkmath.OneInt()
	switch {
	case decimalsX < decimalsY:
		scaleX = pow10(decimalsY - decimalsX)
	case decimalsY < decimalsX:
		scaleY = pow10(decimalsX - decimalsY)
	}
	return scaleX, scaleY
}

func pow10(n uint32) sdkmath.Int {
	out := sdkmath.OneInt()
	ten := sdkmath.NewInt(10)
	for i := uint32(0); i < n; i++ {
		out = out.Mul(ten)
	}
	return out
}
