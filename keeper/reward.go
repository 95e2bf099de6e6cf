package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

// touchPool applies the lazy epoch-driven bookkeeping every operation runs
// before mutating pool state: per-epoch trade volume rotation and mining
// accrual for the epochs elapsed since the pool was last touched. There is no
// background timer, so these fields lag wall-clock time until the next call.
func (k Keeper) touchPool(ctx context.Context, pool *types.Pool) {
	epoch := k.EpochKeeper.CurrentEpoch(ctx)
	pool.RotateTradeEpoch(epoch)
	accrueMining(pool, epoch)
}

// accrueMining adds speed reward units per elapsed epoch to the mining
// accumulator. Epochs with no participating weight mint nothing.
func accrueMining(pool *types.Pool, epoch uint64) {
	if epoch <= pool.Mining.LastEpoch {
		return
	}
	elapsed := epoch - pool.Mining.LastEpoch
	if pool.Mining.Speed > 0 && pool.Mining.Ampt.Amount.IsPositive() {
		reward := sdkmath.NewIntFromUint64(pool.Mining.Speed).Mul(sdkmath.NewIntFromUint64(elapsed))
		pool.Mining.Ampt.AddSum(reward)
	}
	pool.Mining.LastEpoch = epoch
}

// rolloverRewardWindow advances the holder reward window to the one containing
// epoch. The previous window's unclaimed remainder is forfeited to the admin
// balance, the trade-period holder fees collected since become the new
// window's distributable pool, and the farm totals are snapshotted for claim
// shares. Calling it again within the same window is a no-op.
func (k Keeper) rolloverRewardWindow(ctx context.Context, pool *types.Pool, totals types.FarmTotals, epoch uint64) {
	h := &pool.ThReward
	if epoch <= h.EndEpoch {
		return
	}

	forfeitedX, forfeitedY := h.X, h.Y
	pool.AdminX = pool.AdminX.Add(forfeitedX)
	pool.AdminY = pool.AdminY.Add(forfeitedY)

	h.X, h.Y = pool.ThX, pool.ThY
	h.XSupply, h.YSupply = pool.ThX, pool.ThY
	pool.ThX, pool.ThY = sdkmath.ZeroInt(), sdkmath.ZeroInt()

	h.TotalStakeAmount = totals.StakeAmount
	h.TotalStakeBoost = totals.StakeBoost
	h.StartEpoch = types.WindowStart(epoch, h.Nepoch)
	h.EndEpoch = h.StartEpoch + h.Nepoch - 1

	k.emitEvent(ctx, types.NewEventRewardWindowRolled(pool.Id, h.StartEpoch, h.EndEpoch, h.XSupply, h.YSupply, forfeitedX, forfeitedY))
}

// UpdateHolderRewardWindow forces the lazy window rollover for a pool using
// the provided farm totals snapshot. It is safe to call at any time.
func (k *Keeper) UpdateHolderRewardWindow(ctx context.Context, poolID uint64, totals types.FarmTotals) error {
	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return err
	}
	if err := totals.Validate(); err != nil {
		return types.ErrInvalidParameter.Wrap(err.Error())
	}

	k.touchPool(ctx, &pool)
	k.rolloverRewardWindow(ctx, &pool, totals, k.EpochKeeper.CurrentEpoch(ctx))

	return k.setPool(ctx, pool)
}

// ClaimHolderReward pays the claimer their stake's pro-rata share of the
// current holder reward window. Each stake may claim once per window; the
// per-pool marker stored with the stake enforces that. The share is
// stake boost over the window's snapshotted total boost, applied to the
// window-start supplies and paid out of the remaining distributable balances.
func (k *Keeper) ClaimHolderReward(ctx context.Context, claimer string, poolID uint64, totals types.FarmTotals, stake types.StakeRecord) (paidX, paidY sdkmath.Int, err error) {
	zero := sdkmath.ZeroInt()

	claimerAddr, err := sdk.AccAddressFromBech32(claimer)
	if err != nil {
		return zero, zero, types.ErrInvalidParameter.Wrapf("invalid claimer address: %s", err)
	}
	if err := totals.Validate(); err != nil {
		return zero, zero, types.ErrInvalidParameter.Wrap(err.Error())
	}
	if err := stake.Validate(); err != nil {
		return zero, zero, types.ErrInvalidParameter.Wrap(err.Error())
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return zero, zero, err
	}
	if pool.ThReward.Type != types.RewardDistributeAsBalance {
		return zero, zero, types.ErrInvalidParameter.Wrapf("pool %d does not distribute holder rewards as balances", poolID)
	}

	epoch := k.EpochKeeper.CurrentEpoch(ctx)
	k.touchPool(ctx, &pool)
	k.rolloverRewardWindow(ctx, &pool, totals, epoch)

	claimedAt, found, err := k.FarmKeeper.GetClaimMarker(ctx, stake.Id, poolID)
	if err != nil {
		return zero, zero, fmt.Errorf("failed to read claim marker for stake %d: %w", stake.Id, err)
	}
	if !found {
		claimedAt = stake.StartEpoch
	}
	if claimedAt >= pool.ThReward.StartEpoch {
		return zero, zero, types.ErrInvalidParameter.Wrapf("stake %d already claimed pool %d rewards in the window starting at epoch %d", stake.Id, poolID, pool.ThReward.StartEpoch)
	}
	if found {
		if err := k.FarmKeeper.ClearClaimMarker(ctx, stake.Id, poolID); err != nil {
			return zero, zero, fmt.Errorf("failed to clear claim marker for stake %d: %w", stake.Id, err)
		}
	}

	paidX, paidY = zero, zero
	if pool.ThReward.TotalStakeBoost.IsPositive() {
		share, rErr := utils.NewRatio(stake.Boost, pool.ThReward.TotalStakeBoost)
		if rErr != nil {
			return zero, zero, types.ErrInvalidParameter.Wrap(rErr.Error())
		}
		paidX = sdkmath.MinInt(share.ApplyTo(pool.ThReward.XSupply), pool.ThReward.X)
		paidY = sdkmath.MinInt(share.ApplyTo(pool.ThReward.YSupply), pool.ThReward.Y)
	}
	pool.ThReward.X = pool.ThReward.X.Sub(paidX)
	pool.ThReward.Y = pool.ThReward.Y.Sub(paidY)

	if err := k.FarmKeeper.SetClaimMarker(ctx, stake.Id, poolID, epoch); err != nil {
		return zero, zero, fmt.Errorf("failed to write claim marker for stake %d: %w", stake.Id, err)
	}

	payout := sdk.NewCoins(
		sdk.NewCoin(pool.DenomX, paidX),
		sdk.NewCoin(pool.DenomY, paidY),
	)
	if !payout.IsZero() {
		if err := k.BankKeeper.SendCoins(ctx, pool.GetAddress(), claimerAddr, payout); err != nil {
			return zero, zero, fmt.Errorf("failed to pay holder reward from pool %d: %w", poolID, err)
		}
	}

	if err := k.setPool(ctx, pool); err != nil {
		return zero, zero, err
	}

	k.emitEvent(ctx, types.NewEventHolderRewardClaimed(poolID, claimer, stake.Id, paidX, paidY, epoch))
	return paidX, paidY, nil
}
