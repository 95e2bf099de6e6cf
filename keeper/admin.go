package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/types"
)

// ChangeFee replaces the pool's fee configuration. Authority-gated; the new
// rates obey the same bounds as at pool creation.
func (k *Keeper) ChangeFee(ctx context.Context, authority string, poolID uint64, direction types.FeeDirection, adminBps, lpBps, thBps, withdrawBps uint64) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if direction != types.FeeCollectX && direction != types.FeeCollectY {
		return types.ErrInvalidParameter.Wrapf("unknown fee direction %q", direction)
	}
	if err := types.ValidateFeeBps(adminBps, lpBps, thBps, withdrawBps); err != nil {
		return types.ErrInvalidParameter.Wrap(err.Error())
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return err
	}

	k.touchPool(ctx, &pool)
	pool.FeeDirection = direction
	pool.AdminFeeBps = adminBps
	pool.LpFeeBps = lpBps
	pool.ThFeeBps = thBps
	pool.WithdrawFeeBps = withdrawBps

	if err := k.setPool(ctx, pool); err != nil {
		return err
	}

	k.emitEvent(ctx, types.NewEventFeeChanged(pool, authority))
	return nil
}

// SetFreezeBits replaces the pool's freeze mask. Authority-gated. Set bits
// reject the matching operations for everyone but the pool owner.
func (k *Keeper) SetFreezeBits(ctx context.Context, authority string, poolID uint64, freezeBits uint32) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if freezeBits&^types.FreezeAllBits != 0 {
		return types.ErrInvalidParameter.Wrapf("unknown freeze bits %#x", freezeBits&^types.FreezeAllBits)
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return err
	}

	pool.FreezeBits = freezeBits
	if err := k.setPool(ctx, pool); err != nil {
		return err
	}

	k.emitEvent(ctx, types.NewEventFreezeBitsSet(poolID, authority, freezeBits))
	return nil
}

// RedeemAdminBalance pays the pool's entire collected admin fee balance to
// the recipient. Authority-gated.
func (k *Keeper) RedeemAdminBalance(ctx context.Context, authority string, poolID uint64, recipient string) (redeemedX, redeemedY sdkmath.Int, err error) {
	zero := sdkmath.ZeroInt()

	if authority != k.authority {
		return zero, zero, types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	recipientAddr, err := sdk.AccAddressFromBech32(recipient)
	if err != nil {
		return zero, zero, types.ErrInvalidParameter.Wrapf("invalid recipient address: %s", err)
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return zero, zero, err
	}

	k.touchPool(ctx, &pool)
	redeemedX, redeemedY = pool.AdminX, pool.AdminY
	if redeemedX.IsZero() && redeemedY.IsZero() {
		return zero, zero, types.ErrInsufficientBalance.Wrapf("pool %d has no admin balance", poolID)
	}
	pool.AdminX, pool.AdminY = sdkmath.ZeroInt(), sdkmath.ZeroInt()

	payout := sdk.NewCoins(
		sdk.NewCoin(pool.DenomX, redeemedX),
		sdk.NewCoin(pool.DenomY, redeemedY),
	)
	if err := k.BankKeeper.SendCoins(ctx, pool.GetAddress(), recipientAddr, payout); err != nil {
		return zero, zero, fmt.Errorf("failed to pay admin balance: %w", err)
	}

	if err := k.setPool(ctx, pool); err != nil {
		return zero, zero, err
	}

	k.emitEvent(ctx, types.NewEventAdminBalanceRedeemed(poolID, authority, recipient, redeemedX, redeemedY))
	return redeemedX, redeemedY, nil
}

// SetMiningSpeed configures the pool's share-mining emission: the treasury
// rewards are paid from, the reward denom, and the per-epoch speed.
// Authority-gated. Accrual up to the current epoch runs at the old speed
// before the new one takes effect.
func (k *Keeper) SetMiningSpeed(ctx context.Context, authority string, poolID uint64, treasury, rewardDenom string, speed uint64) error {
	if authority != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if treasury != "" {
		if _, err := sdk.AccAddressFromBech32(treasury); err != nil {
			return types.ErrInvalidParameter.Wrapf("invalid treasury address: %s", err)
		}
	}
	if rewardDenom != "" {
		if err := sdk.ValidateDenom(rewardDenom); err != nil {
			return types.ErrInvalidParameter.Wrapf("invalid reward denom: %s", err)
		}
	}
	if speed > 0 && (treasury == "" || rewardDenom == "") {
		return types.ErrInvalidParameter.Wrap("mining emission needs a treasury and a reward denom")
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return err
	}

	k.touchPool(ctx, &pool)
	pool.Mining.Treasury = treasury
	pool.Mining.RewardDenom = rewardDenom
	pool.Mining.Speed = speed

	if err := k.setPool(ctx, pool); err != nil {
		return err
	}

	k.emitEvent(ctx, types.NewEventMiningSpeedSet(poolID, authority, treasury, rewardDenom, speed))
	return nil
}
