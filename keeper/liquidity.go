package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/cpmm"
	"github.com/vividnetwork/suiswap-contract/stableswap"
	"github.com/vividnetwork/suiswap-contract/types"
)

// RemoveLiquidityResult reports what a withdrawal paid out: the net amounts
// after the withdraw fee, any mining reward disbursed alongside, and the
// surviving receipt (nil when the receipt was fully consumed).
type RemoveLiquidityResult struct {
	AmountX      sdkmath.Int
	AmountY      sdkmath.Int
	MiningReward sdkmath.Int
	Receipt      *types.ShareReceipt
}

// AddLiquidity deposits up to amountX and amountY into the pool and mints a
// share receipt for the provider.
//
// The first deposit into an empty pool bootstraps it: shares are the integer
// square root of the deposited product, and a fixed minimum is minted into the
// supply but withheld from the receipt so the pool can never be drained back
// to a trivially manipulable state. Later constant product deposits mint the
// minimum of what each offered side would buy and collect only the exact
// amounts that minimum requires, unless allowPriceMove lets the deposit shift
// the pool price and consume both amounts in full. Stable deposits always
// consume both amounts; price movement is inherent to the invariant.
//
// A non-zero lockEpochs must match a boost schedule tier exactly and locks the
// receipt until the epoch window elapses, in exchange for a higher mining
// weight.
func (k *Keeper) AddLiquidity(ctx context.Context, provider string, poolID uint64, amountX, amountY sdkmath.Int, lockEpochs uint64, allowPriceMove bool) (*types.ShareReceipt, error) {
	providerAddr, err := sdk.AccAddressFromBech32(provider)
	if err != nil {
		return nil, types.ErrInvalidParameter.Wrapf("invalid provider address: %s", err)
	}
	for _, amt := range []struct {
		name  string
		value sdkmath.Int
	}{{"amount x", amountX}, {"amount y", amountY}} {
		if amt.value.IsNil() || amt.value.IsNegative() {
			return nil, types.ErrInvalidParameter.Wrapf("%s must be a non-negative amount", amt.name)
		}
		if !amt.value.IsUint64() {
			return nil, types.ErrInvalidParameter.Wrapf("%s exceeds the amount domain", amt.name)
		}
	}
	if amountX.IsZero() && amountY.IsZero() {
		return nil, types.ErrInvalidParameter.Wrap("deposit must offer at least one asset")
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsFrozen(types.FreezeAddLiquidityBit) && provider != pool.Owner {
		return nil, types.ErrOperationFrozen.Wrapf("deposits on pool %d are frozen", poolID)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	boost, err := params.BoostMultiplierFor(lockEpochs)
	if err != nil {
		return nil, types.ErrInvalidParameter.Wrap(err.Error())
	}

	k.touchPool(ctx, &pool)

	usedX, usedY, issued, err := k.mintShares(&pool, amountX, amountY, allowPriceMove)
	if err != nil {
		return nil, err
	}

	pool.ReserveX = pool.ReserveX.Add(usedX)
	pool.ReserveY = pool.ReserveY.Add(usedY)

	epoch := k.EpochKeeper.CurrentEpoch(ctx)
	receipt := types.ShareReceipt{
		PoolId:          poolID,
		Value:           issued,
		PoolX:           pool.ReserveX,
		PoolY:           pool.ReserveY,
		PoolLsp:         pool.LspSupply,
		StartEpoch:      epoch,
		EndEpoch:        epoch + lockEpochs,
		BoostMultiplier: boost,
	}
	pool.Mining.Ampt.AddAmount(receipt.Weight())
	receipt.PoolMiningAmpt = pool.Mining.Ampt

	deposit := sdk.NewCoins(
		sdk.NewCoin(pool.DenomX, usedX),
		sdk.NewCoin(pool.DenomY, usedY),
	)
	if err := k.BankKeeper.SendCoins(ctx, providerAddr, pool.GetAddress(), deposit); err != nil {
		return nil, fmt.Errorf("failed to collect deposit: %w", err)
	}

	if err := k.setPool(ctx, pool); err != nil {
		return nil, err
	}

	k.emitEvent(ctx, types.NewEventLiquidityAdded(poolID, provider, usedX, usedY, issued, lockEpochs))
	return &receipt, nil
}

// mintShares runs the share-minting algebra for a deposit against the pool,
// growing the supply and reporting the amounts actually consumed and the
// shares issued to the depositor. The caller applies the reserve movements.
func (k Keeper) mintShares(pool *types.Pool, amountX, amountY sdkmath.Int, allowPriceMove bool) (usedX, usedY, issued sdkmath.Int, err error) {
	zero := sdkmath.ZeroInt()

	if pool.LspSupply.IsZero() {
		if amountX.IsZero() || amountY.IsZero() {
			return zero, zero, zero, types.ErrInvalidParameter.Wrap("bootstrap deposit must offer both assets")
		}
		shares, err := cpmm.BootstrapShares(amountX, amountY)
		if err != nil {
			return zero, zero, zero, solverError(err)
		}
		minimum := sdkmath.NewInt(types.MinimumLiquidity)
		if !shares.GT(minimum) {
			return zero, zero, zero, types.ErrInvalidParameter.Wrapf("bootstrap deposit mints %s shares, must exceed the locked minimum %s", shares, minimum)
		}
		pool.LspSupply = shares
		return amountX, amountY, shares.Sub(minimum), nil
	}

	baseX, baseY := pool.PricingReserves()

	if pool.IsStable() {
		minted, err := stableswap.MintForDeposit(amountX, amountY, baseX, baseY, pool.ScaleX, pool.ScaleY, pool.LspSupply, pool.Amp)
		if err != nil {
			return zero, zero, zero, solverError(err)
		}
		if minted.IsZero() {
			return zero, zero, zero, types.ErrInvalidParameter.Wrap("deposit too small to mint a share")
		}
		pool.LspSupply = pool.LspSupply.Add(minted)
		return amountX, amountY, minted, nil
	}

	if allowPriceMove {
		minted, err := cpmm.DepositPriceMoving(amountX, amountY, baseX, baseY, pool.LspSupply)
		if err != nil {
			return zero, zero, zero, solverError(err)
		}
		if minted.IsZero() {
			return zero, zero, zero, types.ErrInvalidParameter.Wrap("deposit too small to mint a share")
		}
		pool.LspSupply = pool.LspSupply.Add(minted)
		return amountX, amountY, minted, nil
	}

	mintX, err := cpmm.DepositMint(amountX, baseX, pool.LspSupply)
	if err != nil {
		return zero, zero, zero, solverError(err)
	}
	mintY, err := cpmm.DepositMint(amountY, baseY, pool.LspSupply)
	if err != nil {
		return zero, zero, zero, solverError(err)
	}
	minted := sdkmath.MinInt(mintX, mintY)
	if minted.IsZero() {
		return zero, zero, zero, types.ErrInvalidParameter.Wrap("deposit too small to mint a share")
	}

	usedX, err = cpmm.DepositRequired(minted, pool.LspSupply, baseX)
	if err != nil {
		return zero, zero, zero, solverError(err)
	}
	usedY, err = cpmm.DepositRequired(minted, pool.LspSupply, baseY)
	if err != nil {
		return zero, zero, zero, solverError(err)
	}
	if usedX.GT(amountX) || usedY.GT(amountY) {
		return zero, zero, zero, types.ErrInsufficientBalance.Wrapf("deposit requires (%s, %s), offered (%s, %s)", usedX, usedY, amountX, amountY)
	}
	pool.LspSupply = pool.LspSupply.Add(minted)
	return usedX, usedY, minted, nil
}

// RemoveLiquidity burns amount units of the receipt for a proportional share
// of both reserves. The receipt's lock window must have elapsed.
func (k *Keeper) RemoveLiquidity(ctx context.Context, owner string, receipt types.ShareReceipt, amount sdkmath.Int) (RemoveLiquidityResult, error) {
	return k.removeLiquidity(ctx, owner, receipt, amount, false)
}

// RemoveLiquidityForced burns amount units of the receipt ignoring its lock
// window. The caller is responsible for having verified the external
// authorization that permits breaking the lock.
func (k *Keeper) RemoveLiquidityForced(ctx context.Context, owner string, receipt types.ShareReceipt, amount sdkmath.Int) (RemoveLiquidityResult, error) {
	return k.removeLiquidity(ctx, owner, receipt, amount, true)
}

func (k *Keeper) removeLiquidity(ctx context.Context, owner string, receipt types.ShareReceipt, amount sdkmath.Int, forced bool) (RemoveLiquidityResult, error) {
	pool, ownerAddr, err := k.prepareRemoval(ctx, owner, receipt, amount, forced)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}

	reserveXBefore, reserveYBefore := pool.ReserveX, pool.ReserveY
	supplyBefore := pool.LspSupply

	var dx, dy sdkmath.Int
	if pool.IsStable() {
		dx, dy, err = stableswap.WithdrawProportional(amount, pool.LspSupply, pool.ReserveX, pool.ReserveY, pool.ScaleX, pool.ScaleY, pool.Amp)
	} else {
		dx, dy, err = cpmm.WithdrawProportional(pool.ReserveX, pool.ReserveY, pool.LspSupply, amount)
	}
	if err != nil {
		return RemoveLiquidityResult{}, solverError(err)
	}

	pool.ReserveX = pool.ReserveX.Sub(dx)
	pool.ReserveY = pool.ReserveY.Sub(dy)
	pool.LspSupply = pool.LspSupply.Sub(amount)

	// Per-share reserves must not decrease across a proportional withdrawal.
	if pool.ReserveX.Mul(supplyBefore).LT(reserveXBefore.Mul(pool.LspSupply)) ||
		pool.ReserveY.Mul(supplyBefore).LT(reserveYBefore.Mul(pool.LspSupply)) {
		return RemoveLiquidityResult{}, types.ErrComputationInvariant.Wrapf("withdrawal of %s shares would dilute pool %d", amount, pool.Id)
	}

	return k.settleRemoval(ctx, pool, ownerAddr, owner, receipt, amount, dx, dy, forced)
}

// RemoveLiquiditySingleSide burns amount units of the receipt for a payout in
// only the given side's asset, leaving the other reserve untouched. Only
// constant product pools support it. The receipt's lock window must have
// elapsed.
func (k *Keeper) RemoveLiquiditySingleSide(ctx context.Context, owner string, receipt types.ShareReceipt, amount sdkmath.Int, side types.Side) (RemoveLiquidityResult, error) {
	pool, ownerAddr, err := k.prepareRemoval(ctx, owner, receipt, amount, false)
	if err != nil {
		return RemoveLiquidityResult{}, err
	}
	if pool.IsStable() {
		return RemoveLiquidityResult{}, types.ErrInvalidParameter.Wrap("stable pools only support proportional withdrawals")
	}

	reserve := pool.ReserveX
	if side == types.SideY {
		reserve = pool.ReserveY
	}
	paid, err := cpmm.WithdrawSingleSide(reserve, pool.LspSupply, amount)
	if err != nil {
		return RemoveLiquidityResult{}, solverError(err)
	}

	dx, dy := paid, sdkmath.ZeroInt()
	if side == types.SideY {
		dx, dy = sdkmath.ZeroInt(), paid
	}
	pool.ReserveX = pool.ReserveX.Sub(dx)
	pool.ReserveY = pool.ReserveY.Sub(dy)
	pool.LspSupply = pool.LspSupply.Sub(amount)

	return k.settleRemoval(ctx, pool, ownerAddr, owner, receipt, amount, dx, dy, false)
}

// prepareRemoval runs the shared validation and lazy accrual ahead of a
// withdrawal and returns the pool ready to mutate.
func (k *Keeper) prepareRemoval(ctx context.Context, owner string, receipt types.ShareReceipt, amount sdkmath.Int, forced bool) (types.Pool, sdk.AccAddress, error) {
	ownerAddr, err := sdk.AccAddressFromBech32(owner)
	if err != nil {
		return types.Pool{}, nil, types.ErrInvalidParameter.Wrapf("invalid owner address: %s", err)
	}
	if err := receipt.Validate(); err != nil {
		return types.Pool{}, nil, types.ErrInvalidParameter.Wrap(err.Error())
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.Pool{}, nil, types.ErrInvalidParameter.Wrap("withdrawal amount must be positive")
	}
	if amount.GT(receipt.Value) {
		return types.Pool{}, nil, types.ErrInsufficientBalance.Wrapf("withdrawal of %s exceeds receipt value %s", amount, receipt.Value)
	}

	pool, err := k.getOperablePool(ctx, receipt.PoolId)
	if err != nil {
		return types.Pool{}, nil, err
	}
	if pool.IsFrozen(types.FreezeRemoveLiquidityBit) && owner != pool.Owner {
		return types.Pool{}, nil, types.ErrOperationFrozen.Wrapf("withdrawals on pool %d are frozen", pool.Id)
	}

	epoch := k.EpochKeeper.CurrentEpoch(ctx)
	if !forced && !receipt.Unlocked(epoch) {
		return types.Pool{}, nil, types.ErrInvalidParameter.Wrapf("receipt is locked until epoch %d", receipt.EndEpoch)
	}

	k.touchPool(ctx, &pool)
	return pool, ownerAddr, nil
}

// settleRemoval finishes a withdrawal after the solver ran: mining reward,
// withdraw fee, accumulator bookkeeping, custody, persistence, and the event.
func (k *Keeper) settleRemoval(ctx context.Context, pool types.Pool, ownerAddr sdk.AccAddress, owner string, receipt types.ShareReceipt, amount, dx, dy sdkmath.Int, forced bool) (RemoveLiquidityResult, error) {
	reward := pool.Mining.Ampt.Diff(receipt.PoolMiningAmpt, receipt.Weight())
	disbursed := k.disburseMiningReward(ctx, &pool, ownerAddr, reward)

	if err := pool.Mining.Ampt.DecAmount(amount.MulRaw(int64(receipt.BoostMultiplier))); err != nil {
		return RemoveLiquidityResult{}, types.ErrComputationInvariant.Wrap(err.Error())
	}

	netX, netY, _, _ := routeWithdrawFee(&pool, dx, dy)

	payout := sdk.NewCoins(
		sdk.NewCoin(pool.DenomX, netX),
		sdk.NewCoin(pool.DenomY, netY),
	)
	if !payout.IsZero() {
		if err := k.BankKeeper.SendCoins(ctx, pool.GetAddress(), ownerAddr, payout); err != nil {
			return RemoveLiquidityResult{}, fmt.Errorf("failed to pay withdrawal: %w", err)
		}
	}

	if err := k.setPool(ctx, pool); err != nil {
		return RemoveLiquidityResult{}, err
	}

	result := RemoveLiquidityResult{AmountX: netX, AmountY: netY, MiningReward: disbursed}
	if amount.LT(receipt.Value) {
		survivor := receipt
		survivor.Value = receipt.Value.Sub(amount)
		result.Receipt = &survivor
	}

	k.emitEvent(ctx, types.NewEventLiquidityRemoved(pool.Id, owner, amount, netX, netY, disbursed, forced))
	return result, nil
}

// disburseMiningReward pays an accrued mining reward from the pool's treasury,
// best effort: without a treasury, a reward denom, or sufficient treasury
// balance the reward is skipped rather than failing the withdrawal.
func (k *Keeper) disburseMiningReward(ctx context.Context, pool *types.Pool, to sdk.AccAddress, reward sdkmath.Int) sdkmath.Int {
	zero := sdkmath.ZeroInt()
	if !reward.IsPositive() {
		return zero
	}
	if pool.Mining.Treasury == "" || pool.Mining.RewardDenom == "" {
		return zero
	}
	treasuryAddr, err := sdk.AccAddressFromBech32(pool.Mining.Treasury)
	if err != nil {
		k.getLogger().Error("invalid mining treasury address", "pool_id", pool.Id, "treasury", pool.Mining.Treasury, "error", err)
		return zero
	}
	if k.BankKeeper.GetBalance(ctx, treasuryAddr, pool.Mining.RewardDenom).Amount.LT(reward) {
		k.getLogger().Debug("mining treasury balance too low, skipping reward", "pool_id", pool.Id, "reward", reward)
		return zero
	}
	if err := k.BankKeeper.SendCoins(ctx, treasuryAddr, to, sdk.NewCoins(sdk.NewCoin(pool.Mining.RewardDenom, reward))); err != nil {
		k.getLogger().Error("failed to disburse mining reward", "pool_id", pool.Id, "reward", reward, "error", err)
		return zero
	}
	return reward
}
