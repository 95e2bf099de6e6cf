package keeper

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/cpmm"
	"github.com/vividnetwork/suiswap-contract/stableswap"
	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

// Swap trades amountIn of the asset on the given side for the opposite asset.
// The output is priced on the pool's offset reserves with fees collected on
// the pool's configured side, and must meet minAmountOut or the trade fails.
// The input moves into pool custody and the output is paid out of it.
func (k *Keeper) Swap(ctx context.Context, trader string, poolID uint64, side types.Side, amountIn, minAmountOut sdkmath.Int) (sdkmath.Int, error) {
	zero := sdkmath.ZeroInt()

	traderAddr, err := sdk.AccAddressFromBech32(trader)
	if err != nil {
		return zero, types.ErrInvalidParameter.Wrapf("invalid trader address: %s", err)
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return zero, types.ErrInvalidParameter.Wrap("swap input must be positive")
	}
	if !amountIn.IsUint64() {
		return zero, types.ErrInvalidParameter.Wrap("swap input exceeds the amount domain")
	}
	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return zero, types.ErrInvalidParameter.Wrap("minimum output must be non-negative")
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return zero, err
	}
	if pool.IsFrozen(types.FreezeSwapBit) && trader != pool.Owner {
		return zero, types.ErrOperationFrozen.Wrapf("swaps on pool %d are frozen", poolID)
	}

	k.touchPool(ctx, &pool)

	quote, err := k.quoteSwap(pool, side, amountIn)
	if err != nil {
		return zero, err
	}
	if quote.out.LT(minAmountOut) {
		return zero, types.ErrSlippageExceeded.Wrapf("swap output %s below minimum %s", quote.out, minAmountOut)
	}

	denomIn := pool.Denom(side)
	denomOut := pool.Denom(side.Opposite())
	poolAddr := pool.GetAddress()
	if err := k.BankKeeper.SendCoins(ctx, traderAddr, poolAddr, sdk.NewCoins(sdk.NewCoin(denomIn, amountIn))); err != nil {
		return zero, fmt.Errorf("failed to collect swap input: %w", err)
	}
	if err := k.BankKeeper.SendCoins(ctx, poolAddr, traderAddr, sdk.NewCoins(sdk.NewCoin(denomOut, quote.out))); err != nil {
		return zero, fmt.Errorf("failed to pay swap output: %w", err)
	}

	applySwap(&pool, side, amountIn, quote)
	if err := k.autoBuyback(&pool); err != nil {
		return zero, err
	}
	if err := k.setPool(ctx, pool); err != nil {
		return zero, err
	}

	k.emitEvent(ctx, types.NewEventSwap(poolID, trader, denomIn, denomOut, amountIn, quote.out, quote.adminCut, quote.thCut, quote.lpCut))
	return quote.out, nil
}

// swapQuote is the priced outcome of a trade before it is committed: the
// trader's output and the three fee cuts. The cuts live on the input side when
// the pool collects fees there, otherwise on the output side.
type swapQuote struct {
	out        sdkmath.Int
	adminCut   sdkmath.Int
	thCut      sdkmath.Int
	lpCut      sdkmath.Int
	feeOnInput bool
}

// quoteSwap prices amountIn of side against the pool without mutating it.
//
// With fees on the input side the cuts are taken from the input first and only
// the remainder is priced. With fees on the output side the full input is
// priced and the cuts are taken from the gross output. The provider cut never
// leaves the reserve either way; it only reduces what the trader gets.
func (k Keeper) quoteSwap(pool types.Pool, side types.Side, amountIn sdkmath.Int) (swapQuote, error) {
	quote := swapQuote{feeOnInput: pool.FeeDirection.Matches(side)}

	rawReserveOut := pool.ReserveY
	if side == types.SideY {
		rawReserveOut = pool.ReserveX
	}

	var reserveOutDebit sdkmath.Int
	if quote.feeOnInput {
		quote.adminCut = utils.NewBpsRatio(pool.AdminFeeBps).ApplyTo(amountIn)
		quote.thCut = utils.NewBpsRatio(pool.ThFeeBps).ApplyTo(amountIn)
		quote.lpCut = utils.NewBpsRatio(pool.LpFeeBps).ApplyTo(amountIn)
		effective := amountIn.Sub(quote.adminCut).Sub(quote.thCut).Sub(quote.lpCut)

		out, err := k.priceOutput(&pool, side, effective)
		if err != nil {
			return swapQuote{}, err
		}
		quote.out = out
		reserveOutDebit = out
	} else {
		gross, err := k.priceOutput(&pool, side, amountIn)
		if err != nil {
			return swapQuote{}, err
		}
		quote.adminCut = utils.NewBpsRatio(pool.AdminFeeBps).ApplyTo(gross)
		quote.thCut = utils.NewBpsRatio(pool.ThFeeBps).ApplyTo(gross)
		quote.lpCut = utils.NewBpsRatio(pool.LpFeeBps).ApplyTo(gross)
		quote.out = gross.Sub(quote.adminCut).Sub(quote.thCut).Sub(quote.lpCut)
		reserveOutDebit = gross.Sub(quote.lpCut)
	}

	if quote.out.IsZero() {
		return swapQuote{}, types.ErrInvalidParameter.Wrap("swap input too small to price")
	}
	if reserveOutDebit.GT(rawReserveOut) {
		return swapQuote{}, types.ErrInsufficientBalance.Wrapf("pool reserve %s cannot cover swap output %s", rawReserveOut, reserveOutDebit)
	}
	return quote, nil
}

// applySwap commits a quoted trade to the pool book: reserve movements, fee
// pots, and trade statistics.
func applySwap(pool *types.Pool, side types.Side, amountIn sdkmath.Int, quote swapQuote) {
	reserveInCredit := amountIn
	reserveOutDebit := quote.out
	if quote.feeOnInput {
		reserveInCredit = amountIn.Sub(quote.adminCut).Sub(quote.thCut)
	} else {
		reserveOutDebit = quote.out.Add(quote.adminCut).Add(quote.thCut)
	}

	if side == types.SideX {
		pool.ReserveX = pool.ReserveX.Add(reserveInCredit)
		pool.ReserveY = pool.ReserveY.Sub(reserveOutDebit)
		if quote.feeOnInput {
			pool.AdminX = pool.AdminX.Add(quote.adminCut)
			pool.ThX = pool.ThX.Add(quote.thCut)
		} else {
			pool.AdminY = pool.AdminY.Add(quote.adminCut)
			pool.ThY = pool.ThY.Add(quote.thCut)
		}
		pool.RecordTrade(amountIn, quote.out)
	} else {
		pool.ReserveY = pool.ReserveY.Add(reserveInCredit)
		pool.ReserveX = pool.ReserveX.Sub(reserveOutDebit)
		if quote.feeOnInput {
			pool.AdminY = pool.AdminY.Add(quote.adminCut)
			pool.ThY = pool.ThY.Add(quote.thCut)
		} else {
			pool.AdminX = pool.AdminX.Add(quote.adminCut)
			pool.ThX = pool.ThX.Add(quote.thCut)
		}
		pool.RecordTrade(quote.out, amountIn)
	}
}

// priceOutput prices amountIn of side against the pool's offset reserves with
// no fee applied, dispatching on the pool's curve. A zero return means the
// input is too small to buy a single output unit.
func (k Keeper) priceOutput(pool *types.Pool, side types.Side, amountIn sdkmath.Int) (sdkmath.Int, error) {
	baseX, baseY := pool.PricingReserves()
	baseIn, baseOut := baseX, baseY
	scaleIn, scaleOut := pool.ScaleX, pool.ScaleY
	if side == types.SideY {
		baseIn, baseOut = baseY, baseX
		scaleIn, scaleOut = pool.ScaleY, pool.ScaleX
	}

	var out sdkmath.Int
	var err error
	if pool.IsStable() {
		out, err = stableswap.SwapTo(amountIn, baseIn, baseOut, scaleIn, scaleOut, pool.Amp)
	} else {
		out, err = cpmm.SwapOut(amountIn, baseIn, baseOut)
	}
	if err != nil {
		return sdkmath.Int{}, solverError(err)
	}
	return out, nil
}

// solverError translates pricing-package failures into the module's error
// taxonomy.
func solverError(err error) error {
	switch {
	case errors.Is(err, cpmm.ErrInvariant), errors.Is(err, stableswap.ErrInvariant):
		return types.ErrComputationInvariant.Wrap(err.Error())
	case errors.Is(err, stableswap.ErrNoConvergence):
		return types.ErrConvergenceFailure.Wrap(err.Error())
	case errors.Is(err, stableswap.ErrOverflow):
		return types.ErrComputationInvariant.Wrap(err.Error())
	case errors.Is(err, cpmm.ErrAmountRange), errors.Is(err, stableswap.ErrAmountRange),
		errors.Is(err, cpmm.ErrInvalidInput), errors.Is(err, stableswap.ErrInvalidInput):
		return types.ErrInvalidParameter.Wrap(err.Error())
	default:
		return err
	}
}
