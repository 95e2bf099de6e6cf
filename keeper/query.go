package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"

	"github.com/vividnetwork/suiswap-contract/types"
)

// SpotPrice returns the pool's mid quote for one unit of the given side's
// asset in units of the opposite asset, computed from the offset reserves.
// It is the balance ratio, not a marginal execution price; use
// EstimateSwapOut for the amount a concrete trade would pay.
func (k Keeper) SpotPrice(ctx context.Context, poolID uint64, side types.Side) (decimal.Decimal, error) {
	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return decimal.Zero, err
	}

	baseX, baseY := pool.PricingReserves()
	baseIn, baseOut := baseX, baseY
	if side == types.SideY {
		baseIn, baseOut = baseY, baseX
	}
	if !baseIn.IsPositive() || !baseOut.IsPositive() {
		return decimal.Zero, types.ErrInsufficientBalance.Wrapf("pool %d has no liquidity to quote", poolID)
	}

	num := decimal.NewFromBigInt(baseOut.BigInt(), 0)
	den := decimal.NewFromBigInt(baseIn.BigInt(), 0)
	return num.Div(den), nil
}

// EstimateSwapOut prices a swap of amountIn on the given side without
// executing it, fees included. The estimate matches what Swap would pay
// against the same pool state.
func (k Keeper) EstimateSwapOut(ctx context.Context, poolID uint64, side types.Side, amountIn sdkmath.Int) (sdkmath.Int, error) {
	zero := sdkmath.ZeroInt()

	if amountIn.IsNil() || !amountIn.IsPositive() {
		return zero, types.ErrInvalidParameter.Wrap("swap input must be positive")
	}
	if !amountIn.IsUint64() {
		return zero, types.ErrInvalidParameter.Wrap("swap input exceeds the amount domain")
	}

	pool, err := k.getOperablePool(ctx, poolID)
	if err != nil {
		return zero, err
	}

	quote, err := k.quoteSwap(pool, side, amountIn)
	if err != nil {
		return zero, err
	}
	return quote.out, nil
}
