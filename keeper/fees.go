package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

// collectFee splits the bps portion off balance and returns both pieces.
//
// Formula (integer, floor):
//
//	fee = floor(balance * bps / 10000)
func collectFee(balance sdkmath.Int, bps uint64) (remaining, fee sdkmath.Int) {
	fee = utils.NewBpsRatio(bps).ApplyTo(balance)
	return balance.Sub(fee), fee
}

// routeWithdrawFee collects the withdraw fee from both withdrawn balances into
// the admin pots and returns the net payouts alongside the fees taken.
func routeWithdrawFee(pool *types.Pool, dx, dy sdkmath.Int) (netX, netY, feeX, feeY sdkmath.Int) {
	netX, feeX = collectFee(dx, pool.WithdrawFeeBps)
	netY, feeY = collectFee(dy, pool.WithdrawFeeBps)
	pool.AdminX = pool.AdminX.Add(feeX)
	pool.AdminY = pool.AdminY.Add(feeY)
	return netX, netY, feeX, feeY
}

// autoBuyback converts the holder fees collected on the pool's fee side into
// the opposite asset through the pool's own no-fee pricing path. The converted
// amount moves into the reserve and the equivalent output accrues to the
// opposite holder-fee pot. A balance too small to price stays put and is
// retried on the next trade.
func (k Keeper) autoBuyback(pool *types.Pool) error {
	if pool.ThReward.Type != types.RewardAutoBuyback {
		return nil
	}

	switch {
	case pool.FeeDirection == types.FeeCollectX && pool.ThX.IsPositive():
		out, err := k.priceOutput(pool, types.SideX, pool.ThX)
		if err != nil {
			return err
		}
		if out.IsZero() {
			return nil
		}
		pool.ReserveX = pool.ReserveX.Add(pool.ThX)
		pool.ReserveY = pool.ReserveY.Sub(out)
		pool.ThX = sdkmath.ZeroInt()
		pool.ThY = pool.ThY.Add(out)
	case pool.FeeDirection == types.FeeCollectY && pool.ThY.IsPositive():
		out, err := k.priceOutput(pool, types.SideY, pool.ThY)
		if err != nil {
			return err
		}
		if out.IsZero() {
			return nil
		}
		pool.ReserveY = pool.ReserveY.Add(pool.ThY)
		pool.ReserveX = pool.ReserveX.Sub(out)
		pool.ThY = sdkmath.ZeroInt()
		pool.ThX = pool.ThX.Add(out)
	}
	return nil
}
