package simulation

import (
	"fmt"
	"math/rand"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vividnetwork/suiswap-contract/cpmm"
	"github.com/vividnetwork/suiswap-contract/types"
	"github.com/vividnetwork/suiswap-contract/utils"
)

const (
	MaxNumPools            = 8
	ChanceOfStablePool     = 3 // 1 in X
	ChanceOfEmptyPool      = 4 // 1 in X
	ChanceOfAutoBuyback    = 3 // 1 in X
	ChanceOfBasisOffset    = 4 // 1 in X
	ChanceOfFrozenPool     = 8 // 1 in X
	ChanceOfMiningEmission = 3 // 1 in X
	ChanceOfRewardDenom    = 2 // 1 in X
	MinActiveReserve       = 10_000
	MaxActiveReserve       = 1_000_000_000
	MaxFeeBps              = 300
	MaxWithdrawFeeBps      = 100
	MaxPotBalance          = 10_000
	MaxBasisOffset         = 1_000_000
	MaxWindowNepoch        = 30
	MaxBoostTiers          = 4
	MaxTierLockStep        = 90
	MaxTierBoostAddition   = 400
	MaxMiningSpeed         = 10_000
	MaxStableDecimals      = 12
	MinStableDecimals      = 6
)

// AmpOptions are the amplification coefficients stable pools draw from.
var AmpOptions = []uint64{1, 10, 100, 1_000}

// RandomizedParams generates random registry parameters.
func RandomizedParams(r *rand.Rand) types.Params {
	params := types.Params{
		HolderRewardNepoch:     uint64(r.Intn(MaxWindowNepoch)) + 1,
		DefaultAdminFeeBps:     uint64(r.Intn(MaxFeeBps)),
		DefaultLpFeeBps:        uint64(r.Intn(MaxFeeBps)),
		DefaultThFeeBps:        uint64(r.Intn(MaxFeeBps)),
		DefaultWithdrawFeeBps:  uint64(r.Intn(MaxWithdrawFeeBps)),
		DefaultBoostMultiplier: types.DefaultBoostMultiplier,
	}

	lock := uint64(0)
	for i := 0; i < r.Intn(MaxBoostTiers+1); i++ {
		lock += uint64(r.Intn(MaxTierLockStep)) + 1
		params.BoostSchedule = append(params.BoostSchedule, types.BoostTier{
			LockEpochs: lock,
			Multiplier: types.DefaultBoostMultiplier + uint64(r.Intn(MaxTierBoostAddition)),
		})
	}

	if r.Intn(ChanceOfRewardDenom) == 0 {
		params.MiningRewardDenom = "reward"
	}
	return params
}

// RandomizedGenState generates a random pool module genesis state as observed
// at the given epoch: random registry parameters and a mix of empty and active
// pools across both curve types.
func RandomizedGenState(r *rand.Rand, epoch uint64) *types.GenesisState {
	params := RandomizedParams(r)

	numPools := r.Intn(MaxNumPools) + 1
	pools := make([]types.Pool, 0, numPools)
	for i := 0; i < numPools; i++ {
		pools = append(pools, randomPool(r, params, epoch, uint64(i)))
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		NextPoolId: uint64(numPools),
	}
}

func randomPool(r *rand.Rand, params types.Params, epoch uint64, id uint64) types.Pool {
	zero := sdkmath.ZeroInt()
	windowStart := types.WindowStart(epoch, params.HolderRewardNepoch)

	pool := types.Pool{
		Id:       id,
		PoolType: types.PoolTypeConstantProduct,
		Owner:    RandomAddress(r).Bech32,
		Version:  types.CurrentPoolVersion,

		DenomX: fmt.Sprintf("pool%dx", id),
		DenomY: fmt.Sprintf("pool%dy", id),

		LspSupply: zero,

		FeeDirection:   types.FeeCollectX,
		AdminFeeBps:    uint64(r.Intn(MaxFeeBps)),
		LpFeeBps:       uint64(r.Intn(MaxFeeBps)),
		ThFeeBps:       uint64(r.Intn(MaxFeeBps)),
		WithdrawFeeBps: uint64(r.Intn(MaxWithdrawFeeBps)),

		ScaleX: sdkmath.OneInt(),
		ScaleY: sdkmath.OneInt(),

		ReserveX: zero,
		ReserveY: zero,
		AdminX:   zero,
		AdminY:   zero,
		ThX:      zero,
		ThY:      zero,
		BasisX:   zero,
		BasisY:   zero,

		TradedX:          zero,
		TradedY:          zero,
		TradeEpoch:       epoch,
		TradeVolumeX:     zero,
		TradeVolumeY:     zero,
		LastTradeVolumeX: zero,
		LastTradeVolumeY: zero,

		ThReward: types.HolderRewardState{
			Type:             types.RewardDistributeAsBalance,
			X:                zero,
			Y:                zero,
			XSupply:          zero,
			YSupply:          zero,
			Nepoch:           params.HolderRewardNepoch,
			StartEpoch:       windowStart,
			EndEpoch:         windowStart + params.HolderRewardNepoch - 1,
			TotalStakeAmount: zero,
			TotalStakeBoost:  zero,
		},
		Mining: types.MiningState{
			Ampt:      types.NewValuePerToken(),
			LastEpoch: epoch,
		},
	}

	if r.Intn(2) == 0 {
		pool.FeeDirection = types.FeeCollectY
	}
	if r.Intn(ChanceOfAutoBuyback) == 0 {
		pool.ThReward.Type = types.RewardAutoBuyback
	}
	if r.Intn(ChanceOfFrozenPool) == 0 {
		pool.FreezeBits = uint32(r.Intn(int(types.FreezeAllBits) + 1))
	}

	if r.Intn(ChanceOfStablePool) == 0 {
		pool.PoolType = types.PoolTypeStableSwap
		pool.Amp = AmpOptions[r.Intn(len(AmpOptions))]
		decimalsX := uint32(r.Intn(MaxStableDecimals-MinStableDecimals+1)) + MinStableDecimals
		decimalsY := uint32(r.Intn(MaxStableDecimals-MinStableDecimals+1)) + MinStableDecimals
		pool.ScaleX, pool.ScaleY = types.ScalesForDecimals(decimalsX, decimalsY)
	} else if r.Intn(ChanceOfBasisOffset) == 0 {
		pool.BasisX = sdkmath.NewInt(r.Int63n(MaxBasisOffset) + 1)
		pool.BasisY = sdkmath.NewInt(r.Int63n(MaxBasisOffset) + 1)
	}

	if r.Intn(ChanceOfEmptyPool) != 0 {
		fillActivePool(r, &pool, epoch)
	}

	if r.Intn(ChanceOfMiningEmission) == 0 {
		pool.Mining.Treasury = RandomAddress(r).Bech32
		pool.Mining.RewardDenom = "reward"
		pool.Mining.Speed = uint64(r.Intn(MaxMiningSpeed)) + 1
	}

	return pool
}

// fillActivePool gives the pool the state of a market that has seen deposits
// and trades: reserves with a matching share supply, fee pots, trade counters,
// and a funded reward window snapshot.
func fillActivePool(r *rand.Rand, pool *types.Pool, epoch uint64) {
	pool.ReserveX = randAmount(r, MinActiveReserve, MaxActiveReserve)
	pool.ReserveY = randAmount(r, MinActiveReserve, MaxActiveReserve)

	supply, err := cpmm.BootstrapShares(pool.ReserveX, pool.ReserveY)
	if err != nil {
		panic(fmt.Errorf("failed to derive a share supply: %w", err))
	}
	pool.LspSupply = supply
	pool.Mining.Ampt.Amount = supply.SubRaw(types.MinimumLiquidity).MulRaw(int64(types.DefaultBoostMultiplier))

	pool.AdminX = smallAmount(r)
	pool.AdminY = smallAmount(r)
	pool.ThX = smallAmount(r)
	pool.ThY = smallAmount(r)

	pool.TradedX = randAmount(r, 0, MaxActiveReserve)
	pool.TradedY = randAmount(r, 0, MaxActiveReserve)
	pool.TradeVolumeX = smallAmount(r)
	pool.TradeVolumeY = smallAmount(r)
	pool.LastTradeVolumeX = smallAmount(r)
	pool.LastTradeVolumeY = smallAmount(r)

	pool.ThReward.XSupply = smallAmount(r)
	pool.ThReward.YSupply = smallAmount(r)
	pool.ThReward.X = randAmount(r, 0, pool.ThReward.XSupply.Int64())
	pool.ThReward.Y = randAmount(r, 0, pool.ThReward.YSupply.Int64())
	pool.ThReward.TotalStakeAmount = smallAmount(r)
	pool.ThReward.TotalStakeBoost = pool.ThReward.TotalStakeAmount.MulRaw(int64(types.DefaultBoostMultiplier))
}

// RandomAddress derives a deterministic account address from the simulation
// source, so a seed reproduces its run exactly.
func RandomAddress(r *rand.Rand) utils.Address {
	bz := make([]byte, 20)
	if _, err := r.Read(bz); err != nil {
		panic(fmt.Errorf("failed to draw address bytes: %w", err))
	}
	bech, err := sdk.Bech32ifyAddressBytes("cosmos", bz)
	if err != nil {
		panic(fmt.Errorf("failed to encode address: %w", err))
	}
	return utils.Address{Bytes: bz, Bech32: bech}
}

func randAmount(r *rand.Rand, minVal, maxVal int64) sdkmath.Int {
	if maxVal <= minVal {
		return sdkmath.NewInt(minVal)
	}
	return sdkmath.NewInt(minVal + r.Int63n(maxVal-minVal+1))
}

func smallAmount(r *rand.Rand) sdkmath.Int {
	return sdkmath.NewInt(r.Int63n(MaxPotBalance + 1))
}
