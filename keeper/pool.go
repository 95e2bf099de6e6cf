package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/vividnetwork/suiswap-contract/types"
)

// InitRegistry creates the one-time global registry that all pools hang off.
// Only the module authority may create it, and it can only be created once.
func (k *Keeper) InitRegistry(ctx context.Context, creator string, params types.Params) error {
	if creator != k.authority {
		return types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, creator)
	}
	has, err := k.Params.Has(ctx)
	if err != nil {
		return fmt.Errorf("failed to check registry existence: %w", err)
	}
	if has {
		return types.ErrInvalidParameter.Wrap("registry already created")
	}
	if err := params.Validate(); err != nil {
		return types.ErrInvalidParameter.Wrap(err.Error())
	}
	if err := k.Params.Set(ctx, params); err != nil {
		return fmt.Errorf("failed to store registry params: %w", err)
	}

	k.emitEvent(ctx, types.NewEventRegistryCreated(creator, params.HolderRewardNepoch))
	return nil
}

// CreatePool creates a pool with the full attribute set. Only the module
// authority may use this entry point; everyone else goes through
// CreatePoolPermissionless.
func (k *Keeper) CreatePool(ctx context.Context, creator string, attributes types.PoolAttributes) (types.Pool, error) {
	if creator != k.authority {
		return types.Pool{}, types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, creator)
	}
	return k.createPool(ctx, creator, attributes)
}

// CreatePoolPermissionless creates a constant product pool for a denom pair
// using the registry's default fee configuration. Anyone may call it.
func (k *Keeper) CreatePoolPermissionless(ctx context.Context, creator string, denomX, denomY string) (types.Pool, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Pool{}, err
	}
	attributes := types.PoolAttributes{
		PoolType:         types.PoolTypeConstantProduct,
		HolderRewardType: types.RewardDistributeAsBalance,
		FeeDirection:     types.FeeCollectX,
		DenomX:           denomX,
		DenomY:           denomY,
		AdminFeeBps:      params.DefaultAdminFeeBps,
		LpFeeBps:         params.DefaultLpFeeBps,
		ThFeeBps:         params.DefaultThFeeBps,
		WithdrawFeeBps:   params.DefaultWithdrawFeeBps,
		BasisX:           sdkmath.ZeroInt(),
		BasisY:           sdkmath.ZeroInt(),
	}
	return k.createPool(ctx, creator, attributes)
}

// createPool validates the attributes, reserves the pair, and stores the
// pool with empty balances and a freshly aligned reward window.
func (k *Keeper) createPool(ctx context.Context, creator string, attributes types.PoolAttributes) (types.Pool, error) {
	if err := attributes.Validate(); err != nil {
		return types.Pool{}, types.ErrInvalidParameter.Wrap(err.Error())
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Pool{}, err
	}

	pairKey := types.PairKey(attributes.DenomX, attributes.DenomY)
	taken, err := k.PoolByDenoms.Has(ctx, pairKey)
	if err != nil {
		return types.Pool{}, fmt.Errorf("failed to check pair index: %w", err)
	}
	if taken {
		return types.Pool{}, types.ErrDuplicatePool.Wrapf("a pool for pair %s/%s already exists", attributes.DenomX, attributes.DenomY)
	}

	poolID, err := k.PoolID.Next(ctx)
	if err != nil {
		return types.Pool{}, fmt.Errorf("failed to allocate pool id: %w", err)
	}

	epoch := k.EpochKeeper.CurrentEpoch(ctx)
	windowStart := types.WindowStart(epoch, params.HolderRewardNepoch)
	scaleX, scaleY := types.ScalesForDecimals(attributes.DecimalsX, attributes.DecimalsY)

	pool := types.Pool{
		Id:         poolID,
		PoolType:   attributes.PoolType,
		Owner:      creator,
		Version:    types.CurrentPoolVersion,
		FreezeBits: attributes.FreezeBits,

		DenomX: attributes.DenomX,
		DenomY: attributes.DenomY,

		LspSupply: sdkmath.ZeroInt(),

		FeeDirection:   attributes.FeeDirection,
		AdminFeeBps:    attributes.AdminFeeBps,
		LpFeeBps:       attributes.LpFeeBps,
		ThFeeBps:       attributes.ThFeeBps,
		WithdrawFeeBps: attributes.WithdrawFeeBps,

		Amp:    attributes.Amp,
		ScaleX: scaleX,
		ScaleY: scaleY,

		ReserveX: sdkmath.ZeroInt(),
		ReserveY: sdkmath.ZeroInt(),
		AdminX:   sdkmath.ZeroInt(),
		AdminY:   sdkmath.ZeroInt(),
		ThX:      sdkmath.ZeroInt(),
		ThY:      sdkmath.ZeroInt(),
		BasisX:   attributes.BasisX,
		BasisY:   attributes.BasisY,

		TradedX:          sdkmath.ZeroInt(),
		TradedY:          sdkmath.ZeroInt(),
		TradeEpoch:       epoch,
		TradeVolumeX:     sdkmath.ZeroInt(),
		TradeVolumeY:     sdkmath.ZeroInt(),
		LastTradeVolumeX: sdkmath.ZeroInt(),
		LastTradeVolumeY: sdkmath.ZeroInt(),

		ThReward: types.HolderRewardState{
			Type:             attributes.HolderRewardType,
			X:                sdkmath.ZeroInt(),
			Y:                sdkmath.ZeroInt(),
			XSupply:          sdkmath.ZeroInt(),
			YSupply:          sdkmath.ZeroInt(),
			Nepoch:           params.HolderRewardNepoch,
			StartEpoch:       windowStart,
			EndEpoch:         windowStart + params.HolderRewardNepoch - 1,
			TotalStakeAmount: sdkmath.ZeroInt(),
			TotalStakeBoost:  sdkmath.ZeroInt(),
		},
		Mining: types.MiningState{
			RewardDenom: params.MiningRewardDenom,
			Ampt:        types.NewValuePerToken(),
			LastEpoch:   epoch,
		},
	}

	if err := k.setPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}
	if err := k.PoolByDenoms.Set(ctx, pairKey, poolID); err != nil {
		return types.Pool{}, fmt.Errorf("failed to store pair index: %w", err)
	}

	k.emitEvent(ctx, types.NewEventPoolCreated(pool, creator))
	return pool, nil
}
