package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"

	"github.com/vividnetwork/suiswap-contract/types"
)

// GetParams returns the registry parameters. It fails if the registry has not
// been created yet.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Params{}, types.ErrInvalidParameter.Wrap("registry has not been created")
		}
		return types.Params{}, fmt.Errorf("failed to read registry params: %w", err)
	}
	return params, nil
}

// GetPool returns the pool with the given id.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	pool, err := k.Pools.Get(ctx, poolID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Pool{}, types.ErrInvalidParameter.Wrapf("pool %d not found", poolID)
		}
		return types.Pool{}, fmt.Errorf("failed to read pool %d: %w", poolID, err)
	}
	return pool, nil
}

// GetPoolByDenoms returns the pool registered for the given denom pair,
// regardless of the order the denoms are passed in.
func (k Keeper) GetPoolByDenoms(ctx context.Context, denomA, denomB string) (types.Pool, error) {
	poolID, err := k.PoolByDenoms.Get(ctx, types.PairKey(denomA, denomB))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Pool{}, types.ErrInvalidParameter.Wrapf("no pool for pair %s/%s", denomA, denomB)
		}
		return types.Pool{}, fmt.Errorf("failed to read pair index for %s/%s: %w", denomA, denomB, err)
	}
	return k.GetPool(ctx, poolID)
}

// GetPools returns all pools ordered by id.
func (k Keeper) GetPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.Pools.Walk(ctx, nil, func(_ uint64, pool types.Pool) (bool, error) {
		pools = append(pools, pool)
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate pools: %w", err)
	}
	return pools, nil
}

// getOperablePool returns the pool with the given id, rejecting pools whose
// stored version does not match the version this code operates on. Stale pools
// must be migrated before they accept further operations.
func (k Keeper) getOperablePool(ctx context.Context, poolID uint64) (types.Pool, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, err
	}
	if pool.Version != types.CurrentPoolVersion {
		return types.Pool{}, types.ErrVersionMismatch.Wrapf("pool %d has version %d, expected %d", poolID, pool.Version, types.CurrentPoolVersion)
	}
	return pool, nil
}

// setPool persists the pool after checking it is internally consistent.
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	if err := pool.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid pool %d: %w", pool.Id, err)
	}
	if err := k.Pools.Set(ctx, pool.Id, pool); err != nil {
		return fmt.Errorf("failed to store pool %d: %w", pool.Id, err)
	}
	return nil
}
