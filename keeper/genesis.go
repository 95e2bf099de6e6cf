package keeper

import (
	"context"
	"fmt"

	"github.com/vividnetwork/suiswap-contract/types"
)

// InitGenesis initializes the pool module state from genesis.
func (k Keeper) InitGenesis(ctx context.Context, genState *types.GenesisState) {
	if genState == nil {
		return
	}

	if err := genState.Validate(); err != nil {
		panic(fmt.Errorf("invalid pool genesis state: %w", err))
	}

	if err := k.Params.Set(ctx, genState.Params); err != nil {
		panic(err)
	}

	for i := range genState.Pools {
		pool := genState.Pools[i]
		if err := k.Pools.Set(ctx, pool.Id, pool); err != nil {
			panic(fmt.Errorf("failed to store pool %d: %w", pool.Id, err))
		}
		if err := k.PoolByDenoms.Set(ctx, types.PairKey(pool.DenomX, pool.DenomY), pool.Id); err != nil {
			panic(fmt.Errorf("failed to store pair index for pool %d: %w", pool.Id, err))
		}
	}

	if err := k.PoolID.Set(ctx, genState.NextPoolId); err != nil {
		panic(fmt.Errorf("failed to set the pool id sequence: %w", err))
	}
}

// ExportGenesis exports the current state of the pool module.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	params, err := k.Params.Get(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to get pool module params: %w", err))
	}

	pools, err := k.GetPools(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to export pools: %w", err))
	}

	nextPoolID, err := k.PoolID.Peek(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to read the pool id sequence: %w", err))
	}

	return &types.GenesisState{
		Params:     params,
		Pools:      pools,
		NextPoolId: nextPoolID,
	}
}
