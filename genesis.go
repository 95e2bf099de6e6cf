package suiswap

import (
	"context"

	"github.com/vividnetwork/suiswap-contract/keeper"
	"github.com/vividnetwork/suiswap-contract/types"
)

// InitGenesis initializes the module's state from a provided genesis state.
func InitGenesis(ctx context.Context, k *keeper.Keeper, genState *types.GenesisState) {
	k.InitGenesis(ctx, genState)
}

// ExportGenesis returns the module's exported genesis.
func ExportGenesis(ctx context.Context, k *keeper.Keeper) *types.GenesisState {
	return k.ExportGenesis(ctx)
}
