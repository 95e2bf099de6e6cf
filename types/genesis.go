package types

import (
	fmt "fmt"
)

// GenesisState is the module's exported state: registry params, every pool,
// and the next pool id to assign.
type GenesisState struct {
	Params     Params `json:"params"`
	Pools      []Pool `json:"pools,omitempty"`
	NextPoolId uint64 `json:"next_pool_id"`
}

// DefaultGenesisState returns the default genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	seenIDs := make(map[uint64]struct{}, len(gs.Pools))
	seenPairs := make(map[string]struct{}, len(gs.Pools))
	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool at index %d: %w", i, err)
		}
		if _, ok := seenIDs[pool.Id]; ok {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		seenIDs[pool.Id] = struct{}{}
		pair := PairKey(pool.DenomX, pool.DenomY)
		if _, ok := seenPairs[pair]; ok {
			return fmt.Errorf("duplicate pool pair %s", pair)
		}
		seenPairs[pair] = struct{}{}
		if pool.Id >= gs.NextPoolId {
			return fmt.Errorf("pool id %d not below next pool id %d", pool.Id, gs.NextPoolId)
		}
	}
	return nil
}
