package keeper

import (
	"context"

	"github.com/vividnetwork/suiswap-contract/types"
)

// MigratePoolVersionDefaults stamps the current schema version on pools
// persisted before the version field existed.
//
// Pools written by early releases carry a zero Version and are rejected by
// every operation until migrated. This migration walks all pools and stamps
// any zero-version pool with the current version; their balance and window
// fields are already in the current shape.
//
// This function is intended to be executed once from an upgrade handler and is
// idempotent; running it multiple times will not modify already-migrated state.
func (k Keeper) MigratePoolVersionDefaults(ctx context.Context) error {
	pools, err := k.GetPools(ctx)
	if err != nil {
		return err
	}

	for _, pool := range pools {
		if pool.Version != 0 {
			continue
		}
		pool.Version = types.CurrentPoolVersion
		if err := k.setPool(ctx, pool); err != nil {
			return err
		}
	}

	return nil
}
