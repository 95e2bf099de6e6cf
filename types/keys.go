package types

import (
	fmt "fmt"

	"cosmossdk.io/collections"
	"github.com/cometbft/cometbft/crypto"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "suiswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// GovModuleName duplicates the gov module's name to avoid a dependency with x/gov.
	// It should be synced with the gov module's name if it is ever changed.
	// See: https://github.com/cosmos/cosmos-sdk/blob/v0.52.0-beta.2/x/gov/types/keys.go#L9
	GovModuleName = "gov"
)

var (
	// ParamsKeyPrefix is the prefix to retrieve the registry Params
	ParamsKeyPrefix = collections.NewPrefix(0)
	// ParamsName is a human-readable name for the params collection.
	ParamsName = "params"
	// PoolsKeyPrefix is the prefix to retrieve all Pools
	PoolsKeyPrefix = collections.NewPrefix(1)
	// PoolsName is a human-readable name for the pools collection.
	PoolsName = "pools"
	// PoolIDSequenceKeyPrefix is the prefix for the pool id sequence.
	PoolIDSequenceKeyPrefix = collections.NewPrefix(2)
	// PoolIDSequenceName is a human-readable name for the pool id sequence.
	PoolIDSequenceName = "pool_id"
	// PoolByDenomsKeyPrefix is the prefix for the denom pair index.
	PoolByDenomsKeyPrefix = collections.NewPrefix(3)
	// PoolByDenomsName is a human-readable name for the denom pair index.
	PoolByDenomsName = "pool_by_denoms"
)

// GetPoolAddress returns the module account address holding the given pool's balances.
func GetPoolAddress(poolID uint64) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(fmt.Sprintf("%s/pool/%d", ModuleName, poolID))))
}

// PairKey returns the canonical unordered store key for a denom pair. Both
// orderings of the same two denoms produce the same key, which makes
// duplicate-pair detection order-insensitive.
func PairKey(denomA, denomB string) string {
	if denomB < denomA {
		denomA, denomB = denomB, denomA
	}
	return denomA + "," + denomB
}
