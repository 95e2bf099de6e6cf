package types

import (
	context "context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the custody functionality needed from the asset layer.
// Transfers are assumed atomic once amounts are validated.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins
}

// EpochKeeper exposes the system's discrete clock. One epoch per real-world
// day in production; tests drive it manually.
type EpochKeeper interface {
	CurrentEpoch(ctx context.Context) uint64
}

// FarmKeeper is the slice of the staking subsystem this module touches: the
// per-(stake, pool) "claimed at epoch" marker stashed on stake records. Stake
// records themselves are read-only inputs passed in by the caller.
type FarmKeeper interface {
	GetClaimMarker(ctx context.Context, stakeID, poolID uint64) (epoch uint64, found bool, err error)
	SetClaimMarker(ctx context.Context, stakeID, poolID uint64, epoch uint64) error
	ClearClaimMarker(ctx context.Context, stakeID, poolID uint64) error
}
