package types

import (
	"cosmossdk.io/errors"
)

var (
	// ErrInvalidParameter error for malformed or out-of-range inputs
	ErrInvalidParameter = errors.Register(ModuleName, 2, "invalid parameter")

	// ErrInsufficientBalance error for operations exceeding an available balance
	ErrInsufficientBalance = errors.Register(ModuleName, 3, "insufficient balance")

	// ErrSlippageExceeded error for swap outputs below the caller's minimum
	ErrSlippageExceeded = errors.Register(ModuleName, 4, "slippage exceeded")

	// ErrOperationFrozen error for operations disabled by the pool freeze mask
	ErrOperationFrozen = errors.Register(ModuleName, 5, "operation frozen")

	// ErrDuplicatePool error for creating a pool over an already-registered pair
	ErrDuplicatePool = errors.Register(ModuleName, 6, "duplicate pool")

	// ErrVersionMismatch error for pools persisted under a stale schema version
	ErrVersionMismatch = errors.Register(ModuleName, 7, "pool version mismatch")

	// ErrComputationInvariant error for internal-consistency failures that valid
	// input can never produce. Seeing this error means a bug, not a bad request.
	ErrComputationInvariant = errors.Register(ModuleName, 8, "computation invariant violated")

	// ErrConvergenceFailure error for the stableswap solver exceeding its iteration bound
	ErrConvergenceFailure = errors.Register(ModuleName, 9, "solver failed to converge")

	// ErrUnauthorized error for callers lacking the required authority
	ErrUnauthorized = errors.Register(ModuleName, 10, "unauthorized")
)
