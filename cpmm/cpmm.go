// Package cpmm implements the constant product (x*y=k) pricing formulas for a
// two-asset pool: swap output, share minting for deposits, and share burning
// for withdrawals. All functions are pure integer math over sdkmath.Int and
// every truncation favors the pool: outputs round down, required inputs round
// up. Fees are not this package's concern; callers route fees before or after
// pricing.
package cpmm

import (
	"errors"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

var (
	// ErrInvalidInput reports arguments outside a formula's domain.
	ErrInvalidInput = errors.New("input outside formula domain")

	// ErrAmountRange reports a result outside the 64-bit amount domain.
	ErrAmountRange = errors.New("amount outside the 64-bit domain")

	// ErrInvariant reports the reserve product decreasing after a computed
	// result, or a negative mint.
	ErrInvariant = errors.New("product invariant decreased")
)

// SwapOut returns the output amount for swapping dx into a pool with input
// reserve x and output reserve y.
//
// Formula (integer, floor):
//
//	dy = floor(y * dx / (x + dx))
//
// This is the largest dy with (x+dx)*(y-dy) >= x*y; the inequality is
// re-checked before returning.
func SwapOut(dx, x, y sdkmath.Int) (sdkmath.Int, error) {
	if !dx.IsPositive() || !x.IsPositive() || !y.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: swap needs positive amount and reserves", ErrInvalidInput)
	}
	xNew := x.Add(dx)
	dy := y.Mul(dx).Quo(xNew)
	if xNew.Mul(y.Sub(dy)).LT(x.Mul(y)) {
		return sdkmath.Int{}, fmt.Errorf("%w: swap of %s against (%s, %s)", ErrInvariant, dx, x, y)
	}
	if !dy.IsUint64() {
		return sdkmath.Int{}, fmt.Errorf("%w: swap output %s", ErrAmountRange, dy)
	}
	return dy, nil
}

// DepositMint returns the shares minted for depositing dx against reserve x
// with the given outstanding share supply.
//
// Formula (integer, floor):
//
//	d_shares = floor(dx * supply / x)
func DepositMint(dx, x, supply sdkmath.Int) (sdkmath.Int, error) {
	if dx.IsNegative() || !x.IsPositive() || !supply.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: deposit needs positive reserve and supply", ErrInvalidInput)
	}
	return dx.Mul(supply).Quo(x), nil
}

// DepositRequired returns the exact amount that must be deposited against
// reserve x to mint dShares. The inverse of DepositMint, rounded up so the
// pool never under-collects.
//
// Formula (integer, ceil):
//
//	dx = ceil(d_shares * x / supply)
func DepositRequired(dShares, supply, x sdkmath.Int) (sdkmath.Int, error) {
	if dShares.IsNegative() || !supply.IsPositive() || !x.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: deposit needs positive reserve and supply", ErrInvalidInput)
	}
	return ceilDiv(dShares.Mul(x), supply), nil
}

// DepositPriceMoving returns the shares minted for a two-sided deposit that
// may move the pool price: supply grows by the ratio of the reserve-product
// square roots.
//
// Formula (integer, floor):
//
//	minted = floor(isqrt((x+dx)*(y+dy)) * supply / isqrt(x*y)) - supply
func DepositPriceMoving(dx, dy, x, y, supply sdkmath.Int) (sdkmath.Int, error) {
	if dx.IsNegative() || dy.IsNegative() || !x.IsPositive() || !y.IsPositive() || !supply.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: deposit needs positive reserves and supply", ErrInvalidInput)
	}
	rootNew := isqrt(x.Add(dx).Mul(y.Add(dy)))
	rootOld := isqrt(x.Mul(y))
	minted := rootNew.Mul(supply).Quo(rootOld).Sub(supply)
	if minted.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("%w: negative mint for deposit (%s, %s)", ErrInvariant, dx, dy)
	}
	if !minted.IsUint64() {
		return sdkmath.Int{}, fmt.Errorf("%w: minted shares %s", ErrAmountRange, minted)
	}
	return minted, nil
}

// BootstrapShares returns the shares minted by the first deposit into an
// empty pool.
//
// Formula (integer, floor):
//
//	d_shares = isqrt(dx * dy)
func BootstrapShares(dx, dy sdkmath.Int) (sdkmath.Int, error) {
	if !dx.IsPositive() || !dy.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: bootstrap needs both amounts positive", ErrInvalidInput)
	}
	shares := isqrt(dx.Mul(dy))
	if !shares.IsUint64() {
		return sdkmath.Int{}, fmt.Errorf("%w: bootstrap shares %s", ErrAmountRange, shares)
	}
	return shares, nil
}

// WithdrawProportional returns the amounts paid out for burning dShares
// against both reserves.
//
// Formula (integer, floor):
//
//	dx = floor(x * d_shares / supply)
//	dy = floor(y * d_shares / supply)
func WithdrawProportional(x, y, supply, dShares sdkmath.Int) (dx, dy sdkmath.Int, err error) {
	if err := validateBurn(supply, dShares); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if x.IsNegative() || y.IsNegative() {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: reserves must be non-negative", ErrInvalidInput)
	}
	return x.Mul(dShares).Quo(supply), y.Mul(dShares).Quo(supply), nil
}

// WithdrawSingleSide returns the one-sided payout for burning dShares against
// reserve x alone: the reserve share the burned units can no longer claim.
//
// Formula (integer, truncated toward the pool):
//
//	dx = x - ceil(x * (supply-d_shares)^2 / supply^2)
//
// The retained reserve rounds up, so the payout rounds down.
func WithdrawSingleSide(x, supply, dShares sdkmath.Int) (sdkmath.Int, error) {
	if err := validateBurn(supply, dShares); err != nil {
		return sdkmath.Int{}, err
	}
	if x.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("%w: reserve must be non-negative", ErrInvalidInput)
	}
	rem := supply.Sub(dShares)
	kept := ceilDiv(x.Mul(rem).Mul(rem), supply.Mul(supply))
	return x.Sub(kept), nil
}

func validateBurn(supply, dShares sdkmath.Int) error {
	if !supply.IsPositive() {
		return fmt.Errorf("%w: withdrawal needs a positive supply", ErrInvalidInput)
	}
	if dShares.IsNegative() || dShares.GT(supply) {
		return fmt.Errorf("%w: cannot burn %s of %s shares", ErrInvalidInput, dShares, supply)
	}
	return nil
}

func ceilDiv(num, den sdkmath.Int) sdkmath.Int {
	out := num.Quo(den)
	if !num.Mod(den).IsZero() {
		out = out.AddRaw(1)
	}
	return out
}

func isqrt(v sdkmath.Int) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(new(big.Int).Sqrt(v.BigInt()))
}
