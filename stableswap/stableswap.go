// Package stableswap implements an amplified two-asset stable invariant:
// Newton's-method solutions for the invariant D and the companion reserve Y,
// plus the swap, share-mint, and share-burn formulas built on them. Reserves
// enter already aligned to a common decimal basis through per-side scale
// factors. Internal math runs on 256-bit unsigned integers with checked
// arithmetic; combinations of reserves and amplification extreme enough to
// overflow 256 bits fail with ErrOverflow instead of wrapping. Outputs are
// range-checked back to the 64-bit amount domain.
package stableswap

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/holiman/uint256"
)

const (
	// nCoins is the number of assets in the pool. The recurrences below are
	// specialized to two.
	nCoins = 2

	// maxIterations bounds both Newton solvers. Exceeding it returns
	// ErrNoConvergence.
	maxIterations = 255
)

var (
	// ErrInvalidInput reports arguments outside a formula's domain.
	ErrInvalidInput = errors.New("input outside formula domain")

	// ErrNoConvergence reports a Newton solver exhausting its iteration bound.
	ErrNoConvergence = errors.New("solver did not converge")

	// ErrOverflow reports 256-bit intermediate overflow.
	ErrOverflow = errors.New("intermediate overflow")

	// ErrAmountRange reports a result outside the 64-bit amount domain.
	ErrAmountRange = errors.New("amount outside the 64-bit domain")

	// ErrInvariant reports the post-trade invariant falling below the
	// pre-trade value.
	ErrInvariant = errors.New("stable invariant decreased")
)

// ComputeD returns the invariant D for scaled reserves x and y under the
// given amplification coefficient. Zero reserves on both sides yield zero.
func ComputeD(x, y sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	xp, err := toWide(x)
	if err != nil {
		return sdkmath.Int{}, err
	}
	yp, err := toWide(y)
	if err != nil {
		return sdkmath.Int{}, err
	}
	d, err := computeD(xp, yp, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return fromWide(d), nil
}

// ComputeY returns the companion reserve solving the invariant equation for
// target invariant d when the other side's scaled reserve moves to xNew.
func ComputeY(xNew, d sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	xp, err := toWide(xNew)
	if err != nil {
		return sdkmath.Int{}, err
	}
	dp, err := toWide(d)
	if err != nil {
		return sdkmath.Int{}, err
	}
	yp, err := computeY(xp, dp, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return fromWide(yp), nil
}

// SwapTo returns the raw output amount for swapping raw input dx into raw
// reserves (x, y) with the given scale factors: the invariant is solved on
// the scaled values, one scaled unit is retained in the pool's favor, and the
// result floors back to raw units. The post-swap invariant is re-checked
// against the pre-swap one. A zero result means the input is too small to
// price.
func SwapTo(dx, x, y, scaleX, scaleY sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	if !dx.IsPositive() || !x.IsPositive() || !y.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: swap needs positive amount and reserves", ErrInvalidInput)
	}
	xs, err := scaleWide(x, scaleX)
	if err != nil {
		return sdkmath.Int{}, err
	}
	ys, err := scaleWide(y, scaleY)
	if err != nil {
		return sdkmath.Int{}, err
	}
	dxs, err := scaleWide(dx, scaleX)
	if err != nil {
		return sdkmath.Int{}, err
	}
	d0, err := computeD(xs, ys, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	xsNew, err := add(xs, dxs)
	if err != nil {
		return sdkmath.Int{}, err
	}
	ysNew, err := computeY(xsNew, d0, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if ysNew.Cmp(ys) >= 0 {
		return sdkmath.ZeroInt(), nil
	}
	// One scaled unit stays behind on top of the floor.
	dys := new(uint256.Int).Sub(ys, ysNew)
	if dys.LtUint64(2) {
		return sdkmath.ZeroInt(), nil
	}
	dys.SubUint64(dys, 1)
	dy := fromWide(dys).Quo(scaleY)
	if dy.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	if !dy.IsUint64() {
		return sdkmath.Int{}, fmt.Errorf("%w: swap output %s", ErrAmountRange, dy)
	}
	ysAfter, err := scaleWide(y.Sub(dy), scaleY)
	if err != nil {
		return sdkmath.Int{}, err
	}
	d1, err := computeD(xsNew, ysAfter, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if d1.Cmp(d0) < 0 {
		return sdkmath.Int{}, fmt.Errorf("%w: swap of %s against (%s, %s)", ErrInvariant, dx, x, y)
	}
	return dy, nil
}

// MintForDeposit returns the shares minted for depositing raw (dx, dy) into
// raw reserves (x, y): supply grows by the relative invariant growth. A
// deposit that does not grow the invariant mints nothing.
//
// Formula (integer, floor):
//
//	d_shares = floor(supply * (D1 - D0) / D0)
//
// The per-share invariant value must not decrease: D1*supply >= D0*(supply+d).
func MintForDeposit(dx, dy, x, y, scaleX, scaleY, supply sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	if dx.IsNegative() || dy.IsNegative() || !x.IsPositive() || !y.IsPositive() || !supply.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("%w: deposit needs positive reserves and supply", ErrInvalidInput)
	}
	d0, err := scaledD(x, y, scaleX, scaleY, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	d1, err := scaledD(x.Add(dx), y.Add(dy), scaleX, scaleY, amp)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if d1.LTE(d0) {
		return sdkmath.ZeroInt(), nil
	}
	minted := supply.Mul(d1.Sub(d0)).Quo(d0)
	if minted.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	if !minted.IsUint64() {
		return sdkmath.Int{}, fmt.Errorf("%w: minted shares %s", ErrAmountRange, minted)
	}
	if d1.Mul(supply).LT(d0.Mul(supply.Add(minted))) {
		return sdkmath.Int{}, fmt.Errorf("%w: mint of %s diluted the pool", ErrInvariant, minted)
	}
	return minted, nil
}

// WithdrawProportional returns the raw amounts paid out for burning dShares
// against raw reserves (x, y), and verifies the per-share invariant value of
// the remaining pool did not decrease.
//
// Formula (integer, floor):
//
//	dx = floor(x * d_shares / supply)
//	dy = floor(y * d_shares / supply)
func WithdrawProportional(dShares, supply, x, y, scaleX, scaleY sdkmath.Int, amp uint64) (dx, dy sdkmath.Int, err error) {
	if !supply.IsPositive() || dShares.IsNegative() || dShares.GT(supply) {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: cannot burn %s of %s shares", ErrInvalidInput, dShares, supply)
	}
	if !x.IsPositive() || !y.IsPositive() {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: withdrawal needs positive reserves", ErrInvalidInput)
	}
	dx = x.Mul(dShares).Quo(supply)
	dy = y.Mul(dShares).Quo(supply)
	xAfter, yAfter := x.Sub(dx), y.Sub(dy)
	if xAfter.IsZero() && yAfter.IsZero() {
		return dx, dy, nil
	}
	d0, err := scaledD(x, y, scaleX, scaleY, amp)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	d1, err := scaledD(xAfter, yAfter, scaleX, scaleY, amp)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if d1.Mul(supply).LT(d0.Mul(supply.Sub(dShares))) {
		return sdkmath.Int{}, sdkmath.Int{}, fmt.Errorf("%w: burn of %s diluted the pool", ErrInvariant, dShares)
	}
	return dx, dy, nil
}

func scaledD(x, y, scaleX, scaleY sdkmath.Int, amp uint64) (sdkmath.Int, error) {
	return ComputeD(x.Mul(scaleX), y.Mul(scaleY), amp)
}

// computeD iterates D_next = D*(n*D_p + Ann*S) / (D*(Ann-1) + (n+1)*D_p)
// with D_p refined from the current estimate each round, converging when
// successive estimates differ by at most one.
func computeD(x, y *uint256.Int, amp uint64) (*uint256.Int, error) {
	if amp < 1 {
		return nil, fmt.Errorf("%w: amplification must be positive", ErrInvalidInput)
	}
	if x.IsZero() && y.IsZero() {
		return uint256.NewInt(0), nil
	}
	if x.IsZero() || y.IsZero() {
		return nil, fmt.Errorf("%w: invariant needs both reserves positive", ErrInvalidInput)
	}
	s, err := add(x, y)
	if err != nil {
		return nil, err
	}
	ann := new(uint256.Int).Mul(uint256.NewInt(amp), uint256.NewInt(nCoins*nCoins))
	annS, err := mul(ann, s)
	if err != nil {
		return nil, err
	}
	annLess1 := new(uint256.Int).SubUint64(ann, 1)
	xN, err := mul(x, uint256.NewInt(nCoins))
	if err != nil {
		return nil, err
	}
	yN, err := mul(y, uint256.NewInt(nCoins))
	if err != nil {
		return nil, err
	}

	d := s.Clone()
	for i := 0; i < maxIterations; i++ {
		// D_p = D^3 / (n^n * x * y), interleaving divisions to stay in range.
		dp, err := mul(d, d)
		if err != nil {
			return nil, err
		}
		dp.Div(dp, xN)
		dp, err = mul(dp, d)
		if err != nil {
			return nil, err
		}
		dp.Div(dp, yN)

		num, err := mul(dp, uint256.NewInt(nCoins))
		if err != nil {
			return nil, err
		}
		num, err = add(num, annS)
		if err != nil {
			return nil, err
		}
		num, err = mul(num, d)
		if err != nil {
			return nil, err
		}

		den, err := mul(d, annLess1)
		if err != nil {
			return nil, err
		}
		dp3, err := mul(dp, uint256.NewInt(nCoins+1))
		if err != nil {
			return nil, err
		}
		den, err = add(den, dp3)
		if err != nil {
			return nil, err
		}

		prev := d
		d = new(uint256.Int).Div(num, den)
		if withinOne(d, prev) {
			return d, nil
		}
	}
	return nil, ErrNoConvergence
}

// computeY solves the companion quadratic y^2 + y*(b - D) = c for the unknown
// reserve, where b = x + D/Ann and c = D^3 / (n^n * x * Ann / n), by the same
// Newton iteration Curve-style pools use.
func computeY(xNew, d *uint256.Int, amp uint64) (*uint256.Int, error) {
	if amp < 1 {
		return nil, fmt.Errorf("%w: amplification must be positive", ErrInvalidInput)
	}
	if xNew.IsZero() {
		return nil, fmt.Errorf("%w: reserve must be positive", ErrInvalidInput)
	}
	if d.IsZero() {
		return uint256.NewInt(0), nil
	}
	ann := new(uint256.Int).Mul(uint256.NewInt(amp), uint256.NewInt(nCoins*nCoins))

	// c = D^3 / (x * n^2 * Ann / n) evaluated stepwise.
	xN, err := mul(xNew, uint256.NewInt(nCoins))
	if err != nil {
		return nil, err
	}
	c, err := mul(d, d)
	if err != nil {
		return nil, err
	}
	c.Div(c, xN)
	c, err = mul(c, d)
	if err != nil {
		return nil, err
	}
	c.Div(c, new(uint256.Int).Mul(ann, uint256.NewInt(nCoins)))

	b, err := add(xNew, new(uint256.Int).Div(d, ann))
	if err != nil {
		return nil, err
	}

	y := d.Clone()
	for i := 0; i < maxIterations; i++ {
		num, err := mul(y, y)
		if err != nil {
			return nil, err
		}
		num, err = add(num, c)
		if err != nil {
			return nil, err
		}

		den, err := add(y, y)
		if err != nil {
			return nil, err
		}
		den, err = add(den, b)
		if err != nil {
			return nil, err
		}
		den, err = sub(den, d)
		if err != nil {
			return nil, err
		}
		if den.IsZero() {
			return nil, fmt.Errorf("%w: degenerate reserve equation", ErrInvalidInput)
		}

		prev := y
		y = new(uint256.Int).Div(num, den)
		if withinOne(y, prev) {
			return y, nil
		}
	}
	return nil, ErrNoConvergence
}

func withinOne(a, b *uint256.Int) bool {
	diff := new(uint256.Int)
	if a.Cmp(b) >= 0 {
		diff.Sub(a, b)
	} else {
		diff.Sub(b, a)
	}
	return diff.LtUint64(2)
}

func add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func mul(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func toWide(v sdkmath.Int) (*uint256.Int, error) {
	if v.IsNil() || v.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidInput)
	}
	z, overflow := uint256.FromBig(v.BigInt())
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func scaleWide(v, scale sdkmath.Int) (*uint256.Int, error) {
	if scale.IsNil() || !scale.IsPositive() {
		return nil, fmt.Errorf("%w: scale must be positive", ErrInvalidInput)
	}
	return toWide(v.Mul(scale))
}

func fromWide(v *uint256.Int) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(v.ToBig())
}
