package utils

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// BpsDenominator is the basis-point scale shared by every fee rate.
const BpsDenominator = 10_000

// Ratio is an exact rational scale factor numerator/denominator. Amounts are
// scaled without intermediate rounding; only the final division truncates, in
// the direction the caller picks.
type Ratio struct {
	num sdkmath.Int
	den sdkmath.Int
}

// NewRatio builds a ratio from a non-negative numerator and a positive
// denominator.
func NewRatio(num, den sdkmath.Int) (Ratio, error) {
	if num.IsNil() || den.IsNil() {
		return Ratio{}, fmt.Errorf("ratio terms must be set")
	}
	if num.IsNegative() {
		return Ratio{}, fmt.Errorf("ratio numerator must be non-negative, got %s", num)
	}
	if !den.IsPositive() {
		return Ratio{}, fmt.Errorf("ratio denominator must be positive, got %s", den)
	}
	return Ratio{num: num, den: den}, nil
}

// NewBpsRatio returns the ratio bps/10000.
func NewBpsRatio(bps uint64) Ratio {
	return Ratio{num: sdkmath.NewIntFromUint64(bps), den: sdkmath.NewInt(BpsDenominator)}
}

// ZeroRatio returns the ratio 0/1.
func ZeroRatio() Ratio {
	return Ratio{num: sdkmath.ZeroInt(), den: sdkmath.OneInt()}
}

// IsZero reports whether the ratio scales everything to zero.
func (r Ratio) IsZero() bool {
	return r.num.IsZero()
}

// ApplyTo scales amount by the ratio.
//
// Formula (integer, floor):
//
//	floor(amount * num / den)
//
// Flooring keeps every split in the pool's favor.
func (r Ratio) ApplyTo(amount sdkmath.Int) sdkmath.Int {
	return amount.Mul(r.num).Quo(r.den)
}

// ApplyToCeil scales amount by the ratio, rounding up.
//
// Formula (integer, ceil):
//
//	ceil(amount * num / den)
//
// Used where the pool collects rather than pays, so it never under-collects.
func (r Ratio) ApplyToCeil(amount sdkmath.Int) sdkmath.Int {
	prod := amount.Mul(r.num)
	out := prod.Quo(r.den)
	if !prod.Mod(r.den).IsZero() {
		out = out.AddRaw(1)
	}
	return out
}

func (r Ratio) String() string {
	return fmt.Sprintf("%s/%s", r.num, r.den)
}
