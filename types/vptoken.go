package types

import (
	fmt "fmt"

	sdkmath "cosmossdk.io/math"
)

// ValuePerToken is an O(1) pro-rata reward accumulator. Sum is the total
// reward units ever added; Amount is the total weighted stake currently
// participating. Adding rewards never divides: the per-unit rate Sum/Amount is
// only realized inside Diff, with a single wide division, so repeated small
// additions do not compound truncation loss.
type ValuePerToken struct {
	Sum    sdkmath.Int `json:"sum"`
	Amount sdkmath.Int `json:"amount"`
}

// NewValuePerToken returns an empty accumulator.
func NewValuePerToken() ValuePerToken {
	return ValuePerToken{Sum: sdkmath.ZeroInt(), Amount: sdkmath.ZeroInt()}
}

// AddAmount records weighted stake entering the accumulator.
func (v *ValuePerToken) AddAmount(w sdkmath.Int) {
	v.Amount = v.Amount.Add(w)
}

// DecAmount records weighted stake leaving the accumulator. Removing more
// weight than is present indicates corrupted bookkeeping and is rejected.
func (v *ValuePerToken) DecAmount(w sdkmath.Int) error {
	if w.GT(v.Amount) {
		return fmt.Errorf("cannot remove weight %s from accumulator holding %s", w, v.Amount)
	}
	v.Amount = v.Amount.Sub(w)
	return nil
}

// AddSum adds reward units distributed pro-rata over the current Amount.
func (v *ValuePerToken) AddSum(r sdkmath.Int) {
	v.Sum = v.Sum.Add(r)
}

// Value returns the instantaneous per-unit reward rate, zero when no weight
// participates.
func (v ValuePerToken) Value() sdkmath.LegacyDec {
	if v.Amount.IsZero() {
		return sdkmath.LegacyZeroDec()
	}
	return sdkmath.LegacyNewDecFromInt(v.Sum).QuoInt(v.Amount)
}

// Diff returns the reward earned by the given weight between the snapshot
// state and this state: weight * (v.Sum/v.Amount - snapshot.Sum/snapshot.Amount),
// evaluated as one wide-integer division. A zero Amount on either side
// contributes a zero rate, and a negative result (the rate can dip when weight
// joins faster than rewards arrive) floors at zero.
func (v ValuePerToken) Diff(snapshot ValuePerToken, weight sdkmath.Int) sdkmath.Int {
	if weight.IsZero() || v.Amount.IsZero() {
		return sdkmath.ZeroInt()
	}
	if snapshot.Amount.IsZero() {
		return weight.Mul(v.Sum).Quo(v.Amount)
	}
	num := v.Sum.Mul(snapshot.Amount).Sub(snapshot.Sum.Mul(v.Amount))
	if !num.IsPositive() {
		return sdkmath.ZeroInt()
	}
	return weight.Mul(num).Quo(v.Amount.Mul(snapshot.Amount))
}

// Validate verifies the accumulator holds usable non-negative values.
func (v ValuePerToken) Validate() error {
	if v.Sum.IsNil() || v.Amount.IsNil() {
		return fmt.Errorf("accumulator fields must be set")
	}
	if v.Sum.IsNegative() || v.Amount.IsNegative() {
		return fmt.Errorf("accumulator fields must be non-negative")
	}
	return nil
}
