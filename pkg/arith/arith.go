// Package arith provides whole-number addition and subtraction.
//
// The big.Int functions are exact. Subtraction additionally applies a
// sign/magnitude guard that rejects results which look like wraparound
// on operands larger than OverflowThreshold. The guard only has teeth for
// the fixed-width int64 variants; on unbounded integers it is kept as a
// literal policy and never fires.
package arith

import (
	"fmt"
	"math/big"
)

// threshold is 10^18, the magnitude above which a sign-inconsistent
// subtraction result is rejected.
var threshold = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// thresholdInt64 mirrors threshold for the fixed-width path.
const thresholdInt64 int64 = 1_000_000_000_000_000_000

// OverflowThreshold returns a copy of the guard's magnitude threshold.
func OverflowThreshold() *big.Int {
	return new(big.Int).Set(threshold)
}

// Add returns a + b.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

// Subtract returns a - b, or a KindOverflow error when the overflow guard
// trips. Nil operands are rejected with KindType.
func Subtract(a, b *big.Int) (*big.Int, error) {
	if a == nil || b == nil {
		return nil, typeError("subtract", fmt.Errorf("nil operand: %w", ErrType))
	}

	result := new(big.Int).Sub(a, b)
	if signInconsistent(a.Sign(), b.Sign(), result.Sign()) &&
		(new(big.Int).Abs(a).Cmp(threshold) > 0 || new(big.Int).Abs(b).Cmp(threshold) > 0) {
		return nil, overflowError("subtract")
	}
	return result, nil
}

// AddInt64 returns a + b with two's-complement wraparound.
func AddInt64(a, b int64) int64 {
	return a + b
}

// SubtractInt64 returns a - b computed with two's-complement wraparound,
// failing with KindOverflow when the wrapped result has the wrong sign for
// its operands and either operand exceeds the threshold in magnitude.
func SubtractInt64(a, b int64) (int64, error) {
	result := a - b
	if signInconsistent(sign(a), sign(b), sign(result)) &&
		(exceeds(a) || exceeds(b)) {
		return 0, overflowError("subtract")
	}
	return result, nil
}

// signInconsistent reports a positive result from negative minus positive,
// or a negative result from positive minus negative.
func signInconsistent(a, b, result int) bool {
	return (result > 0 && a < 0 && b > 0) || (result < 0 && a > 0 && b < 0)
}

func sign(v int64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// exceeds reports |v| > 10^18 without negating v, which would overflow
// for math.MinInt64.
func exceeds(v int64) bool {
	return v > thresholdInt64 || v < -thresholdInt64
}
