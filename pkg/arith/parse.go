package arith

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// maxExactFloat64 is 2^53 - 1, the largest whole float64 that no other
// integer rounds to. JSON decoders producing float64 may have rounded
// anything larger.
const maxExactFloat64 = 1<<53 - 1

// maxExactFloat32 is the float32 counterpart, 2^24 - 1.
const maxExactFloat32 = 1<<24 - 1

// ParseOperand converts an untyped value, typically a decoded JSON tool
// argument, into a whole number. Integers of any Go kind, *big.Int,
// json.Number, base-10 integer strings and whole-valued floats of at most
// 2^53 - 1 in magnitude are accepted; everything else fails with KindType.
func ParseOperand(v any) (*big.Int, error) {
	switch n := v.(type) {
	case float32:
		return parseFloat(float64(n), maxExactFloat32)
	case float64:
		return parseFloat(n, maxExactFloat64)
	case json.Number:
		return parseString(string(n))
	case string:
		return parseString(n)
	}
	return integerOperand(v)
}

// integerOperand accepts Go integer kinds and *big.Int only.
func integerOperand(v any) (*big.Int, error) {
	switch n := v.(type) {
	case nil:
		return nil, typeError("parse", fmt.Errorf("missing value: %w", ErrType))
	case *big.Int:
		if n == nil {
			return nil, typeError("parse", fmt.Errorf("missing value: %w", ErrType))
		}
		return new(big.Int).Set(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	}
	return nil, typeError("parse", fmt.Errorf("unsupported type %T: %w", v, ErrType))
}

func parseFloat(f, limit float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, typeError("parse", fmt.Errorf("%v is not a whole number: %w", f, ErrType))
	}
	if math.Abs(f) > limit {
		return nil, typeError("parse", fmt.Errorf("%.0f may have lost precision as a number, send it as a decimal string: %w", f, ErrType))
	}
	i, _ := big.NewFloat(f).Int(nil)
	return i, nil
}

func parseString(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	// SetString would also accept prefixes like 0x and underscores with base 0;
	// base 10 keeps it to plain decimal.
	i, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, typeError("parse", fmt.Errorf("%q is not a whole number: %w", s, ErrType))
	}
	return i, nil
}

// AddValues returns a + b for operands of any Go integer kind or *big.Int.
// Strings and floats are rejected with KindType; use ParseOperand first
// for wire encodings.
func AddValues(a, b any) (*big.Int, error) {
	x, y, err := integerPair(a, b)
	if err != nil {
		return nil, err
	}
	return Add(x, y), nil
}

// SubtractValues is Subtract for operands of any Go integer kind or
// *big.Int. Strings and floats are rejected with KindType.
func SubtractValues(a, b any) (*big.Int, error) {
	x, y, err := integerPair(a, b)
	if err != nil {
		return nil, err
	}
	return Subtract(x, y)
}

func integerPair(a, b any) (*big.Int, *big.Int, error) {
	x, err := integerOperand(a)
	if err != nil {
		return nil, nil, fmt.Errorf("a: %w", err)
	}
	y, err := integerOperand(b)
	if err != nil {
		return nil, nil, fmt.Errorf("b: %w", err)
	}
	return x, y, nil
}
