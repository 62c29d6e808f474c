package arith

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperand(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"int", 7, "7"},
		{"int64", int64(-3), "-3"},
		{"uint64 max", uint64(math.MaxUint64), "18446744073709551615"},
		{"whole float", 42.0, "42"},
		{"negative float", -1e15, "-1000000000000000"},
		{"largest exact float", float64(1<<53 - 1), "9007199254740991"},
		{"json number", json.Number("123456789012345678901234567890"), "123456789012345678901234567890"},
		{"string", "-5", "-5"},
		{"string with plus and spaces", "  +12 ", "12"},
		{"big", big.NewInt(99), "99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseOperand(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseOperandRejects(t *testing.T) {
	var nilBig *big.Int
	inputs := []any{
		nil, nilBig, "x", "", "1.5", "0x10", "1_000", 2.5, math.NaN(), math.Inf(1), true, []int{1},
		float64(1 << 53), -1e18, float32(1 << 24),
	}

	for _, in := range inputs {
		_, err := ParseOperand(in)
		require.Error(t, err, "ParseOperand(%#v)", in)
		assert.True(t, IsKind(err, KindType), "ParseOperand(%#v): %v", in, err)
	}
}

func TestParseOperandCopiesBigInt(t *testing.T) {
	src := big.NewInt(5)
	got, err := ParseOperand(src)
	require.NoError(t, err)
	got.SetInt64(6)
	assert.Equal(t, int64(5), src.Int64())
}

func TestParseOperandRoundedJSONNumber(t *testing.T) {
	// 2^53 + 1 decodes to 2^53 as a float64.
	var args map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"a": 9007199254740993}`), &args))

	_, err := ParseOperand(args["a"])
	require.Error(t, err)
	assert.True(t, IsKind(err, KindType))
	assert.Contains(t, err.Error(), "decimal string")

	got, err := ParseOperand("9007199254740993")
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", got.String())
}

func TestSubtractValuesRejectsNonInteger(t *testing.T) {
	_, err := SubtractValues("x", 1)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindType))
	assert.ErrorIs(t, err, ErrType)
	assert.Contains(t, err.Error(), "a:")

	_, err = SubtractValues(1, 2.5)
	assert.True(t, IsKind(err, KindType))
	assert.Contains(t, err.Error(), "b:")

	// Wire encodings are not integers here.
	for _, in := range []any{"5", 10.0, json.Number("4")} {
		_, err = SubtractValues(in, 1)
		assert.True(t, IsKind(err, KindType), "SubtractValues(%#v, 1)", in)
	}
}

func TestSubtractValuesErrorNamesKindOnce(t *testing.T) {
	_, err := SubtractValues(true, 1)
	require.Error(t, err)
	assert.Equal(t, "a: parse: type: unsupported type bool: operands must be whole numbers", err.Error())
}

func TestValues(t *testing.T) {
	sum, err := AddValues(int8(5), uint64(3))
	require.NoError(t, err)
	assert.Equal(t, "8", sum.String())

	diff, err := SubtractValues(10, big.NewInt(4))
	require.NoError(t, err)
	assert.Equal(t, "6", diff.String())

	_, err = AddValues(nil, 1)
	assert.True(t, IsKind(err, KindType))
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{Op: "subtract", Kind: KindOverflow, Err: ErrOverflow}
	assert.Equal(t, "subtract: overflow: result may exceed integer limits", err.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
	assert.Equal(t, ErrorKind(""), KindOf(ErrType))
}
