package abi

import (
	"encoding/hex"
	"math/big"
	"strings"
)

// Value is a tagged-union argument value. Values carry their own category and
// are validated against the declared Type at encode time; a mismatch is a
// FormatError, never a coercion.
type Value struct {
	kind Kind
	num  *big.Int
	flag bool
	raw  []byte
	str  string
	list []Value
}

// Uint wraps an unsigned integer value.
func Uint(v *big.Int) Value { return Value{kind: KindUint, num: new(big.Int).Set(v)} }

// Uint64 wraps a machine-word unsigned integer value.
func Uint64(v uint64) Value { return Value{kind: KindUint, num: new(big.Int).SetUint64(v)} }

// Int wraps a signed integer value.
func Int(v *big.Int) Value { return Value{kind: KindInt, num: new(big.Int).Set(v)} }

// Int64 wraps a machine-word signed integer value.
func Int64(v int64) Value { return Value{kind: KindInt, num: big.NewInt(v)} }

// Bool wraps a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, flag: v} }

// Address wraps a 20-byte account address given as a hex string, with or
// without the 0x prefix. The string is validated when encoded.
func Address(hexAddr string) Value { return Value{kind: KindAddress, str: hexAddr} }

// Bytes wraps a dynamic byte sequence.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: append([]byte(nil), b...)} }

// FixedBytes wraps a bytesN value; the length must match the declared type
// when encoded.
func FixedBytes(b []byte) Value { return Value{kind: KindFixedBytes, raw: append([]byte(nil), b...)} }

// String wraps a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps an ordered element list for array types.
func Array(elems ...Value) Value { return Value{kind: KindArray, list: elems} }

// Tuple wraps an ordered member list for tuple types.
func Tuple(members ...Value) Value { return Value{kind: KindTuple, list: members} }

// Kind reports the value's category.
func (v Value) Kind() Kind { return v.kind }

// BigInt returns the numeric payload of a uint or int value.
func (v Value) BigInt() *big.Int {
	if v.num == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.num)
}

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.flag }

// Bytes returns the byte payload of a bytes or fixed-bytes value.
func (v Value) Bytes() []byte { return append([]byte(nil), v.raw...) }

// Text returns the string payload of a string or address value.
func (v Value) Text() string { return v.str }

// Values returns the element list of an array or tuple value.
func (v Value) Values() []Value { return v.list }

// Interface lowers the value to a plain Go representation: *big.Int for
// integers, bool, 0x-prefixed lower-case hex strings for addresses and byte
// payloads, string for text, and []any for arrays and tuples.
func (v Value) Interface() any {
	switch v.kind {
	case KindUint, KindInt:
		return v.BigInt()
	case KindBool:
		return v.flag
	case KindAddress:
		return "0x" + strings.ToLower(strip0x(v.str))
	case KindBytes, KindFixedBytes:
		return "0x" + hex.EncodeToString(v.raw)
	case KindString:
		return v.str
	case KindArray, KindTuple:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

// Equal reports deep equality of two values. Address comparison ignores the
// 0x prefix and letter case.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindUint, KindInt:
		return v.BigInt().Cmp(w.BigInt()) == 0
	case KindBool:
		return v.flag == w.flag
	case KindAddress:
		return strings.EqualFold(strip0x(v.str), strip0x(w.str))
	case KindBytes, KindFixedBytes:
		return string(v.raw) == string(w.raw)
	case KindString:
		return v.str == w.str
	case KindArray, KindTuple:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func strip0x(s string) string {
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

// parseAddress validates and decodes a 20-byte hex address.
func parseAddress(s, param string) ([]byte, error) {
	b, err := hex.DecodeString(strip0x(s))
	if err != nil {
		return nil, &FormatError{Param: param, Msg: "address is not valid hex"}
	}
	if len(b) != 20 {
		return nil, &FormatError{Param: param, Msg: "address must be exactly 20 bytes"}
	}
	return b, nil
}
