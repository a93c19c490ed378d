package abi

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// wordSize is the ABI word width; every encoded value is a whole number of
// such words.
const wordSize = 32

// Encode packs values against the parameter list using the head/tail layout
// and returns the result as unprefixed hex. The value count must match the
// schema and each value's kind must match its declared type.
func Encode(args Arguments, values []Value) (string, error) {
	b, err := EncodeBytes(args, values)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// EncodeBytes is Encode without the final hex serialization.
func EncodeBytes(args Arguments, values []Value) ([]byte, error) {
	if len(values) != len(args) {
		return nil, &FormatError{
			Param: "arguments",
			Msg:   "value count does not match parameter count",
		}
	}
	return encodeSequence(args, values)
}

// encodeSequence lays out one parameter sequence: static values in place in
// the head, dynamic values in the tail behind an offset word measured from
// the start of the head.
func encodeSequence(args Arguments, values []Value) ([]byte, error) {
	headSize := 0
	for _, a := range args {
		headSize += a.Type.headWords() * wordSize
	}

	head := make([]byte, 0, headSize)
	var tail []byte
	for i, a := range args {
		param := paramRef(a.Name, i)
		enc, err := encodeValue(a.Type, values[i], param)
		if err != nil {
			return nil, err
		}
		if a.Type.Static() {
			head = append(head, enc...)
			continue
		}
		head = append(head, uintWord(uint64(headSize+len(tail)))...)
		tail = append(tail, enc...)
	}
	return append(head, tail...), nil
}

func encodeValue(t *Type, v Value, param string) ([]byte, error) {
	switch t.Kind {
	case KindUint:
		return encodeUint(t, v, param)
	case KindInt:
		return encodeInt(t, v, param)
	case KindBool:
		if v.kind != KindBool {
			return nil, kindMismatch(t, param)
		}
		if v.flag {
			return uintWord(1), nil
		}
		return make([]byte, wordSize), nil
	case KindAddress:
		if v.kind != KindAddress {
			return nil, kindMismatch(t, param)
		}
		b, err := parseAddress(v.str, param)
		if err != nil {
			return nil, err
		}
		return common.LeftPadBytes(b, wordSize), nil
	case KindFixedBytes:
		if v.kind != KindFixedBytes {
			return nil, kindMismatch(t, param)
		}
		if len(v.raw) != t.Size {
			return nil, &FormatError{Param: param, Msg: "fixed bytes length does not match " + t.Canonical()}
		}
		return common.RightPadBytes(v.raw, wordSize), nil
	case KindBytes:
		if v.kind != KindBytes {
			return nil, kindMismatch(t, param)
		}
		return encodeLengthPrefixed(v.raw), nil
	case KindString:
		if v.kind != KindString {
			return nil, kindMismatch(t, param)
		}
		return encodeLengthPrefixed([]byte(v.str)), nil
	case KindArray:
		return encodeArray(t, v, param)
	case KindTuple:
		if v.kind != KindTuple {
			return nil, kindMismatch(t, param)
		}
		if len(v.list) != len(t.Components) {
			return nil, &FormatError{Param: param, Msg: "tuple member count does not match " + t.Canonical()}
		}
		return encodeSequence(memberArgs(t.Components, param), v.list)
	}
	return nil, &FormatError{Param: param, Msg: "unsupported type"}
}

func encodeUint(t *Type, v Value, param string) ([]byte, error) {
	if v.kind != KindUint {
		return nil, kindMismatch(t, param)
	}
	if v.num.Sign() < 0 {
		return nil, &RangeError{Param: param, Type: t.Canonical(), Msg: "negative value"}
	}
	if v.num.BitLen() > t.Bits {
		return nil, &RangeError{Param: param, Type: t.Canonical(), Msg: "value exceeds declared width"}
	}
	return common.LeftPadBytes(v.num.Bytes(), wordSize), nil
}

func encodeInt(t *Type, v Value, param string) ([]byte, error) {
	if v.kind != KindInt {
		return nil, kindMismatch(t, param)
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1))
	if v.num.Cmp(bound) >= 0 || v.num.Cmp(new(big.Int).Neg(bound)) < 0 {
		return nil, &RangeError{Param: param, Type: t.Canonical(), Msg: "value exceeds declared width"}
	}
	if v.num.Sign() >= 0 {
		return common.LeftPadBytes(v.num.Bytes(), wordSize), nil
	}
	// Two's complement, sign-extended across the full word.
	twos := new(big.Int).Add(maxWord, big.NewInt(1))
	twos.Add(twos, v.num)
	return common.LeftPadBytes(twos.Bytes(), wordSize), nil
}

func encodeArray(t *Type, v Value, param string) ([]byte, error) {
	if v.kind != KindArray {
		return nil, kindMismatch(t, param)
	}
	if t.Size >= 0 && len(v.list) != t.Size {
		return nil, &FormatError{Param: param, Msg: "array length does not match " + t.Canonical()}
	}

	elems := make(Arguments, len(v.list))
	for i := range v.list {
		elems[i] = Argument{Name: param, Type: t.Elem}
	}
	body, err := encodeSequence(elems, v.list)
	if err != nil {
		return nil, err
	}
	if t.Size >= 0 {
		return body, nil
	}
	// A dynamic array is its length word followed by the element sequence;
	// an empty array is the zero length word alone.
	return append(uintWord(uint64(len(v.list))), body...), nil
}

// encodeLengthPrefixed lays out dynamic bytes/string content: a length word
// followed by the content right-padded to the next word boundary.
func encodeLengthPrefixed(content []byte) []byte {
	out := uintWord(uint64(len(content)))
	if len(content) == 0 {
		return out
	}
	padded := (len(content) + wordSize - 1) / wordSize * wordSize
	return append(out, common.RightPadBytes(content, padded)...)
}

var maxWord = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func uintWord(n uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(n).Bytes(), wordSize)
}

func kindMismatch(t *Type, param string) error {
	return &FormatError{Param: param, Msg: "value kind does not match declared type " + t.Canonical()}
}

// memberArgs wraps tuple component types as an argument list so sequence
// encoding and decoding can recurse uniformly.
func memberArgs(types []*Type, param string) Arguments {
	args := make(Arguments, len(types))
	for i, t := range types {
		args[i] = Argument{Name: param, Type: t}
	}
	return args
}
