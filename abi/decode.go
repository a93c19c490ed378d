package abi

import (
	"encoding/hex"
	"math/big"
	"unicode/utf8"
)

// Decode unpacks an encoded parameter sequence given its schema. The input is
// hex with an optional 0x prefix. Decoded values come back in declaration
// order; any read past the end of the buffer is a DecodeError.
func Decode(args Arguments, input string) ([]Value, error) {
	data, err := hex.DecodeString(strip0x(input))
	if err != nil {
		return nil, &FormatError{Param: "input", Msg: "not valid hex"}
	}
	return DecodeBytes(args, data)
}

// DecodeBytes is Decode over an already-decoded byte buffer.
func DecodeBytes(args Arguments, data []byte) ([]Value, error) {
	return decodeSequence(args, data)
}

// decodeSequence reads one parameter sequence: static values in place from
// the head, dynamic values through their offset words into the tail. Offsets
// are relative to the start of the sequence.
func decodeSequence(args Arguments, data []byte) ([]Value, error) {
	headSize := 0
	for _, a := range args {
		headSize += a.Type.headWords() * wordSize
	}
	if len(data) < headSize {
		return nil, &DecodeError{
			Param: "arguments",
			Msg:   "buffer shorter than parameter head",
		}
	}

	out := make([]Value, len(args))
	pos := 0
	for i, a := range args {
		param := paramRef(a.Name, i)
		if a.Type.Static() {
			n := a.Type.headWords() * wordSize
			v, err := decodeValue(a.Type, data[pos:pos+n], param)
			if err != nil {
				return nil, err
			}
			out[i] = v
			pos += n
			continue
		}

		offset, err := readUintWord(data[pos:pos+wordSize], len(data), param)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(a.Type, data[offset:], param)
		if err != nil {
			return nil, err
		}
		out[i] = v
		pos += wordSize
	}
	return out, nil
}

// decodeValue reads one value whose encoding starts at the beginning of data.
func decodeValue(t *Type, data []byte, param string) (Value, error) {
	switch t.Kind {
	case KindUint, KindInt, KindBool, KindAddress, KindFixedBytes:
		if len(data) < wordSize {
			return Value{}, &DecodeError{Param: param, Msg: "buffer shorter than value word"}
		}
		return DecodeWord(t, data[:wordSize])
	case KindBytes, KindString:
		content, err := decodeLengthPrefixed(data, param)
		if err != nil {
			return Value{}, err
		}
		if t.Kind == KindBytes {
			return Bytes(content), nil
		}
		if !utf8.Valid(content) {
			return Value{}, &DecodeError{Param: param, Msg: "string content is not valid UTF-8"}
		}
		return String(string(content)), nil
	case KindArray:
		return decodeArray(t, data, param)
	case KindTuple:
		members, err := decodeSequence(memberArgs(t.Components, param), data)
		if err != nil {
			return Value{}, err
		}
		return Tuple(members...), nil
	}
	return Value{}, &DecodeError{Param: param, Msg: "unsupported type"}
}

// DecodeWord decodes a single static primitive from one 32-byte word. Used
// directly by event-log decoding, where indexed parameters arrive as topics.
func DecodeWord(t *Type, word []byte) (Value, error) {
	if len(word) != wordSize {
		return Value{}, &DecodeError{Param: t.Canonical(), Msg: "word must be exactly 32 bytes"}
	}
	switch t.Kind {
	case KindUint:
		return Value{kind: KindUint, num: new(big.Int).SetBytes(word)}, nil
	case KindInt:
		n := new(big.Int).SetBytes(word)
		if word[0]&0x80 != 0 {
			n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 256))
		}
		return Value{kind: KindInt, num: n}, nil
	case KindBool:
		// Any nonzero word reads as true.
		for _, b := range word {
			if b != 0 {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	case KindAddress:
		return Address(hex.EncodeToString(word[12:])), nil
	case KindFixedBytes:
		return FixedBytes(word[:t.Size]), nil
	}
	return Value{}, &DecodeError{Param: t.Canonical(), Msg: "not a single-word type"}
}

func decodeArray(t *Type, data []byte, param string) (Value, error) {
	n := t.Size
	body := data
	if t.Size < 0 {
		if len(data) < wordSize {
			return Value{}, &DecodeError{Param: param, Msg: "buffer shorter than array length word"}
		}
		length, err := readUintWord(data[:wordSize], len(data), param)
		if err != nil {
			return Value{}, err
		}
		n = length
		body = data[wordSize:]
	}

	elems := make(Arguments, n)
	for i := range elems {
		elems[i] = Argument{Name: param, Type: t.Elem}
	}
	values, err := decodeSequence(elems, body)
	if err != nil {
		return Value{}, err
	}
	return Array(values...), nil
}

// decodeLengthPrefixed reads a length word and exactly that many content
// bytes, ignoring trailing padding. A zero length word with no content words
// is a valid empty value.
func decodeLengthPrefixed(data []byte, param string) ([]byte, error) {
	if len(data) < wordSize {
		return nil, &DecodeError{Param: param, Msg: "buffer shorter than length word"}
	}
	length, err := readUintWord(data[:wordSize], len(data)-wordSize, param)
	if err != nil {
		return nil, err
	}
	return data[wordSize : wordSize+length], nil
}

// readUintWord reads an offset or length word and bounds-checks it against
// the remaining buffer.
func readUintWord(word []byte, limit int, param string) (int, error) {
	n := new(big.Int).SetBytes(word)
	if !n.IsUint64() || n.Uint64() > uint64(limit) {
		return 0, &DecodeError{Param: param, Msg: "offset or length outside buffer"}
	}
	return int(n.Uint64()), nil
}
