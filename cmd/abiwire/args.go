package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/devblac/abiwire/abi"
)

// parseSignature splits a human signature like transfer(address,uint256)
// into its name and parameter list.
func parseSignature(sig string) (string, abi.Arguments, error) {
	l := strings.Index(sig, "(")
	r := strings.LastIndex(sig, ")")
	if l <= 0 || r != len(sig)-1 {
		return "", nil, fmt.Errorf("malformed signature %q, want name(type,...)", sig)
	}
	name := sig[:l]

	inner := strings.TrimSpace(sig[l+1 : r])
	if inner == "" {
		return name, nil, nil
	}

	t, err := abi.ParseType("(" + inner + ")")
	if err != nil {
		return "", nil, err
	}
	args := make(abi.Arguments, len(t.Components))
	for i, c := range t.Components {
		args[i] = abi.Argument{Type: c}
	}
	return name, args, nil
}

// parseValue converts one command-line token into a typed value. Arrays and
// tuples are given as JSON.
func parseValue(t *abi.Type, token string) (abi.Value, error) {
	switch t.Kind {
	case abi.KindUint, abi.KindInt:
		n, ok := new(big.Int).SetString(token, 0)
		if !ok {
			return abi.Value{}, fmt.Errorf("not a number: %q", token)
		}
		if t.Kind == abi.KindUint {
			return abi.Uint(n), nil
		}
		return abi.Int(n), nil
	case abi.KindBool:
		switch strings.ToLower(token) {
		case "true", "1":
			return abi.Bool(true), nil
		case "false", "0":
			return abi.Bool(false), nil
		}
		return abi.Value{}, fmt.Errorf("not a boolean: %q", token)
	case abi.KindAddress:
		return abi.Address(token), nil
	case abi.KindBytes, abi.KindFixedBytes:
		b, err := hex.DecodeString(strings.TrimPrefix(token, "0x"))
		if err != nil {
			return abi.Value{}, fmt.Errorf("not hex: %q", token)
		}
		if t.Kind == abi.KindFixedBytes {
			return abi.FixedBytes(b), nil
		}
		return abi.Bytes(b), nil
	case abi.KindString:
		return abi.String(token), nil
	case abi.KindArray, abi.KindTuple:
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(token), &raw); err != nil {
			return abi.Value{}, fmt.Errorf("composite value must be JSON array: %w", err)
		}
		return parseComposite(t, raw)
	}
	return abi.Value{}, fmt.Errorf("unsupported type %s", t)
}

func parseComposite(t *abi.Type, raw []json.RawMessage) (abi.Value, error) {
	elemType := func(i int) *abi.Type { return t.Elem }
	if t.Kind == abi.KindTuple {
		if len(raw) != len(t.Components) {
			return abi.Value{}, fmt.Errorf("tuple wants %d members, got %d", len(t.Components), len(raw))
		}
		elemType = func(i int) *abi.Type { return t.Components[i] }
	}

	elems := make([]abi.Value, len(raw))
	for i, r := range raw {
		token := string(r)
		var s string
		if json.Unmarshal(r, &s) == nil {
			token = s
		}
		v, err := parseValue(elemType(i), token)
		if err != nil {
			return abi.Value{}, err
		}
		elems[i] = v
	}
	if t.Kind == abi.KindTuple {
		return abi.Tuple(elems...), nil
	}
	return abi.Array(elems...), nil
}

// parseValues pairs tokens with a parameter list.
func parseValues(args abi.Arguments, tokens []string) ([]abi.Value, error) {
	if len(tokens) != len(args) {
		return nil, fmt.Errorf("want %d argument(s), got %d", len(args), len(tokens))
	}
	values := make([]abi.Value, len(tokens))
	for i, tok := range tokens {
		v, err := parseValue(args[i].Type, tok)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}
