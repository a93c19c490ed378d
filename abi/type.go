// Package abi encodes and decodes contract-call arguments and results
// between typed values and their packed hexadecimal wire form.
package abi

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Kind classifies an ABI type.
type Kind uint8

const (
	KindUint Kind = iota
	KindInt
	KindBool
	KindAddress
	KindFixedBytes
	KindBytes
	KindString
	KindArray
	KindTuple
)

// Type is a parsed type signature. Parse once via ParseType; the string form
// is only a serialization at the API boundary.
type Type struct {
	Kind Kind

	// Bits is the declared width for uint/int types (8..256, multiple of 8).
	Bits int
	// Size is the byte length for fixed bytes, or the element count for
	// fixed-length arrays. -1 marks a dynamic-length array.
	Size int
	// Elem is the element type for arrays.
	Elem *Type
	// Components are the member types for tuples.
	Components []*Type
}

var (
	typeCacheMu sync.RWMutex
	typeCache   = map[string]*Type{}
)

// ParseType parses a type signature such as "uint256", "bytes32",
// "address[]", or "(address,uint256)[2]". Parses are cached per distinct
// signature string; the returned Type must not be mutated.
func ParseType(s string) (*Type, error) {
	typeCacheMu.RLock()
	t, ok := typeCache[s]
	typeCacheMu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := parseType(s)
	if err != nil {
		return nil, err
	}

	typeCacheMu.Lock()
	typeCache[s] = t
	typeCacheMu.Unlock()
	return t, nil
}

// MustParseType is ParseType that panics on failure. Convenient for fixed
// schemas in variable initializers.
func MustParseType(s string) *Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseType(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("abi: empty type signature")
	}

	// Trailing array suffix binds outermost: uint256[3][] is a dynamic
	// array of uint256[3].
	if strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open <= 0 {
			return nil, fmt.Errorf("abi: malformed array type %q", s)
		}
		elem, err := parseType(s[:open])
		if err != nil {
			return nil, err
		}
		return arrayOf(elem, s[open:], s)
	}

	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("abi: unterminated tuple type %q", s)
		}
		parts, err := splitTopLevel(s[1 : len(s)-1])
		if err != nil {
			return nil, fmt.Errorf("abi: malformed tuple type %q", s)
		}
		comps := make([]*Type, 0, len(parts))
		for _, p := range parts {
			c, err := parseType(p)
			if err != nil {
				return nil, err
			}
			comps = append(comps, c)
		}
		return &Type{Kind: KindTuple, Components: comps}, nil
	}

	return parseElementary(s)
}

func arrayOf(elem *Type, bracket, full string) (*Type, error) {
	inner := bracket[1 : len(bracket)-1]
	if inner == "" {
		return &Type{Kind: KindArray, Size: -1, Elem: elem}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("abi: invalid array length in %q", full)
	}
	return &Type{Kind: KindArray, Size: n, Elem: elem}, nil
}

func parseElementary(s string) (*Type, error) {
	switch {
	case s == "bool":
		return &Type{Kind: KindBool}, nil
	case s == "address":
		return &Type{Kind: KindAddress}, nil
	case s == "string":
		return &Type{Kind: KindString}, nil
	case s == "bytes":
		return &Type{Kind: KindBytes}, nil
	case strings.HasPrefix(s, "bytes"):
		n, err := strconv.Atoi(s[len("bytes"):])
		if err != nil || n < 1 || n > 32 {
			return nil, fmt.Errorf("abi: invalid fixed bytes type %q", s)
		}
		return &Type{Kind: KindFixedBytes, Size: n}, nil
	case strings.HasPrefix(s, "uint"):
		bits, err := parseBits(s[len("uint"):])
		if err != nil {
			return nil, fmt.Errorf("abi: invalid type %q: %w", s, err)
		}
		return &Type{Kind: KindUint, Bits: bits}, nil
	case strings.HasPrefix(s, "int"):
		bits, err := parseBits(s[len("int"):])
		if err != nil {
			return nil, fmt.Errorf("abi: invalid type %q: %w", s, err)
		}
		return &Type{Kind: KindInt, Bits: bits}, nil
	}
	return nil, fmt.Errorf("abi: unsupported type %q", s)
}

func parseBits(s string) (int, error) {
	if s == "" {
		// Bare uint/int normalize to the full word.
		return 256, nil
	}
	bits, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("non-numeric width %q", s)
	}
	if bits < 8 || bits > 256 || bits%8 != 0 {
		return 0, fmt.Errorf("width %d out of range", bits)
	}
	return bits, nil
}

// splitTopLevel splits a comma-separated list, ignoring commas nested inside
// parentheses.
func splitTopLevel(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := []string{}
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// Canonical renders the canonical type name used in function and event
// signatures: bare widths are made explicit and tuples are parenthesized.
func (t *Type) Canonical() string {
	switch t.Kind {
	case KindUint:
		return "uint" + strconv.Itoa(t.Bits)
	case KindInt:
		return "int" + strconv.Itoa(t.Bits)
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindFixedBytes:
		return "bytes" + strconv.Itoa(t.Size)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		if t.Size < 0 {
			return t.Elem.Canonical() + "[]"
		}
		return t.Elem.Canonical() + "[" + strconv.Itoa(t.Size) + "]"
	case KindTuple:
		names := make([]string, len(t.Components))
		for i, c := range t.Components {
			names[i] = c.Canonical()
		}
		return "(" + strings.Join(names, ",") + ")"
	}
	return "<invalid>"
}

func (t *Type) String() string { return t.Canonical() }

// Static reports whether the type has a fixed-width in-place encoding.
// Dynamic types are referenced from the head region by an offset into the
// tail. Classification is a pure function of the type.
func (t *Type) Static() bool {
	switch t.Kind {
	case KindBytes, KindString:
		return false
	case KindArray:
		return t.Size >= 0 && t.Elem.Static()
	case KindTuple:
		for _, c := range t.Components {
			if !c.Static() {
				return false
			}
		}
		return true
	}
	return true
}

// headWords is the number of 32-byte words the type occupies in the head
// region of its enclosing sequence. Dynamic types occupy one offset word.
func (t *Type) headWords() int {
	if !t.Static() {
		return 1
	}
	switch t.Kind {
	case KindArray:
		return t.Size * t.Elem.headWords()
	case KindTuple:
		n := 0
		for _, c := range t.Components {
			n += c.headWords()
		}
		return n
	}
	return 1
}

// Argument is one named, typed parameter of a function or event. Indexed is
// only meaningful for event inputs.
type Argument struct {
	Name    string
	Type    *Type
	Indexed bool
}

// Arguments is an ordered parameter list.
type Arguments []Argument

// ArgsOf builds an unnamed Arguments list from type signatures. It panics on
// a malformed signature; intended for fixed schemas.
func ArgsOf(sigs ...string) Arguments {
	args := make(Arguments, len(sigs))
	for i, s := range sigs {
		args[i] = Argument{Type: MustParseType(s)}
	}
	return args
}
