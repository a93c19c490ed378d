package abi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Method is a function definition drawn from contract metadata.
type Method struct {
	Name    string
	Inputs  Arguments
	Outputs Arguments
}

// Event is an event definition drawn from contract metadata. Inputs keep
// their declared order; the Indexed flag decides topic versus data placement.
type Event struct {
	Name   string
	Inputs Arguments
}

// Metadata is the parsed ABI of one contract: its callable methods and the
// events it can emit. Parsed once from compiler JSON output and treated as
// read-only afterwards.
type Metadata struct {
	Methods map[string]Method
	Events  []Event
}

type jsonEntry struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Inputs    []jsonParam `json:"inputs"`
	Outputs   []jsonParam `json:"outputs"`
	Anonymous bool        `json:"anonymous"`
}

type jsonParam struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Indexed    bool        `json:"indexed"`
	Components []jsonParam `json:"components"`
}

// ParseMetadata parses standard contract ABI JSON (the compiler's array of
// function/event entries). Entry types other than function and event are
// ignored.
func ParseMetadata(data []byte) (*Metadata, error) {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse contract metadata: %w", err)
	}

	meta := &Metadata{Methods: map[string]Method{}}
	for _, e := range entries {
		switch e.Type {
		case "function":
			in, err := resolveParams(e.Inputs)
			if err != nil {
				return nil, fmt.Errorf("function %s: %w", e.Name, err)
			}
			out, err := resolveParams(e.Outputs)
			if err != nil {
				return nil, fmt.Errorf("function %s: %w", e.Name, err)
			}
			meta.Methods[e.Name] = Method{Name: e.Name, Inputs: in, Outputs: out}
		case "event":
			in, err := resolveParams(e.Inputs)
			if err != nil {
				return nil, fmt.Errorf("event %s: %w", e.Name, err)
			}
			meta.Events = append(meta.Events, Event{Name: e.Name, Inputs: in})
		}
	}
	return meta, nil
}

// Method looks up a callable method by name.
func (m *Metadata) Method(name string) (Method, bool) {
	mth, ok := m.Methods[name]
	return mth, ok
}

// ID returns the event's signature hash (topic[0] of emitted logs).
func (e Event) ID() common.Hash {
	return EventID(e.Name, e.Inputs)
}

func resolveParams(params []jsonParam) (Arguments, error) {
	args := make(Arguments, 0, len(params))
	for _, p := range params {
		t, err := resolveType(p)
		if err != nil {
			return nil, err
		}
		args = append(args, Argument{Name: p.Name, Type: t, Indexed: p.Indexed})
	}
	return args, nil
}

// resolveType turns one metadata parameter into a Type. Tuples arrive as
// type "tuple" (optionally with array suffixes) plus a components list, so
// they are rebuilt as a parenthesized signature and parsed through the
// regular grammar.
func resolveType(p jsonParam) (*Type, error) {
	if !strings.HasPrefix(p.Type, "tuple") {
		return ParseType(p.Type)
	}

	names := make([]string, len(p.Components))
	for i, c := range p.Components {
		ct, err := resolveType(c)
		if err != nil {
			return nil, err
		}
		names[i] = ct.Canonical()
	}
	sig := "(" + strings.Join(names, ",") + ")" + strings.TrimPrefix(p.Type, "tuple")
	return ParseType(sig)
}
