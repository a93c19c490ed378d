// Package eventlog resolves raw contract logs against known event
// definitions and decodes their indexed and data-carried parameters.
package eventlog

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/devblac/abiwire/abi"
)

// Registry maps event signature hashes to their definitions. It is flat
// across contracts: topic[0] identifies the event regardless of the emitting
// address. The registry is caller-owned and passed into each decode; nothing
// is retained between calls.
type Registry map[common.Hash]abi.Event

// BuildRegistry flattens the events of one or more contract metadata tables
// into a signature-hash lookup.
func BuildRegistry(metas ...*abi.Metadata) Registry {
	reg := Registry{}
	for _, m := range metas {
		if m == nil {
			continue
		}
		for _, ev := range m.Events {
			reg[ev.ID()] = ev
		}
	}
	return reg
}

// RawLog is one entry of a log-search result: the emitting address, the
// topic words, the data payload, and the block/transaction envelope, all as
// received from the node.
type RawLog struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockHash        string   `json:"blockHash"`
	BlockNumber      uint64   `json:"blockNumber"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex int      `json:"transactionIndex"`
	LogIndex         int      `json:"logIndex"`
}

// Decoded is the outcome for one raw log. Resolved reports whether topic[0]
// matched a known event; unresolved logs keep their raw fields and are not
// errors. Err records an entry-level decode failure during batch decoding.
type Decoded struct {
	Event    string         `json:"event,omitempty"`
	Args     map[string]any `json:"args,omitempty"`
	Resolved bool           `json:"resolved"`
	Raw      RawLog         `json:"raw"`
	Err      error          `json:"-"`
}

// DecodeLog resolves one raw log against the registry. An unknown signature
// hash returns an unresolved result, never an error. Indexed parameters
// decode one topic word each in declaration order; indexed parameters of
// dynamic type surface only their 32-byte hash commitment (the original
// content is not recoverable from a topic). Non-indexed parameters decode
// from the data payload.
func DecodeLog(reg Registry, raw RawLog) (Decoded, error) {
	return decodeLog(reg, raw, false)
}

func decodeLog(reg Registry, raw RawLog, stripHexPrefix bool) (Decoded, error) {
	if len(raw.Topics) == 0 {
		return Decoded{Raw: raw}, nil
	}

	id, err := topicWord(raw.Topics[0])
	if err != nil {
		return Decoded{Raw: raw}, &abi.DecodeError{Param: "topic 0", Msg: "topic is not a valid 32-byte hex word"}
	}
	ev, ok := reg[common.BytesToHash(id)]
	if !ok {
		return Decoded{Raw: raw}, nil
	}

	indexed, nonIndexed := splitIndexed(ev.Inputs)
	if len(raw.Topics)-1 != len(indexed) {
		return Decoded{Raw: raw}, &abi.DecodeError{
			Param: ev.Name,
			Msg:   fmt.Sprintf("log carries %d indexed topics, event declares %d", len(raw.Topics)-1, len(indexed)),
		}
	}

	args := map[string]any{}
	for i, a := range indexed {
		word, err := topicWord(raw.Topics[i+1])
		if err != nil {
			return Decoded{Raw: raw}, &abi.DecodeError{Param: a.Name, Msg: "topic is not a valid 32-byte hex word"}
		}
		args[a.Name] = lowerTopic(a.Type, word, stripHexPrefix)
	}

	values, err := abi.Decode(nonIndexed, raw.Data)
	if err != nil {
		return Decoded{Raw: raw}, err
	}
	for i, a := range nonIndexed {
		args[a.Name] = lowerValue(values[i], stripHexPrefix)
	}

	return Decoded{Event: ev.Name, Args: args, Resolved: true, Raw: raw}, nil
}

// DecodeSearchLogs decodes a search-log batch in input order. Entries are
// never dropped or reordered: unknown events pass through unresolved and a
// malformed entry is reported on its own Err field without aborting the rest
// of the batch. When stripHexPrefix is set, decoded hex-string fields
// (addresses, byte payloads, topic commitments) lose their leading 0x;
// numeric, boolean, and text fields are unaffected.
func DecodeSearchLogs(reg Registry, logs []RawLog, stripHexPrefix bool) []Decoded {
	out := make([]Decoded, len(logs))
	for i, raw := range logs {
		dec, err := decodeLog(reg, raw, stripHexPrefix)
		if err != nil {
			dec.Err = err
		}
		out[i] = dec
	}
	return out
}

// lowerTopic decodes a single indexed topic word. Static primitives decode
// directly; dynamic types keep their hash commitment.
func lowerTopic(t *abi.Type, word []byte, strip bool) any {
	switch t.Kind {
	case abi.KindUint, abi.KindInt, abi.KindBool, abi.KindAddress, abi.KindFixedBytes:
		v, err := abi.DecodeWord(t, word)
		if err == nil {
			return lowerValue(v, strip)
		}
	}
	return hexString(word, strip)
}

// lowerValue converts a decoded value to its plain form, optionally without
// 0x markers on hex-string fields.
func lowerValue(v abi.Value, strip bool) any {
	switch v.Kind() {
	case abi.KindAddress:
		return hexStringFrom(strings.ToLower(v.Text()), strip)
	case abi.KindBytes, abi.KindFixedBytes:
		return hexString(v.Bytes(), strip)
	case abi.KindArray, abi.KindTuple:
		elems := v.Values()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = lowerValue(e, strip)
		}
		return out
	}
	return v.Interface()
}

func hexString(b []byte, strip bool) string {
	return hexStringFrom(hex.EncodeToString(b), strip)
}

func hexStringFrom(s string, strip bool) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if strip {
		return s
	}
	return "0x" + s
}

func splitIndexed(args abi.Arguments) (indexed abi.Arguments, nonIndexed abi.Arguments) {
	for _, a := range args {
		if a.Indexed {
			indexed = append(indexed, a)
		} else {
			nonIndexed = append(nonIndexed, a)
		}
	}
	return indexed, nonIndexed
}

// topicWord decodes one topic into its 32 raw bytes.
func topicWord(topic string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(topic, "0x"), "0X"))
	if err != nil {
		return nil, err
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("topic is %d bytes, want 32", len(b))
	}
	return b, nil
}
