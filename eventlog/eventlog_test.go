package eventlog

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/devblac/abiwire/abi"
)

func transferRegistry(t *testing.T) Registry {
	t.Helper()
	meta, err := abi.ParseMetadata([]byte(`[
		{"type":"event","name":"Transfer","inputs":[
			{"name":"from","type":"address","indexed":true},
			{"name":"to","type":"address","indexed":true},
			{"name":"value","type":"uint256","indexed":false}
		]}
	]`))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	return BuildRegistry(meta)
}

func addrTopic(addr string) string {
	return strings.Repeat("0", 24) + strings.TrimPrefix(addr, "0x")
}

const transferTopic0 = "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

func transferLog() RawLog {
	return RawLog{
		Address: "c1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59",
		Topics: []string{
			transferTopic0,
			addrTopic("0x0000000000000000000000000000000000000001"),
			addrTopic("0x0000000000000000000000000000000000000002"),
		},
		Data:            strings.Repeat("0", 59) + "f4240", // 1_000_000
		BlockHash:       "beef",
		BlockNumber:     100,
		TransactionHash: "cafe",
		LogIndex:        3,
	}
}

func TestDecodeLogTransfer(t *testing.T) {
	reg := transferRegistry(t)

	dec, err := DecodeLog(reg, transferLog())
	if err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if !dec.Resolved || dec.Event != "Transfer" {
		t.Fatalf("expected resolved Transfer, got %+v", dec)
	}
	if got := dec.Args["from"]; got != "0x0000000000000000000000000000000000000001" {
		t.Fatalf("unexpected from: %v", got)
	}
	if got := dec.Args["to"]; got != "0x0000000000000000000000000000000000000002" {
		t.Fatalf("unexpected to: %v", got)
	}
	if got := dec.Args["value"].(*big.Int); got.Cmp(big.NewInt(1_000_000)) != 0 {
		t.Fatalf("unexpected value: %v", got)
	}
	if dec.Raw.BlockNumber != 100 || dec.Raw.TransactionHash != "cafe" {
		t.Fatalf("envelope not carried through: %+v", dec.Raw)
	}
}

func TestDecodeLogUnknownSignaturePassesThrough(t *testing.T) {
	reg := transferRegistry(t)

	raw := transferLog()
	raw.Topics[0] = strings.Repeat("ab", 32)

	dec, err := DecodeLog(reg, raw)
	if err != nil {
		t.Fatalf("unknown signature must not be an error, got %v", err)
	}
	if dec.Resolved {
		t.Fatalf("expected unresolved result")
	}
	if dec.Raw.Topics[0] != raw.Topics[0] || dec.Raw.Data != raw.Data {
		t.Fatalf("raw fields must pass through unchanged")
	}
}

func TestDecodeLogTopicCountMismatch(t *testing.T) {
	reg := transferRegistry(t)

	raw := transferLog()
	raw.Topics = raw.Topics[:2] // drop one indexed topic

	_, err := DecodeLog(reg, raw)
	if !errors.Is(err, abi.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestDecodeSearchLogsIsolatesFailures(t *testing.T) {
	reg := transferRegistry(t)

	good := transferLog()
	bad := transferLog()
	bad.Data = "zz" // not hex
	unknown := transferLog()
	unknown.Topics = []string{strings.Repeat("cd", 32)}

	out := DecodeSearchLogs(reg, []RawLog{good, bad, unknown}, false)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	if out[0].Err != nil || !out[0].Resolved {
		t.Fatalf("first entry should decode: %+v", out[0])
	}
	if out[1].Err == nil {
		t.Fatalf("second entry should report its failure")
	}
	if out[2].Err != nil || out[2].Resolved {
		t.Fatalf("third entry should pass through unresolved: %+v", out[2])
	}
}

func TestDecodeSearchLogsStripsHexPrefix(t *testing.T) {
	reg := transferRegistry(t)
	logs := []RawLog{transferLog()}

	kept := DecodeSearchLogs(reg, logs, false)
	stripped := DecodeSearchLogs(reg, logs, true)

	if got := stripped[0].Args["from"]; got != "0000000000000000000000000000000000000001" {
		t.Fatalf("expected stripped address, got %v", got)
	}
	if strings.HasPrefix(stripped[0].Args["to"].(string), "0x") {
		t.Fatalf("to still carries 0x prefix")
	}

	// Numeric fields are byte-for-byte identical either way.
	a := kept[0].Args["value"].(*big.Int)
	b := stripped[0].Args["value"].(*big.Int)
	if a.Cmp(b) != 0 {
		t.Fatalf("numeric field changed by strip pass: %s vs %s", a, b)
	}
}

func TestDecodeLogIndexedDynamicKeepsCommitment(t *testing.T) {
	meta, err := abi.ParseMetadata([]byte(`[
		{"type":"event","name":"Named","inputs":[
			{"name":"name","type":"string","indexed":true},
			{"name":"who","type":"address","indexed":false}
		]}
	]`))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	reg := BuildRegistry(meta)

	ev := meta.Events[0]
	commitment := strings.Repeat("12", 32)
	raw := RawLog{
		Topics: []string{strings.TrimPrefix(ev.ID().Hex(), "0x"), commitment},
		Data:   strings.Repeat("0", 24) + strings.Repeat("1", 40),
	}

	dec, err := DecodeLog(reg, raw)
	if err != nil {
		t.Fatalf("decode log: %v", err)
	}
	if got := dec.Args["name"]; got != "0x"+commitment {
		t.Fatalf("expected hash commitment, got %v", got)
	}
}
