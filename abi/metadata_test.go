package abi

import "testing"

const erc20JSON = `[
	{"type":"function","name":"transfer","inputs":[
		{"name":"to","type":"address"},
		{"name":"value","type":"uint256"}
	],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","inputs":[
		{"name":"owner","type":"address"}
	],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"Transfer","inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}
	]},
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}]}
]`

func TestParseMetadata(t *testing.T) {
	meta, err := ParseMetadata([]byte(erc20JSON))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}

	m, ok := meta.Method("transfer")
	if !ok {
		t.Fatalf("transfer not found")
	}
	if len(m.Inputs) != 2 || m.Inputs[0].Name != "to" || m.Inputs[0].Type.Canonical() != "address" {
		t.Fatalf("unexpected transfer inputs: %+v", m.Inputs)
	}
	if len(m.Outputs) != 1 || m.Outputs[0].Type.Canonical() != "bool" {
		t.Fatalf("unexpected transfer outputs: %+v", m.Outputs)
	}

	if len(meta.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(meta.Events))
	}
	ev := meta.Events[0]
	if !ev.Inputs[0].Indexed || ev.Inputs[2].Indexed {
		t.Fatalf("indexed flags not preserved: %+v", ev.Inputs)
	}
	want := "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	if ev.ID().Hex() != want {
		t.Fatalf("Transfer id = %s, want %s", ev.ID().Hex(), want)
	}
}

func TestParseMetadataTupleComponents(t *testing.T) {
	src := `[
		{"type":"function","name":"submit","inputs":[
			{"name":"orders","type":"tuple[]","components":[
				{"name":"maker","type":"address"},
				{"name":"amount","type":"uint256"}
			]}
		],"outputs":[]}
	]`
	meta, err := ParseMetadata([]byte(src))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	m, _ := meta.Method("submit")
	if got := m.Inputs[0].Type.Canonical(); got != "(address,uint256)[]" {
		t.Fatalf("tuple type = %s", got)
	}
}

func TestParseMetadataRejectsBadType(t *testing.T) {
	src := `[{"type":"function","name":"f","inputs":[{"name":"x","type":"uint7"}],"outputs":[]}]`
	if _, err := ParseMetadata([]byte(src)); err == nil {
		t.Fatalf("expected error for invalid parameter type")
	}
}
