package abi

import (
	"encoding/hex"
	"testing"
)

func TestTransferSelector(t *testing.T) {
	args := ArgsOf("address", "uint256")
	if got := Signature("transfer", args); got != "transfer(address,uint256)" {
		t.Fatalf("unexpected signature: %s", got)
	}

	// The well-known ERC-20 transfer selector; stable across runs.
	sel := Selector("transfer", args)
	if got := hex.EncodeToString(sel[:]); got != "a9059cbb" {
		t.Fatalf("transfer selector = %s, want a9059cbb", got)
	}
	again := Selector("transfer", args)
	if sel != again {
		t.Fatalf("selector not stable across calls")
	}
}

func TestSignatureNormalizesWidths(t *testing.T) {
	bare := Signature("f", ArgsOf("uint", "int"))
	if bare != "f(uint256,int256)" {
		t.Fatalf("unexpected signature: %s", bare)
	}
	if Selector("f", ArgsOf("uint", "int")) != Selector("f", ArgsOf("uint256", "int256")) {
		t.Fatalf("bare and explicit widths must share a selector")
	}
}

func TestTransferEventID(t *testing.T) {
	args := ArgsOf("address", "address", "uint256")
	got := EventID("Transfer", args).Hex()
	want := "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	if got != want {
		t.Fatalf("Transfer event id = %s, want %s", got, want)
	}
}

func TestTupleSignatureRendering(t *testing.T) {
	args := ArgsOf("(address,uint256)[]")
	if got := Signature("batch", args); got != "batch((address,uint256)[])" {
		t.Fatalf("unexpected signature: %s", got)
	}
}
