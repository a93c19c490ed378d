package contract

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/devblac/abiwire/abi"
	"github.com/devblac/abiwire/rpc"
)

const tokenABI = `[
	{"type":"function","name":"balanceOf",
	 "inputs":[{"name":"owner","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer",
	 "inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer",
	 "inputs":[{"name":"from","type":"address","indexed":true},
	           {"name":"to","type":"address","indexed":true},
	           {"name":"value","type":"uint256"}]}
]`

const tokenAddr = "c1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59"

func newBinding(t *testing.T, handler func(method string, params []any) any) *Contract {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		resp := map[string]any{"result": handler(req.Method, req.Params), "error": nil, "id": 1}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	client, err := rpc.Dial("http://user:pass@" + u.Host)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	meta, err := abi.ParseMetadata([]byte(tokenABI))
	if err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	return New(client, tokenAddr, meta)
}

func TestCalldataSelectorAndArguments(t *testing.T) {
	c := newBinding(t, func(string, []any) any { return nil })

	data, err := c.Calldata("transfer",
		abi.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"),
		abi.Uint(big.NewInt(1000000)),
	)
	if err != nil {
		t.Fatalf("calldata: %v", err)
	}
	if !strings.HasPrefix(data, "a9059cbb") {
		t.Fatalf("wrong selector in %q", data[:8])
	}
	if len(data) != 8+2*64 {
		t.Fatalf("calldata length %d", len(data))
	}
	if !strings.HasSuffix(data, "f4240") {
		t.Fatalf("amount missing from calldata tail %q", data[len(data)-64:])
	}
}

func TestCalldataUnknownMethod(t *testing.T) {
	c := newBinding(t, func(string, []any) any { return nil })

	if _, err := c.Calldata("mint"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestCallDecodesOutput(t *testing.T) {
	c := newBinding(t, func(method string, params []any) any {
		if method != "callcontract" {
			t.Errorf("unexpected method %q", method)
		}
		if got := params[0]; got != tokenAddr {
			t.Errorf("unexpected address %v", got)
		}
		return map[string]any{
			"address": tokenAddr,
			"executionResult": map[string]any{
				"gasUsed":  26000,
				"excepted": "None",
				"output":   strings.Repeat("0", 59) + "f4240",
			},
		}
	})

	out, err := c.Call(context.Background(), "balanceOf",
		abi.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one output, got %d", len(out))
	}
	if got := out[0].BigInt(); got.Cmp(big.NewInt(1000000)) != 0 {
		t.Fatalf("unexpected balance %v", got)
	}
}

func TestCallSurfacesException(t *testing.T) {
	c := newBinding(t, func(method string, params []any) any {
		return map[string]any{
			"address": tokenAddr,
			"executionResult": map[string]any{
				"gasUsed":  26000,
				"excepted": "Revert",
				"output":   "",
			},
		}
	})

	_, err := c.Call(context.Background(), "balanceOf",
		abi.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	if err == nil || !strings.Contains(err.Error(), "Revert") {
		t.Fatalf("expected revert error, got %v", err)
	}
}

func TestSendReturnsTxID(t *testing.T) {
	c := newBinding(t, func(method string, params []any) any {
		if method != "sendtocontract" {
			t.Errorf("unexpected method %q", method)
		}
		if len(params) < 5 {
			t.Errorf("missing gas params: %v", params)
		}
		return map[string]any{"txid": "deadbeef", "sender": "qSender", "hash160": "aa"}
	})

	txid, err := c.Send(context.Background(), "transfer", rpc.SendOptions{Amount: 0},
		abi.Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"),
		abi.Uint(big.NewInt(1)),
	)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if txid != "deadbeef" {
		t.Fatalf("unexpected txid %q", txid)
	}
}

func TestSearchLogsDecodesAgainstRegistry(t *testing.T) {
	c := newBinding(t, func(method string, params []any) any {
		if method != "searchlogs" {
			t.Errorf("unexpected method %q", method)
		}
		return []map[string]any{{
			"address": tokenAddr,
			"topics": []string{
				"ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
				"000000000000000000000000" + "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
				"000000000000000000000000" + "fb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			},
			"data":        strings.Repeat("0", 59) + "f4240",
			"blockNumber": 77,
		}}
	})

	decoded, err := c.SearchLogs(context.Background(), 0, -1, false)
	if err != nil {
		t.Fatalf("search logs: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one log, got %d", len(decoded))
	}
	d := decoded[0]
	if !d.Resolved || d.Err != nil {
		t.Fatalf("log not resolved: %+v err=%v", d, d.Err)
	}
	if d.Event != "Transfer" {
		t.Fatalf("unexpected event %q", d.Event)
	}
	value, ok := d.Args["value"].(*big.Int)
	if !ok || value.Cmp(big.NewInt(1000000)) != 0 {
		t.Fatalf("unexpected value arg %v", d.Args["value"])
	}
}
