package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type recordedRequest struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

func newTestServer(t *testing.T, handler func(req recordedRequest) (any, *Error)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req recordedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		result, rpcErr := handler(req)
		resp := map[string]any{"result": result, "error": rpcErr, "id": 1}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	client, err := Dial("http://alice:hunter2@" + u.Host)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return client
}

func TestRawCallForwardsMethodAndAuth(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		if req.Method != "getblockcount" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if len(req.Params) != 0 {
			t.Errorf("unexpected params %v", req.Params)
		}
		return 1234, nil
	})

	count, err := client.GetBlockCount(context.Background())
	if err != nil {
		t.Fatalf("get block count: %v", err)
	}
	if count != 1234 {
		t.Fatalf("unexpected count %d", count)
	}
}

func TestRawCallSurfacesNodeError(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		return nil, &Error{Code: -5, Message: "block not found"}
	})

	_, err := client.GetBlockHash(context.Background(), 999)
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if rpcErr.Code != -5 {
		t.Fatalf("unexpected code %d", rpcErr.Code)
	}
}

func TestDialRejectsBadURL(t *testing.T) {
	if _, err := Dial("ftp://example.com"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestCallContractStripsHexPrefix(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		if req.Method != "callcontract" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if got := req.Params[0]; got != "c1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59" {
			t.Errorf("address not stripped: %v", got)
		}
		if got := req.Params[1]; got != "a9059cbb" {
			t.Errorf("calldata not stripped: %v", got)
		}
		return map[string]any{
			"address": req.Params[0],
			"executionResult": map[string]any{
				"gasUsed":  21000,
				"excepted": "None",
				"output":   "0001",
			},
		}, nil
	})

	res, err := client.CallContract(context.Background(),
		"0xc1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59", "0xa9059cbb", "")
	if err != nil {
		t.Fatalf("call contract: %v", err)
	}
	if res.ExecutionResult.Output != "0001" || res.ExecutionResult.GasUsed != 21000 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSearchLogsShapesFilter(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		if req.Method != "searchlogs" {
			t.Errorf("unexpected method %q", req.Method)
		}
		if got := req.Params[0].(float64); got != 10 {
			t.Errorf("unexpected fromBlock %v", got)
		}
		if len(req.Params) != 3 {
			t.Errorf("want 3 params with an address filter, got %v", req.Params)
		}
		addrFilter := req.Params[2].(map[string]any)
		if _, ok := addrFilter["addresses"]; !ok {
			t.Errorf("missing addresses filter: %v", addrFilter)
		}
		return []map[string]any{{
			"address":         "c1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59",
			"topics":          []string{"aa"},
			"data":            "",
			"blockNumber":     42,
			"transactionHash": "cafe",
		}}, nil
	})

	logs, err := client.SearchLogs(context.Background(), 10, -1, LogFilter{
		Addresses: []string{"0xc1b132a1e4e1f2c2b6d3a5a67a9a4e1d2c3b4a59"},
	})
	if err != nil {
		t.Fatalf("search logs: %v", err)
	}
	if len(logs) != 1 || logs[0].BlockNumber != 42 || logs[0].TransactionHash != "cafe" {
		t.Fatalf("unexpected logs %+v", logs)
	}
}

func TestSearchLogsOmitsEmptyFilters(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		if len(req.Params) != 2 {
			t.Errorf("unfiltered search must send only the block range, got %v", req.Params)
		}
		return []map[string]any{}, nil
	})

	if _, err := client.SearchLogs(context.Background(), 0, -1, LogFilter{}); err != nil {
		t.Fatalf("search logs: %v", err)
	}
}

func TestSearchLogsTopicsOnlyFilter(t *testing.T) {
	client := newTestServer(t, func(req recordedRequest) (any, *Error) {
		if len(req.Params) != 4 {
			t.Errorf("topic filter needs the address placeholder, got %v", req.Params)
			return []map[string]any{}, nil
		}
		if addr := req.Params[2].(map[string]any); len(addr) != 0 {
			t.Errorf("address placeholder must be empty, got %v", addr)
		}
		topics := req.Params[3].(map[string]any)
		if _, ok := topics["topics"]; !ok {
			t.Errorf("missing topics filter: %v", topics)
		}
		return []map[string]any{}, nil
	})

	_, err := client.SearchLogs(context.Background(), 0, -1, LogFilter{
		Topics: []string{"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"},
	})
	if err != nil {
		t.Fatalf("search logs: %v", err)
	}
}
