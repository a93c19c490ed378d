// Package contract glues the codec to the RPC surface: a binding over one
// deployed contract that encodes call arguments, forwards the call, and
// decodes results and logs.
package contract

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/devblac/abiwire/abi"
	"github.com/devblac/abiwire/eventlog"
	"github.com/devblac/abiwire/rpc"
)

// Contract binds a deployed contract address to its metadata and a client.
type Contract struct {
	client  *rpc.Client
	address string
	meta    *abi.Metadata
	reg     eventlog.Registry
}

// New builds a binding. The metadata table is owned by the caller and read
// only; the registry derived from it is computed once here.
func New(client *rpc.Client, address string, meta *abi.Metadata) *Contract {
	return &Contract{
		client:  client,
		address: address,
		meta:    meta,
		reg:     eventlog.BuildRegistry(meta),
	}
}

// Address returns the bound contract address.
func (c *Contract) Address() string { return c.address }

// Metadata returns the contract's parsed ABI metadata.
func (c *Contract) Metadata() *abi.Metadata { return c.meta }

// Calldata encodes a method invocation: 4-byte selector followed by the
// packed arguments, as unprefixed hex.
func (c *Contract) Calldata(method string, args ...abi.Value) (string, error) {
	m, ok := c.meta.Method(method)
	if !ok {
		return "", fmt.Errorf("contract: method %q not in metadata", method)
	}
	sel := abi.Selector(m.Name, m.Inputs)
	encoded, err := abi.Encode(m.Inputs, args)
	if err != nil {
		return "", fmt.Errorf("encode %s arguments: %w", method, err)
	}
	return hex.EncodeToString(sel[:]) + encoded, nil
}

// Call executes a read-only contract call and decodes the execution output
// against the method's declared outputs. A node-side execution exception is
// returned as an error.
func (c *Contract) Call(ctx context.Context, method string, args ...abi.Value) ([]abi.Value, error) {
	m, ok := c.meta.Method(method)
	if !ok {
		return nil, fmt.Errorf("contract: method %q not in metadata", method)
	}
	data, err := c.Calldata(method, args...)
	if err != nil {
		return nil, err
	}

	res, err := c.client.CallContract(ctx, c.address, data, "")
	if err != nil {
		return nil, err
	}
	if ex := res.ExecutionResult.Excepted; ex != "" && ex != "None" {
		return nil, fmt.Errorf("contract: %s reverted: %s", method, ex)
	}

	values, err := abi.Decode(m.Outputs, res.ExecutionResult.Output)
	if err != nil {
		return nil, fmt.Errorf("decode %s output: %w", method, err)
	}
	return values, nil
}

// Send executes a state-changing contract call through a wallet transaction
// and returns the transaction id.
func (c *Contract) Send(ctx context.Context, method string, opts rpc.SendOptions, args ...abi.Value) (string, error) {
	data, err := c.Calldata(method, args...)
	if err != nil {
		return "", err
	}
	res, err := c.client.SendToContract(ctx, c.address, data, opts)
	if err != nil {
		return "", err
	}
	return res.TxID, nil
}

// SearchLogs fetches this contract's logs over an inclusive block range and
// decodes them against the contract's events. Unknown events pass through
// unresolved; per-entry decode failures stay on the entry.
func (c *Contract) SearchLogs(ctx context.Context, fromBlock, toBlock int64, stripHexPrefix bool) ([]eventlog.Decoded, error) {
	raw, err := c.client.SearchLogs(ctx, fromBlock, toBlock, rpc.LogFilter{
		Addresses: []string{c.address},
	})
	if err != nil {
		return nil, err
	}
	return eventlog.DecodeSearchLogs(c.reg, raw, stripHexPrefix), nil
}
