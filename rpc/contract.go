package rpc

import (
	"context"
	"strings"

	"github.com/devblac/abiwire/eventlog"
)

// ExecutionResult is the node-side outcome of a contract call.
type ExecutionResult struct {
	GasUsed         uint64 `json:"gasUsed"`
	Excepted        string `json:"excepted"`
	ExceptedMessage string `json:"exceptedMessage"`
	NewAddress      string `json:"newAddress"`
	Output          string `json:"output"`
	CodeDeposit     int    `json:"codeDeposit"`
	GasForDeposit   uint64 `json:"gasForDeposit"`
	DepositSize     int    `json:"depositSize"`
}

// CallContractResult is the callcontract result envelope.
type CallContractResult struct {
	Address         string          `json:"address"`
	ExecutionResult ExecutionResult `json:"executionResult"`
}

// CallContract forwards callcontract: a read-only execution of calldata
// against a deployed contract. sender may be empty. The calldata prefix
// convention is a transport concern, so a leading 0x is stripped here before
// it reaches the node.
func (c *Client) CallContract(ctx context.Context, contractAddr, data, sender string) (*CallContractResult, error) {
	params := []any{trimHexPrefix(contractAddr), trimHexPrefix(data)}
	if sender != "" {
		params = append(params, sender)
	}
	var res CallContractResult
	if err := c.call(ctx, &res, "callcontract", params...); err != nil {
		return nil, err
	}
	return &res, nil
}

// SendOptions are the optional sendtocontract parameters.
type SendOptions struct {
	// Amount in coin units to transfer with the call.
	Amount float64
	// GasLimit of the execution; 0 uses the node default.
	GasLimit uint64
	// GasPrice in coin units per gas; 0 uses the node default.
	GasPrice float64
	// Sender address paying for and signing the transaction.
	Sender string
}

// SendResult is the sendtocontract result.
type SendResult struct {
	TxID    string `json:"txid"`
	Sender  string `json:"sender"`
	Hash160 string `json:"hash160"`
}

const (
	defaultGasLimit = 250000
	defaultGasPrice = 0.0000004
)

// SendToContract forwards sendtocontract: a state-changing execution of
// calldata carried in a wallet transaction.
func (c *Client) SendToContract(ctx context.Context, contractAddr, data string, opts SendOptions) (*SendResult, error) {
	gasLimit := opts.GasLimit
	if gasLimit == 0 {
		gasLimit = defaultGasLimit
	}
	gasPrice := opts.GasPrice
	if gasPrice == 0 {
		gasPrice = defaultGasPrice
	}

	params := []any{trimHexPrefix(contractAddr), trimHexPrefix(data), opts.Amount, gasLimit, gasPrice}
	if opts.Sender != "" {
		params = append(params, opts.Sender)
	}
	var res SendResult
	if err := c.call(ctx, &res, "sendtocontract", params...); err != nil {
		return nil, err
	}
	return &res, nil
}

// LogFilter narrows a searchlogs call. Empty slices leave the dimension
// unfiltered.
type LogFilter struct {
	Addresses []string
	Topics    []string
}

// SearchLogs forwards searchlogs over an inclusive block range and returns
// the raw matching logs. toBlock -1 means the current tip. Empty filter
// dimensions are left out of the request: the parameters are positional, so
// an empty addresses object stands in only when a topic filter follows it.
func (c *Client) SearchLogs(ctx context.Context, fromBlock, toBlock int64, filter LogFilter) ([]eventlog.RawLog, error) {
	params := []any{fromBlock, toBlock}
	if len(filter.Addresses) > 0 || len(filter.Topics) > 0 {
		addresses := map[string][]string{}
		if len(filter.Addresses) > 0 {
			addresses["addresses"] = normalizeHex(filter.Addresses)
		}
		params = append(params, addresses)
	}
	if len(filter.Topics) > 0 {
		params = append(params, map[string][]string{"topics": normalizeHex(filter.Topics)})
	}

	var logs []eventlog.RawLog
	if err := c.call(ctx, &logs, "searchlogs", params...); err != nil {
		return nil, err
	}
	return logs, nil
}

// TransactionReceipt is one entry of the gettransactionreceipt result.
type TransactionReceipt struct {
	BlockHash         string            `json:"blockHash"`
	BlockNumber       uint64            `json:"blockNumber"`
	TransactionHash   string            `json:"transactionHash"`
	TransactionIndex  int               `json:"transactionIndex"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	CumulativeGasUsed uint64            `json:"cumulativeGasUsed"`
	GasUsed           uint64            `json:"gasUsed"`
	ContractAddress   string            `json:"contractAddress"`
	Excepted          string            `json:"excepted"`
	Log               []eventlog.RawLog `json:"log"`
}

// GetTransactionReceipt forwards gettransactionreceipt for a transaction id.
func (c *Client) GetTransactionReceipt(ctx context.Context, txid string) ([]TransactionReceipt, error) {
	var receipts []TransactionReceipt
	if err := c.call(ctx, &receipts, "gettransactionreceipt", txid); err != nil {
		return nil, err
	}
	return receipts, nil
}

// GetHexAddress forwards gethexaddress, converting a base58 address to its
// hex form usable in contract arguments.
func (c *Client) GetHexAddress(ctx context.Context, address string) (string, error) {
	var hexAddr string
	if err := c.call(ctx, &hexAddr, "gethexaddress", address); err != nil {
		return "", err
	}
	return hexAddr, nil
}

// FromHexAddress forwards fromhexaddress, the inverse of GetHexAddress.
func (c *Client) FromHexAddress(ctx context.Context, hexAddr string) (string, error) {
	var addr string
	if err := c.call(ctx, &addr, "fromhexaddress", trimHexPrefix(hexAddr)); err != nil {
		return "", err
	}
	return addr, nil
}

func trimHexPrefix(s string) string {
	s = strings.TrimPrefix(s, "0x")
	return strings.TrimPrefix(s, "0X")
}

func normalizeHex(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = trimHexPrefix(s)
	}
	return out
}
