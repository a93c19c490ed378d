package rpc

import "context"

// GetNewAddress forwards getnewaddress, optionally with an account label.
func (c *Client) GetNewAddress(ctx context.Context, label string) (string, error) {
	params := []any{}
	if label != "" {
		params = append(params, label)
	}
	var addr string
	if err := c.call(ctx, &addr, "getnewaddress", params...); err != nil {
		return "", err
	}
	return addr, nil
}

// GetBalance forwards getbalance and returns the wallet balance in coin
// units as reported by the node.
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	var balance float64
	if err := c.call(ctx, &balance, "getbalance"); err != nil {
		return 0, err
	}
	return balance, nil
}

// SendToAddress forwards sendtoaddress and returns the transaction id.
func (c *Client) SendToAddress(ctx context.Context, address string, amount float64) (string, error) {
	var txid string
	if err := c.call(ctx, &txid, "sendtoaddress", address, amount); err != nil {
		return "", err
	}
	return txid, nil
}

// Unspent is one entry of the listunspent result.
type Unspent struct {
	TxID          string  `json:"txid"`
	Vout          int     `json:"vout"`
	Address       string  `json:"address"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
	Solvable      bool    `json:"solvable"`
	Safe          bool    `json:"safe"`
}

// ListUnspent forwards listunspent with a minimum confirmation bound.
func (c *Client) ListUnspent(ctx context.Context, minConf int) ([]Unspent, error) {
	var outs []Unspent
	if err := c.call(ctx, &outs, "listunspent", minConf); err != nil {
		return nil, err
	}
	return outs, nil
}

// GetAddressesByAccount forwards getaddressesbyaccount.
func (c *Client) GetAddressesByAccount(ctx context.Context, account string) ([]string, error) {
	var addrs []string
	if err := c.call(ctx, &addrs, "getaddressesbyaccount", account); err != nil {
		return nil, err
	}
	return addrs, nil
}
