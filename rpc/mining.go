package rpc

import "context"

// MiningInfo is the getmininginfo result.
type MiningInfo struct {
	Blocks             uint64  `json:"blocks"`
	CurrentBlockTx     int     `json:"currentblocktx"`
	Difficulty         float64 `json:"difficulty"`
	NetworkHashPS      float64 `json:"networkhashps"`
	NetworkStakeWeight float64 `json:"netstakeweight"`
	PooledTx           int     `json:"pooledtx"`
	Chain              string  `json:"chain"`
	Warnings           string  `json:"warnings"`
}

// GetMiningInfo forwards getmininginfo.
func (c *Client) GetMiningInfo(ctx context.Context) (*MiningInfo, error) {
	var info MiningInfo
	if err := c.call(ctx, &info, "getmininginfo"); err != nil {
		return nil, err
	}
	return &info, nil
}

// StakingInfo is the getstakinginfo result.
type StakingInfo struct {
	Enabled        bool    `json:"enabled"`
	Staking        bool    `json:"staking"`
	Errors         string  `json:"errors"`
	Weight         uint64  `json:"weight"`
	NetStakeWeight uint64  `json:"netstakeweight"`
	ExpectedTime   int64   `json:"expectedtime"`
	Difficulty     float64 `json:"difficulty"`
}

// GetStakingInfo forwards getstakinginfo.
func (c *Client) GetStakingInfo(ctx context.Context) (*StakingInfo, error) {
	var info StakingInfo
	if err := c.call(ctx, &info, "getstakinginfo"); err != nil {
		return nil, err
	}
	return &info, nil
}
