package rpc

import "context"

// GetConnectionCount forwards getconnectioncount.
func (c *Client) GetConnectionCount(ctx context.Context) (int, error) {
	var count int
	if err := c.call(ctx, &count, "getconnectioncount"); err != nil {
		return 0, err
	}
	return count, nil
}

// PeerInfo is one entry of the getpeerinfo result.
type PeerInfo struct {
	ID             int    `json:"id"`
	Addr           string `json:"addr"`
	Services       string `json:"services"`
	LastSend       int64  `json:"lastsend"`
	LastRecv       int64  `json:"lastrecv"`
	ConnTime       int64  `json:"conntime"`
	Version        int    `json:"version"`
	Subver         string `json:"subver"`
	Inbound        bool   `json:"inbound"`
	StartingHeight int64  `json:"startingheight"`
	SyncedHeaders  int64  `json:"synced_headers"`
	SyncedBlocks   int64  `json:"synced_blocks"`
}

// GetPeerInfo forwards getpeerinfo.
func (c *Client) GetPeerInfo(ctx context.Context) ([]PeerInfo, error) {
	var peers []PeerInfo
	if err := c.call(ctx, &peers, "getpeerinfo"); err != nil {
		return nil, err
	}
	return peers, nil
}

// NetworkInfo is the getnetworkinfo result.
type NetworkInfo struct {
	Version         int     `json:"version"`
	Subversion      string  `json:"subversion"`
	ProtocolVersion int     `json:"protocolversion"`
	Connections     int     `json:"connections"`
	NetworkActive   bool    `json:"networkactive"`
	RelayFee        float64 `json:"relayfee"`
	Warnings        string  `json:"warnings"`
}

// GetNetworkInfo forwards getnetworkinfo.
func (c *Client) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	var info NetworkInfo
	if err := c.call(ctx, &info, "getnetworkinfo"); err != nil {
		return nil, err
	}
	return &info, nil
}
