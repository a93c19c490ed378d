package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/devblac/abiwire/abi"
	"github.com/devblac/abiwire/contract"
	"github.com/devblac/abiwire/internal/config"
	"github.com/devblac/abiwire/internal/logging"
	"github.com/devblac/abiwire/rpc"
)

func newLogger() *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return logging.NewWithLevel(level)
}

// dial builds an RPC client from the loaded config.
func dial(cfg *config.Config, log *slog.Logger, opts ...rpc.Option) (*rpc.Client, error) {
	if cfg.Node.Timeout > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{Timeout: cfg.Node.Timeout}))
	}
	opts = append(opts, rpc.WithLogger(log))
	return rpc.Dial(cfg.Node.URL, opts...)
}

// loadMetadata reads and parses the ABI JSON of a configured contract.
func loadMetadata(ct config.Contract) (*abi.Metadata, error) {
	data, err := os.ReadFile(ct.ABIPath)
	if err != nil {
		return nil, fmt.Errorf("read abi %s: %w", ct.ABIPath, err)
	}
	meta, err := abi.ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("parse abi %s: %w", ct.ABIPath, err)
	}
	return meta, nil
}

// bindContract resolves a configured contract name into a ready binding.
func bindContract(cfg *config.Config, client *rpc.Client, name string) (*contract.Contract, error) {
	ct, ok := cfg.ByName(name)
	if !ok {
		return nil, fmt.Errorf("contract %q not in config", name)
	}
	meta, err := loadMetadata(ct)
	if err != nil {
		return nil, err
	}
	return contract.New(client, ct.Address, meta), nil
}
