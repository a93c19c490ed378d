package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config, ABI files, and node connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}
		fmt.Fprintf(out, "config OK (version %d)\n", cfg.Version)

		failures := 0
		for _, ct := range cfg.Contracts {
			meta, err := loadMetadata(ct)
			if err != nil {
				failures++
				fmt.Fprintf(out, "- contract %s: ERROR %v\n", ct.Name, err)
				continue
			}
			fmt.Fprintf(out, "- contract %s: %d method(s), %d event(s) OK\n", ct.Name, len(meta.Methods), len(meta.Events))
		}

		client, err := dial(cfg, newLogger())
		if err != nil {
			return err
		}
		info, err := client.GetBlockchainInfo(cmd.Context())
		if err != nil {
			failures++
			fmt.Fprintf(out, "- node: ERROR %v\n", err)
		} else {
			fmt.Fprintf(out, "- node: chain %s height %d OK\n", info.Chain, info.Blocks)
		}

		if failures > 0 {
			return fmt.Errorf("validate: %d check(s) failed", failures)
		}
		fmt.Fprintln(out, "validate: success")
		return nil
	},
}
