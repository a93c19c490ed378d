package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/internal/config"
)

var (
	flagLogsFrom int64
	flagLogsTo   int64
	flagStripHex bool
)

func init() {
	logsCmd.Flags().Int64Var(&flagLogsFrom, "from", 0, "Start block (inclusive)")
	logsCmd.Flags().Int64Var(&flagLogsTo, "to", -1, "End block (inclusive, -1 = tip)")
	logsCmd.Flags().BoolVar(&flagStripHex, "strip-0x", false, "Strip 0x prefixes from decoded hex fields")
}

var logsCmd = &cobra.Command{
	Use:   "logs <contract>",
	Short: "Search and decode a contract's event logs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		client, err := dial(cfg, log)
		if err != nil {
			return err
		}
		bound, err := bindContract(cfg, client, args[0])
		if err != nil {
			return err
		}

		decoded, err := bound.SearchLogs(cmd.Context(), flagLogsFrom, flagLogsTo, flagStripHex)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, d := range decoded {
			if d.Err != nil {
				log.Warn("log decode failed", "tx", d.Raw.TransactionHash, "error", d.Err)
			}
			if err := enc.Encode(d); err != nil {
				return err
			}
		}
		return nil
	},
}
