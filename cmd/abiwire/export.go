package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/internal/config"
	"github.com/devblac/abiwire/internal/storage"
)

var flagExportLimit int

func init() {
	exportCmd.Flags().IntVar(&flagExportLimit, "limit", 0, "Maximum records to export (0 = all)")
}

var exportCmd = &cobra.Command{
	Use:   "export <contract>",
	Short: "Dump stored decoded logs as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.DBPath == "" {
			return fmt.Errorf("db_path is required for export")
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer store.Close()

		records, err := store.ListLogs(cmd.Context(), args[0], flagExportLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, rec := range records {
			if rec.PayloadJSON != "" {
				fmt.Fprintln(out, rec.PayloadJSON)
				continue
			}
			line, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(line))
		}
		return nil
	},
}
