package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/contract"
	"github.com/devblac/abiwire/internal/config"
	"github.com/devblac/abiwire/internal/metrics"
	"github.com/devblac/abiwire/internal/storage"
	"github.com/devblac/abiwire/rpc"
)

var (
	flagWatchOnce     bool
	flagWatchInterval time.Duration
	flagWatchFrom     uint64
	flagWatchMetrics  string
	flagWatchStrip    bool
)

func init() {
	watchCmd.Flags().BoolVar(&flagWatchOnce, "once", false, "Process one tick and exit")
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 10*time.Second, "Polling interval")
	watchCmd.Flags().Uint64Var(&flagWatchFrom, "from", 0, "Start block override for contracts without a cursor")
	watchCmd.Flags().StringVar(&flagWatchMetrics, "metrics", "", "Metrics HTTP address (e.g., :9090)")
	watchCmd.Flags().BoolVar(&flagWatchStrip, "strip-0x", false, "Strip 0x prefixes in stored payloads")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow and store decoded logs for all configured contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		ctx := cmd.Context()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if len(cfg.Contracts) == 0 {
			return fmt.Errorf("no contracts configured")
		}
		if cfg.DBPath == "" {
			return fmt.Errorf("db_path is required for watch")
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer store.Close()

		var mtr *metrics.Metrics
		if flagWatchMetrics != "" {
			mtr = metrics.Init()
			log.Info("metrics enabled", "addr", flagWatchMetrics)
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				srv := &http.Server{Addr: flagWatchMetrics, Handler: mux}
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("metrics server error", "error", err)
				}
			}()
		}

		client, err := dial(cfg, log, recorderOption(mtr)...)
		if err != nil {
			return err
		}

		bindings := make(map[string]*contract.Contract, len(cfg.Contracts))
		for _, ct := range cfg.Contracts {
			bound, err := bindContract(cfg, client, ct.Name)
			if err != nil {
				return err
			}
			bindings[ct.Name] = bound
		}

		for {
			if err := watchTick(ctx, cfg, client.GetBlockCount, bindings, store, mtr, log); err != nil {
				log.Error("watch tick failed", "error", err)
				return err
			}
			if flagWatchOnce {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(flagWatchInterval):
			}
		}
	},
}

func watchTick(
	ctx context.Context,
	cfg *config.Config,
	blockCount func(context.Context) (uint64, error),
	bindings map[string]*contract.Contract,
	store *storage.Store,
	mtr *metrics.Metrics,
	log *slog.Logger,
) error {
	tip, err := blockCount(ctx)
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}
	safe := tip
	if c := cfg.Node.Confirmations; c > 0 {
		if c > safe {
			return nil
		}
		safe -= c
	}

	for name, bound := range bindings {
		from := flagWatchFrom
		if height, ok, err := store.GetCursor(ctx, name); err != nil {
			return err
		} else if ok {
			from = height + 1
		}
		if from > safe {
			continue
		}

		decoded, err := bound.SearchLogs(ctx, int64(from), int64(safe), flagWatchStrip)
		if err != nil {
			return fmt.Errorf("search %s logs: %w", name, err)
		}

		stored := 0
		for _, d := range decoded {
			switch {
			case d.Err != nil:
				mtr.DecodeFailed()
				log.Warn("log decode failed", "contract", name, "tx", d.Raw.TransactionHash, "error", d.Err)
			case d.Resolved:
				mtr.LogDecoded()
			default:
				mtr.LogUnresolved()
			}

			payload, err := json.Marshal(d)
			if err != nil {
				return fmt.Errorf("marshal decoded log: %w", err)
			}
			inserted, err := store.InsertLog(ctx, storage.LogRecord{
				TxHash:      d.Raw.TransactionHash,
				LogIndex:    d.Raw.LogIndex,
				Contract:    name,
				Event:       d.Event,
				Resolved:    d.Resolved,
				BlockNumber: d.Raw.BlockNumber,
				PayloadJSON: string(payload),
			})
			if err != nil {
				return err
			}
			if inserted {
				stored++
			}
		}

		if err := store.UpsertCursor(ctx, name, safe); err != nil {
			return err
		}
		log.Info("tick complete", "contract", name, "from", from, "to", safe, "logs", len(decoded), "stored", stored)
	}
	return nil
}

func recorderOption(mtr *metrics.Metrics) []rpc.Option {
	if mtr == nil {
		return nil
	}
	return []rpc.Option{rpc.WithRecorder(mtr)}
}
