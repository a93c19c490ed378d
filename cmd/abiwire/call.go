package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/internal/config"
	"github.com/devblac/abiwire/rpc"
)

var (
	flagSendAmount   float64
	flagSendGasLimit uint64
	flagSendSender   string
	flagSend         bool
)

func init() {
	callCmd.Flags().BoolVar(&flagSend, "send", false, "Execute as a state-changing transaction instead of a read-only call")
	callCmd.Flags().Float64Var(&flagSendAmount, "amount", 0, "Coins to transfer with --send")
	callCmd.Flags().Uint64Var(&flagSendGasLimit, "gas-limit", 0, "Gas limit for --send (0 = node default)")
	callCmd.Flags().StringVar(&flagSendSender, "sender", "", "Sender address for --send")
}

var callCmd = &cobra.Command{
	Use:   "call <contract> <method> [value...]",
	Short: "Invoke a contract method and decode the result",
	Args:  cobra.MinimumNArgs(2),
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

		method := args[1]
		m, ok := bound.Metadata().Method(method)
		if !ok {
			return fmt.Errorf("method %q not in contract %q metadata", method, args[0])
		}
		values, err := parseValues(m.Inputs, args[2:])
		if err != nil {
			return err
		}

		if flagSend {
			txid, err := bound.Send(cmd.Context(), method, rpc.SendOptions{
				Amount:   flagSendAmount,
				GasLimit: flagSendGasLimit,
				Sender:   flagSendSender,
			}, values...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), txid)
			return nil
		}

		results, err := bound.Call(cmd.Context(), method, values...)
		if err != nil {
			return err
		}
		plain := make([]any, len(results))
		for i, v := range results {
			plain[i] = v.Interface()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plain)
	},
}
