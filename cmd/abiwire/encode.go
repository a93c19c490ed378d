package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devblac/abiwire/abi"
)

var flagNoSelector bool

func init() {
	encodeCmd.Flags().BoolVar(&flagNoSelector, "no-selector", false, "Emit packed arguments without the 4-byte selector")
}

var encodeCmd = &cobra.Command{
	Use:   "encode <signature> [value...]",
	Short: "Encode call arguments into calldata hex",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, params, err := parseSignature(args[0])
		if err != nil {
			return err
		}
		values, err := parseValues(params, args[1:])
		if err != nil {
			return err
		}

		encoded, err := abi.Encode(params, values)
		if err != nil {
			return err
		}
		if !flagNoSelector {
			sel := abi.Selector(name, params)
			encoded = hex.EncodeToString(sel[:]) + encoded
		}
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	},
}

var selectorCmd = &cobra.Command{
	Use:   "selector <signature>",
	Short: "Print the selector and signature hash for a function or event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, params, err := parseSignature(args[0])
		if err != nil {
			return err
		}
		sel := abi.Selector(name, params)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "signature: %s\n", abi.Signature(name, params))
		fmt.Fprintf(out, "selector:  %s\n", hex.EncodeToString(sel[:]))
		fmt.Fprintf(out, "hash:      %s\n", abi.EventID(name, params).Hex())
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <types> <hex>",
	Short: "Decode result hex against a comma-separated type list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := abi.ParseType("(" + args[0] + ")")
		if err != nil {
			return err
		}
		params := make(abi.Arguments, len(t.Components))
		for i, c := range t.Components {
			params[i] = abi.Argument{Type: c}
		}

		values, err := abi.Decode(params, args[1])
		if err != nil {
			return err
		}

		plain := make([]any, len(values))
		for i, v := range values {
			plain[i] = v.Interface()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plain)
	},
}
