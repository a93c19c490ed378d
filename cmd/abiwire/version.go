package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set through -ldflags at release build time.
var (
	version = "dev"
	commit  = "none"
	date    = ""
)

func versionString() string {
	v := version
	if commit != "" && commit != "none" {
		v += "+" + commit
	}
	if date != "" {
		v += " (" + date + ")"
	}
	return v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "abiwire %s %s/%s\n", versionString(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
