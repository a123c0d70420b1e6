//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command fantastic4 runs the four-party arithmetic sharing
// protocol.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markkurossi/fantastic4/log"
)

var (
	logFormat = log.FmtLogfmt
	logLevel  = log.LevelInfo

	rootCmd = &cobra.Command{
		Use:           "fantastic4",
		Short:         "Four-party replicated secret sharing over Z/2^k",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func newLogger(module string) *log.Logger {
	logger, err := log.NewLogger(module, os.Stderr, logFormat, logLevel)
	if err != nil {
		return log.NewDefaultLogger(module)
	}
	return logger
}

func init() {
	rootCmd.PersistentFlags().Var(&logFormat, "log-format", "log format")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level", "log level")

	rootCmd.AddCommand(costsCmd, localCmd, partyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		newLogger("main").Error("command failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
