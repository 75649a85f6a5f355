package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	format  string
)

var rootCmd = &cobra.Command{
	Use:   "oxsup",
	Short: "oxsup - suppression directives for oxlint diagnostics",
	Long: `oxsup runs oxlint, collects its diagnostics for a single rule, and
rewrites the affected source files by inserting or extending
oxlint-disable-next-line comments, one per offending line.

It never reformats code, never lints code itself, and leaves every
unaffected line byte-for-byte unchanged.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .oxsup.yaml)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "output format (text|json|json-compact; rules also accepts sarif)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
