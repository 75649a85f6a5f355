package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"oxsup/internal/output"
	"oxsup/internal/oxlint"
)

var rulesOxlintPath string

var rulesCmd = &cobra.Command{
	Use:   "rules [paths...]",
	Short: "Summarize oxlint diagnostics by rule",
	Long: `Run oxlint and list how many diagnostics each rule produced, to help
pick the rule identifier to pass to suppress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runner := newRunner(cfg, rulesOxlintPath)
		report, err := runner.Run(cmd.Context(), targetPaths(args))
		if err != nil {
			return lintErr(err)
		}

		switch format {
		case "sarif":
			formatter := &output.SARIFFormatter{Version: version}
			return formatter.FormatDiagnostics(report.Diagnostics, os.Stdout)
		case "json":
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(countByRule(report.Diagnostics))
		case "text", "":
			printRuleCounts(report.Diagnostics)
			return nil
		default:
			return usageErr(fmt.Errorf("unsupported output format: %s", format))
		}
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesOxlintPath, "oxlint-path", "", "path to the oxlint binary")
	rootCmd.AddCommand(rulesCmd)
}

type ruleCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// countByRule aggregates diagnostics per rule code, most frequent first.
func countByRule(diags []oxlint.Diagnostic) []ruleCount {
	byCode := make(map[string]int)
	for _, d := range diags {
		byCode[d.Code]++
	}

	counts := make([]ruleCount, 0, len(byCode))
	for code, n := range byCode {
		counts = append(counts, ruleCount{Code: code, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Code < counts[j].Code
	})
	return counts
}

func printRuleCounts(diags []oxlint.Diagnostic) {
	if len(diags) == 0 {
		fmt.Println("✓ No diagnostics")
		return
	}

	counts := countByRule(diags)
	for _, rc := range counts {
		fmt.Printf("%5d  %s\n", rc.Count, rc.Code)
	}
	fmt.Printf("Total: %d diagnostic(s) across %d rule(s)\n", len(diags), len(counts))
}
