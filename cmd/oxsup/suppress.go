// Package main provides the suppress command for oxsup.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oxsup/internal/diag"
	"oxsup/internal/output"
	"oxsup/internal/oxlint"
	"oxsup/internal/patch"
	"oxsup/internal/policy"
	"oxsup/internal/vcs"
)

var (
	suppressDryRun       bool
	suppressChanged      bool
	suppressRequireClean bool
	suppressOxlintPath   string
)

var suppressCmd = &cobra.Command{
	Use:   "suppress <plugin/rule-name> [paths...]",
	Short: "Insert suppression directives for one rule",
	Long: `Run oxlint, collect its diagnostics for the given rule, and rewrite
the affected files by inserting oxlint-disable-next-line comments above
each offending line. A line already preceded by a directive gets the
rule appended to the existing list; a directive already naming the rule
is left untouched, so re-running is a no-op.`,
	Example: `  # Suppress every no-unused-vars finding under src/
  oxsup suppress eslint/no-unused-vars ./src

  # Preview the edits without writing any file
  oxsup suppress eslint/no-unused-vars --dry-run

  # Only touch files with uncommitted changes
  oxsup suppress typescript/no-explicit-any --changed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuppress,
}

func init() {
	suppressCmd.Flags().BoolVar(&suppressDryRun, "dry-run", false, "plan and preview edits without writing files")
	suppressCmd.Flags().BoolVar(&suppressChanged, "changed", false, "only suppress in files changed in git")
	suppressCmd.Flags().BoolVar(&suppressRequireClean, "require-clean", false, "abort if the git working tree has uncommitted changes")
	suppressCmd.Flags().StringVar(&suppressOxlintPath, "oxlint-path", "", "path to the oxlint binary")
	rootCmd.AddCommand(suppressCmd)
}

func runSuppress(cmd *cobra.Command, args []string) error {
	target, err := oxlint.ParseRule(args[0])
	if err != nil {
		return usageErr(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if suppressRequireClean {
		if err := requireCleanTree(); err != nil {
			return err
		}
	}

	paths := targetPaths(args[1:])
	if suppressChanged {
		changed, err := getChangedSourceFiles()
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			fmt.Println("No changed source files")
			return nil
		}
		paths = changed
	}

	gate, err := policy.New(&policy.Config{PolicyFiles: []string{cfg.Policy.Path}})
	if err != nil {
		return err
	}

	runner := newRunner(cfg, suppressOxlintPath)
	lintReport, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return lintErr(err)
	}

	sel := diag.Select(lintReport.Diagnostics, target, diag.BannedPathMatcher(cfg.BannedPaths))

	report := &output.RunReport{
		Rule:          target.String(),
		DryRun:        suppressDryRun,
		Skipped:       sel.Skipped,
		NoDiagnostics: sel.Matched == 0,
	}

	for _, file := range sel.Order {
		fr, err := suppressFile(cmd.Context(), file, sel.Files[file], target, gate)
		if err != nil {
			return err
		}
		report.Files = append(report.Files, fr)
		report.Total += fr.Applied
	}

	formatter, err := output.GetFormatter(format)
	if err != nil {
		return usageErr(err)
	}
	return formatter.Format(report, os.Stdout)
}

// suppressFile reads one file, plans its edits against the original
// buffer, applies them in memory, and performs at most one write.
func suppressFile(
	ctx context.Context,
	path string,
	diags []oxlint.Diagnostic,
	target oxlint.Rule,
	gate *policy.Engine,
) (output.FileReport, error) {
	fr := output.FileReport{File: path}

	content, err := os.ReadFile(path)
	if err != nil {
		return fr, fmt.Errorf("reading %s: %w", path, err)
	}

	allowed := diags
	if gate.Enabled() {
		allowed, fr.Denied, err = filterByPolicy(ctx, diags, target, gate)
		if err != nil {
			return fr, err
		}
	}

	plan := patch.Build(string(content), allowed, target)
	fr.Applied = plan.Count()
	if fr.Applied == 0 {
		return fr, nil
	}

	patched, err := patch.Apply(string(content), plan.Edits)
	if err != nil {
		return fr, fmt.Errorf("applying edits to %s: %w", path, err)
	}

	if suppressDryRun {
		if format == "text" || format == "" {
			printPreview(path, patched)
		}
		return fr, nil
	}

	if err := os.WriteFile(path, []byte(patched), 0644); err != nil {
		return fr, fmt.Errorf("writing %s: %w", path, err)
	}

	return fr, nil
}

// filterByPolicy drops diagnostics whose suppression the policy denies
// and reports each denial.
func filterByPolicy(
	ctx context.Context,
	diags []oxlint.Diagnostic,
	target oxlint.Rule,
	gate *policy.Engine,
) ([]oxlint.Diagnostic, int, error) {
	var allowed []oxlint.Diagnostic
	denied := 0

	for _, d := range diags {
		denials, err := gate.Denials(ctx, policy.Input{
			Rule:    target.String(),
			File:    d.Filename,
			Line:    d.Line(),
			Message: d.Message,
		})
		if err != nil {
			return nil, 0, err
		}
		if len(denials) > 0 {
			denied++
			for _, msg := range denials {
				fmt.Printf("✗ %s:%d: suppression denied by policy: %s\n", d.Filename, d.Line(), msg)
			}
			continue
		}
		allowed = append(allowed, d)
	}

	return allowed, denied, nil
}

func requireCleanTree() error {
	git := vcs.NewGit(".")
	if !git.IsGitRepo() {
		return fmt.Errorf("not a git repository; --require-clean requires git")
	}
	clean, err := git.IsClean()
	if err != nil {
		return err
	}
	if !clean {
		return fmt.Errorf("working tree has uncommitted changes; commit or stash before suppressing")
	}
	return nil
}

func printPreview(path, patched string) {
	fmt.Printf("--- %s (preview)\n", path)
	fmt.Print(patched)
	if len(patched) > 0 && patched[len(patched)-1] != '\n' {
		fmt.Println()
	}
	fmt.Println("---")
}
