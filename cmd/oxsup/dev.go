// Package main provides the dev command for oxsup.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"oxsup/internal/diag"
	"oxsup/internal/oxlint"
	"oxsup/internal/patch"
)

var devTarget string

var devCmd = &cobra.Command{
	Use:   "dev <plugin/rule-name>",
	Short: "Watch mode: re-plan suppressions on file changes",
	Long: `Watch the target directory and, whenever a source file changes,
re-run oxlint and print the suppression plan for the given rule.

Plans are always dry-run in this mode; no file is ever written. This is
useful while deciding whether to suppress or fix a batch of findings.`,
	Example: `  # Watch the current directory
  oxsup dev eslint/no-unused-vars

  # Watch a specific directory
  oxsup dev typescript/no-explicit-any --target ./src`,
	Args: cobra.ExactArgs(1),
	RunE: runDev,
}

func init() {
	devCmd.Flags().StringVar(&devTarget, "target", ".", "target directory to watch and plan against")
	rootCmd.AddCommand(devCmd)
}

func runDev(cmd *cobra.Command, args []string) error {
	target, err := oxlint.ParseRule(args[0])
	if err != nil {
		return usageErr(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Starting watch mode...")
	fmt.Printf("  Rule:   %s\n", target)
	fmt.Printf("  Target: %s\n", devTarget)
	fmt.Println()

	if _, err := os.Stat(devTarget); os.IsNotExist(err) {
		return fmt.Errorf("target directory does not exist: %s", devTarget)
	}

	// Run initial plan
	if err := runDevPlan(cmd.Context(), cfg.BannedPaths, newRunner(cfg, ""), target); err != nil {
		fmt.Printf("Initial plan error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	banned := diag.BannedPathMatcher(cfg.BannedPaths)
	err = filepath.Walk(devTarget, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if banned(path) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting up watch: %w", err)
	}

	fmt.Println("Watching for changes... (Ctrl+C to stop)")
	fmt.Println()

	// Debounce timer
	var debounceTimer *time.Timer
	debounceDelay := 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only react to write and create events
			if event.Op&fsnotify.Write == 0 && event.Op&fsnotify.Create == 0 {
				continue
			}

			if !isSourceFile(event.Name) {
				continue
			}

			// Debounce multiple rapid events
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				fmt.Printf("\n[%s] File changed: %s\n\n", time.Now().Format("15:04:05"), event.Name)

				if err := runDevPlan(context.Background(), cfg.BannedPaths, newRunner(cfg, ""), target); err != nil {
					fmt.Printf("Plan error: %v\n", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("Watcher error: %v\n", err)
		}
	}
}

// runDevPlan runs oxlint against the target and prints the suppression
// plan without touching any file.
func runDevPlan(ctx context.Context, bannedPaths []string, runner *oxlint.Runner, target oxlint.Rule) error {
	report, err := runner.Run(ctx, []string{devTarget})
	if err != nil {
		return err
	}

	sel := diag.Select(report.Diagnostics, target, diag.BannedPathMatcher(bannedPaths))
	if sel.Matched == 0 {
		fmt.Printf("✓ No diagnostics for rule %s\n", target)
		return nil
	}

	total := 0
	for _, file := range sel.Order {
		content, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("⚠ %s: %v\n", file, err)
			continue
		}
		plan := patch.Build(string(content), sel.Files[file], target)
		fmt.Printf("%s: %d directive(s) planned\n", file, plan.Count())
		total += plan.Count()
	}
	for _, skipped := range sel.Skipped {
		fmt.Printf("⚠ %s: skipped (banned path)\n", skipped)
	}
	fmt.Printf("Would add %d directive(s) across %s\n", total, formatFileCount(len(sel.Order)))

	return nil
}
