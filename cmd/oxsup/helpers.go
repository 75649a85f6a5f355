// Package main provides CLI helpers for oxsup commands.
package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"oxsup/internal/config"
	"oxsup/internal/oxlint"
	"oxsup/internal/vcs"
)

// loadConfig loads the configuration honoring the global --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newRunner builds the oxlint runner from config, with an optional
// per-command binary path override.
func newRunner(cfg *config.Config, pathOverride string) *oxlint.Runner {
	path := cfg.Oxlint.Path
	if pathOverride != "" {
		path = pathOverride
	}
	return oxlint.NewRunner(path, cfg.Oxlint.Args)
}

// targetPaths returns the paths handed to oxlint. File discovery within
// them is oxlint's job; oxsup only ever touches files oxlint reported.
func targetPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// getChangedSourceFiles uses git to find changed JS/TS files for
// --changed runs.
func getChangedSourceFiles() ([]string, error) {
	git := vcs.NewGit(".")

	if !git.IsGitRepo() {
		return nil, fmt.Errorf("not a git repository; --changed requires git")
	}

	changed, err := git.GetAllChangedSourceFiles()
	if err != nil {
		return nil, fmt.Errorf("getting changed files: %w", err)
	}

	return vcs.FilterExisting(changed), nil
}

// isSourceFile checks if a file has an extension oxlint lints.
func isSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts", ".vue":
		return true
	}
	return false
}

// formatFileCount returns a human-readable file count string.
func formatFileCount(count int) string {
	if count == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", count)
}
