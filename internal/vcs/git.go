// Package vcs provides version control system integration.
// It supports working-tree cleanliness checks and changed-file detection
// for incremental suppression runs.
package vcs

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// sourceExtensions are the JavaScript/TypeScript extensions oxlint lints.
var sourceExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".mts": true,
	".cts": true,
	".vue": true,
}

// Git provides Git-specific VCS operations
type Git struct {
	workDir string
}

// NewGit creates a new Git VCS instance
func NewGit(workDir string) *Git {
	if workDir == "" {
		workDir = "."
	}
	return &Git{workDir: workDir}
}

// IsGitRepo checks if the working directory is inside a Git repository
func (g *Git) IsGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = g.workDir
	return cmd.Run() == nil
}

// GetRepoRoot returns the root directory of the Git repository
func (g *Git) GetRepoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("getting repo root: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsClean reports whether the working tree has no uncommitted changes.
// Suppression rewrites files in place, so callers can require a clean
// tree before any write happens.
func (g *Git) IsClean() (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("getting working tree status: %w", err)
	}
	return len(bytes.TrimSpace(out)) == 0, nil
}

// GetStagedFiles returns files that are staged for commit
func (g *Git) GetStagedFiles() ([]string, error) {
	cmd := exec.Command("git", "diff", "--name-only", "--cached")
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("getting staged files: %w", err)
	}
	return g.parseFileList(out)
}

// GetUnstagedFiles returns files that have unstaged changes
func (g *Git) GetUnstagedFiles() ([]string, error) {
	cmd := exec.Command("git", "diff", "--name-only")
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("getting unstaged files: %w", err)
	}
	return g.parseFileList(out)
}

// GetUntrackedFiles returns untracked files
func (g *Git) GetUntrackedFiles() ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--others", "--exclude-standard")
	cmd.Dir = g.workDir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("getting untracked files: %w", err)
	}
	return g.parseFileList(out)
}

// GetAllChanges returns all changed, staged, and untracked files
func (g *Git) GetAllChanges() ([]string, error) {
	files := make(map[string]bool)

	staged, err := g.GetStagedFiles()
	if err == nil {
		for _, f := range staged {
			files[f] = true
		}
	}

	unstaged, err := g.GetUnstagedFiles()
	if err == nil {
		for _, f := range unstaged {
			files[f] = true
		}
	}

	untracked, err := g.GetUntrackedFiles()
	if err == nil {
		for _, f := range untracked {
			files[f] = true
		}
	}

	result := make([]string, 0, len(files))
	for f := range files {
		result = append(result, f)
	}
	return result, nil
}

// GetAllChangedSourceFiles returns all changed JS/TS files (including
// staged, unstaged, and untracked)
func (g *Git) GetAllChangedSourceFiles() ([]string, error) {
	files, err := g.GetAllChanges()
	if err != nil {
		return nil, err
	}
	return filterSourceFiles(files), nil
}

// filterSourceFiles filters a list to only include lintable source files
func filterSourceFiles(files []string) []string {
	var result []string
	for _, f := range files {
		if sourceExtensions[strings.ToLower(filepath.Ext(f))] {
			result = append(result, f)
		}
	}
	return result
}

// parseFileList parses git output into a list of files
func (g *Git) parseFileList(out []byte) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			if !filepath.IsAbs(line) {
				repoRoot, err := g.GetRepoRoot()
				if err == nil {
					line = filepath.Join(repoRoot, line)
				}
			}
			files = append(files, line)
		}
	}
	return files, scanner.Err()
}

// FilterExisting filters a list of files to only those that exist
func FilterExisting(files []string) []string {
	var result []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			result = append(result, f)
		}
	}
	return result
}
