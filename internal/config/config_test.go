package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultConfig(t *testing.T) {
	// Load with a path that does not exist (should return defaults)
	cfg, err := Load(filepath.Join(t.TempDir(), ".oxsup.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "oxlint", cfg.Oxlint.Path)
	assert.Contains(t, cfg.BannedPaths, "node_modules")
	assert.Contains(t, cfg.BannedPaths, ".git")
	assert.Equal(t, ".oxsup.rego", cfg.Policy.Path)
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".oxsup.yaml")

	content := `version: 1
oxlint:
  path: /opt/oxlint/bin/oxlint
  args: ["--deny-warnings"]
banned_paths: [node_modules, generated]
policy:
  path: policies/suppress.rego
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/opt/oxlint/bin/oxlint", cfg.Oxlint.Path)
	assert.Equal(t, []string{"--deny-warnings"}, cfg.Oxlint.Args)
	assert.Equal(t, []string{"node_modules", "generated"}, cfg.BannedPaths)
	assert.Equal(t, "policies/suppress.rego", cfg.Policy.Path)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("OXLINT_BIN", "/custom/oxlint")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".oxsup.yaml")
	content := `oxlint:
  path: ${OXLINT_BIN}
policy:
  path: ${OXSUP_POLICY:-fallback.rego}
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/custom/oxlint", cfg.Oxlint.Path)
	assert.Equal(t, "fallback.rego", cfg.Policy.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".oxsup.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: [not, closed"), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "version defaults to 1",
			cfg:  Config{},
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 2},
			wantErr: true,
		},
		{
			name:    "empty banned path entry",
			cfg:     Config{Version: 1, BannedPaths: []string{"node_modules", ""}},
			wantErr: true,
		},
		{
			name:    "banned path with separator",
			cfg:     Config{Version: 1, BannedPaths: []string{"a/b"}},
			wantErr: true,
		},
		{
			name: "valid banned paths",
			cfg:  Config{Version: 1, BannedPaths: []string{"node_modules", "dist"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
