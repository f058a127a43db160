package config_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neekrasov/gate/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		expected    config.Config
		expectError bool
	}{
		{
			name: "Valid YAML config",
			content: `
gate:
  capacity: 8
runner:
  compression: "gzip"
  default_timeout: 6m
journal:
  path: "/var/lib/gate/journal.db"
logging:
  level: "debug"
  output: "/log"
`,
			expected: config.Config{
				Gate:    &config.GateConfig{Capacity: 8},
				Runner:  &config.RunnerConfig{Compression: "gzip", DefaultTimeout: 6 * time.Minute},
				Journal: &config.JournalConfig{Path: "/var/lib/gate/journal.db"},
				Logging: &config.LoggingConfig{Level: "debug", Output: "/log"},
			},
		},
		{
			name: "Invalid YAML config (Invalid time format)",
			content: `
gate:
  capacity: 8
runner:
  default_timeout: "invalid-time"
`,
			expectError: true,
		},
		{
			name: "Valid JSON config",
			content: `{
				"gate": {"capacity": 3},
				"runner": {"compression": "bzip2", "default_timeout": "360s"},
				"journal": {"path": "journal.db"},
				"logging": {"level": "warn", "output": ""}
			}`,
			expected: config.Config{
				Gate:    &config.GateConfig{Capacity: 3},
				Runner:  &config.RunnerConfig{Compression: "bzip2", DefaultTimeout: 6 * time.Minute},
				Journal: &config.JournalConfig{Path: "journal.db"},
				Logging: &config.LoggingConfig{Level: "warn"},
			},
		},
		{
			name: "Valid TOML config",
			content: `
[gate]
capacity = 5

[logging]
level = "error"
`,
			expected: config.Config{
				Gate:    &config.GateConfig{Capacity: 5},
				Logging: &config.LoggingConfig{Level: "error"},
			},
		},
		{
			name:        "Unknown section",
			content:     "engine:\n  type: in_memory\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.ParseConfig(io.NopCloser(bytes.NewReader([]byte(tt.content))))
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestGetConfig_DefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.GetConfig("/path/to/nonexistent/file.yaml")
	require.NoError(t, err)

	require.NotNil(t, cfg.Gate)
	assert.Equal(t, 4, cfg.Gate.Capacity)
	require.NotNil(t, cfg.Runner)
	assert.Equal(t, "zstd", cfg.Runner.Compression)
	assert.Equal(t, 10*time.Minute, cfg.Runner.DefaultTimeout)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Nil(t, cfg.Journal)
}

func TestGetConfig_DefaultConfigForTOMLPath(t *testing.T) {
	t.Parallel()

	cfg, err := config.GetConfig("/path/to/nonexistent/gate.toml")
	require.NoError(t, err)
	require.NotNil(t, cfg.Gate)
	assert.Equal(t, 4, cfg.Gate.Capacity)
}

func TestGetConfig_TOMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gate.toml")
	content := "[gate]\ncapacity = 7\n\n[journal]\npath = \"runs.db\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.GetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Gate.Capacity)
	assert.Equal(t, "runs.db", cfg.Journal.Path)
}

func TestGetConfig_InvalidFileContent(t *testing.T) {
	t.Parallel()

	tmpFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(`invalid yaml content`)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	_, err = config.GetConfig(tmpFile.Name())
	assert.Error(t, err)
}

func TestGetTasks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name        string
		file        string
		content     string
		expected    []config.TaskConfig
		expectedErr error
		expectError bool
	}{
		{
			name: "yaml tasks",
			file: "tasks.yml",
			content: `
tasks:
  - name: build
    command: go
    args: ["build", "./..."]
    timeout: 2m
  - name: lint
    command: golangci-lint
    args: ["run"]
`,
			expected: []config.TaskConfig{
				{Name: "build", Command: "go", Args: []string{"build", "./..."}, Timeout: 2 * time.Minute},
				{Name: "lint", Command: "golangci-lint", Args: []string{"run"}},
			},
		},
		{
			name:    "json tasks",
			file:    "tasks.json",
			content: `{"tasks": [{"name": "echo", "command": "echo", "args": ["hi"]}]}`,
			expected: []config.TaskConfig{
				{Name: "echo", Command: "echo", Args: []string{"hi"}},
			},
		},
		{
			name:    "toml tasks",
			file:    "tasks.toml",
			content: "[[tasks]]\nname = \"sleep\"\ncommand = \"sleep\"\nargs = [\"1\"]\n",
			expected: []config.TaskConfig{
				{Name: "sleep", Command: "sleep", Args: []string{"1"}},
			},
		},
		{
			name: "yaml bare list",
			file: "list.yml",
			content: `
- name: test
  command: go
  args: ["test", "./..."]
  timeout: 5m
`,
			expected: []config.TaskConfig{
				{Name: "test", Command: "go", Args: []string{"test", "./..."}, Timeout: 5 * time.Minute},
			},
		},
		{
			name:    "json bare list",
			file:    "list.json",
			content: `[{"name": "vet", "command": "go", "args": ["vet"]}]`,
			expected: []config.TaskConfig{
				{Name: "vet", Command: "go", Args: []string{"vet"}},
			},
		},
		{
			name:        "empty bare list",
			file:        "empty-list.yml",
			content:     "[]\n",
			expectedErr: config.ErrEmptyTasks,
		},
		{
			name:        "no tasks",
			file:        "empty.yml",
			content:     "tasks: []\n",
			expectedErr: config.ErrEmptyTasks,
		},
		{
			name:        "missing file",
			file:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, "missing.yml")
			if tt.file != "" {
				path = filepath.Join(dir, tt.file)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			tasks, err := config.GetTasks(path)
			switch {
			case tt.expectedErr != nil:
				require.ErrorIs(t, err, tt.expectedErr)
			case tt.expectError:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, tasks)
			}
		})
	}
}
