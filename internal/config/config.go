package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Gate    *GateConfig    `yaml:"gate" json:"gate" toml:"gate"`
		Runner  *RunnerConfig  `yaml:"runner" json:"runner" toml:"runner"`
		Journal *JournalConfig `yaml:"journal" json:"journal" toml:"journal"`
		Logging *LoggingConfig `yaml:"logging" json:"logging" toml:"logging"`
	}

	GateConfig struct {
		Capacity int `yaml:"capacity" json:"capacity" toml:"capacity"`
	}

	RunnerConfig struct {
		Compression    string        `yaml:"compression" json:"compression" toml:"compression"`
		DefaultTimeout time.Duration `yaml:"default_timeout" json:"default_timeout" toml:"default_timeout"`
	}

	JournalConfig struct {
		Path string `yaml:"path" json:"path" toml:"path"`
	}

	LoggingConfig struct {
		Level  string `yaml:"level" json:"level" toml:"level"`
		Output string `yaml:"output" json:"output" toml:"output"`
	}

	TasksConfig struct {
		Tasks []TaskConfig `yaml:"tasks" json:"tasks" toml:"tasks"`
	}

	TaskConfig struct {
		Name    string        `yaml:"name" json:"name" toml:"name"`
		Command string        `yaml:"command" json:"command" toml:"command"`
		Args    []string      `yaml:"args" json:"args" toml:"args"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
	}
)

var ErrEmptyTasks = errors.New("tasks file contains no tasks")

// GetConfig - reads the config at path, falling back to defaults when the file is missing.
func GetConfig(path string) (Config, error) {
	configContent, err := GetConfigReader(path)
	if err != nil {
		return Config{}, err
	}

	if isTOML(path) {
		return parse[Config](configContent, tomlParser[Config], yamlParser[Config])
	}

	return ParseConfig(configContent)
}

// ParseConfig - decodes YAML, then JSON, then TOML until one of them succeeds.
func ParseConfig(input io.ReadCloser) (Config, error) {
	return parse[Config](input, yamlParser[Config], jsonParser[Config], tomlParser[Config])
}

// GetTasks - reads the list of tasks to run from path.
func GetTasks(path string) ([]TaskConfig, error) {
	input, err := openFile(path)
	if err != nil {
		return nil, err
	}

	var cfg TasksConfig
	if isTOML(path) {
		cfg, err = parse[TasksConfig](input, tomlParser[TasksConfig])
	} else {
		cfg, err = ParseTasks(input)
	}
	if err != nil {
		return nil, err
	}

	if len(cfg.Tasks) == 0 {
		return nil, ErrEmptyTasks
	}

	return cfg.Tasks, nil
}

// ParseTasks - decodes a tasks document with the same parser chain as ParseConfig.
// Besides a "tasks" section, YAML and JSON documents may be a bare list of tasks.
func ParseTasks(input io.ReadCloser) (TasksConfig, error) {
	return parse[TasksConfig](input,
		yamlParser[TasksConfig], taskListParser(yamlParser[[]TaskConfig]),
		jsonParser[TasksConfig], taskListParser(jsonParser[[]TaskConfig]),
		tomlParser[TasksConfig],
	)
}

func taskListParser(parser func([]byte, *[]TaskConfig) error) func([]byte, *TasksConfig) error {
	return func(input []byte, cfg *TasksConfig) error {
		return parser(input, &cfg.Tasks)
	}
}

func parse[T any](input io.ReadCloser, parsers ...func([]byte, *T) error) (T, error) {
	defer input.Close()

	var (
		cfg      T
		parseErr strings.Builder
	)

	content, err := io.ReadAll(input)
	if err != nil {
		return cfg, fmt.Errorf("cant read config: %w", err)
	}

	for _, parser := range parsers {
		var candidate T
		if err = parser(content, &candidate); err == nil {
			return candidate, nil
		}
		_, _ = parseErr.WriteString(fmt.Sprintf("Error parsing config: %s\n", err.Error()))
	}

	return cfg, errors.New(parseErr.String())
}

func yamlParser[T any](input []byte, config *T) error {
	decoder := yaml.NewDecoder(bytes.NewReader(input))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode yaml config: %w", err)
	}

	return nil
}

func jsonParser[T any](input []byte, config *T) error {
	decoder := json.NewDecoder(bytes.NewReader(input))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		return fmt.Errorf("cant decode json config: %w", err)
	}

	return nil
}

func tomlParser[T any](input []byte, config *T) error {
	meta, err := toml.Decode(string(input), config)
	if err != nil {
		return fmt.Errorf("cant decode toml config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("cant decode toml config: unknown keys %v", undecoded)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
