package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const defaultConfigYaml = `gate:
  capacity: 4
runner:
  compression: "zstd"
  default_timeout: 10m
logging:
  level: "info"
  output: ""
`

// GetConfigReader - opens the config at path, or returns the built-in defaults when it does not exist.
func GetConfigReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}

	var bb bytes.Buffer
	if _, err = bb.WriteString(defaultConfigYaml); err != nil {
		return nil, err
	}

	return io.NopCloser(&bb), nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}

	return f, nil
}
