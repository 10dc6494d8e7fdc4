// Package config reads and writes the xqparse tool configuration: the
// grammar dialect plus logging and checking settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

var ErrUnknownFormat = errors.New("unknown config file format")

// Names are the file names searched by Find, in order.
var Names = []string{".xqparse.yaml", ".xqparse.yml", ".xqparse.toml"}

type Config struct {
	dialect.Config `yaml:",inline"`

	Log   LogConfig   `yaml:"log" toml:"log"`
	Check CheckConfig `yaml:"check" toml:"check"`
}

type LogConfig struct {
	// Verbosity follows commonlog: 0 logs notices and worse, 1 adds info,
	// 2 adds debug, negative values quieten.
	Verbosity int `yaml:"verbosity" toml:"verbosity"`
	// File is empty for stderr.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

type CheckConfig struct {
	// Jobs limits parallel parses; 0 uses the number of CPUs.
	Jobs       int      `yaml:"jobs" toml:"jobs"`
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

func Default() Config {
	return Config{Config: dialect.Default()}
}

// Dialect returns the grammar dialect described by c.
func (c Config) Dialect() dialect.Config {
	return c.Config
}

// Find returns the first configuration file from Names present in dir.
func Find(dir string) (string, bool) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads a configuration file. Keys missing from the file keep their
// Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Decode(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("check.jobs must not be negative, got %d", cfg.Check.Jobs)
	}
	return cfg, nil
}

// Encode renders cfg in the format named by ext.
func Encode(cfg Config, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// Write stores cfg at path, choosing the format from the extension. An
// existing file is only replaced when overwrite is set.
func Write(path string, cfg Config, overwrite bool) error {
	data, err := Encode(cfg, filepath.Ext(path))
	if err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Close()
}
