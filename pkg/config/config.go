package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raycoarana/wiremock/pkg/stub"
)

// Default configuration values.
const (
	DefaultPort            = 8080
	DefaultJournalCapacity = 1000
)

// Config is the server configuration, loadable from a YAML file.
type Config struct {
	// Port is the TCP port the stub server listens on.
	Port int `yaml:"port"`

	// DisableRequestLogging suppresses request logging for the stub serving
	// handler.
	DisableRequestLogging bool `yaml:"disableRequestLogging"`

	// JournalCapacity bounds the in-memory request journal.
	JournalCapacity int `yaml:"journalCapacity"`

	// MappingsDir is the directory stub mapping files are loaded from.
	MappingsDir string `yaml:"mappingsDir"`

	// LogLevel is the minimum operational log level (debug, info, warn,
	// error).
	LogLevel string `yaml:"logLevel"`

	// LogFormat is the operational log format (text, json).
	LogFormat string `yaml:"logFormat"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		JournalCapacity: DefaultJournalCapacity,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads a YAML configuration file, applying defaults for omitted
// fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.JournalCapacity == 0 {
		cfg.JournalCapacity = DefaultJournalCapacity
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.JournalCapacity < 1 {
		return fmt.Errorf("journalCapacity must be positive, got %d", c.JournalCapacity)
	}
	return nil
}

// mappingFile is the on-disk shape of a stub mapping file: either a single
// mapping or a list under the mappings key.
type mappingFile struct {
	Mappings []*stub.Mapping `yaml:"mappings"`
}

// LoadMappings reads all stub mapping files (*.yaml, *.yml) from dir,
// sorted by filename for deterministic ordering. A missing directory yields
// no mappings and no error.
func LoadMappings(dir string) ([]*stub.Mapping, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read mappings dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var mappings []*stub.Mapping
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := loadMappingFile(path)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, loaded...)
	}
	return mappings, nil
}

func loadMappingFile(path string) ([]*stub.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}

	mappings := file.Mappings
	if len(mappings) == 0 {
		// Fall back to a single top-level mapping.
		var single stub.Mapping
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
		}
		if single.Request.Method == "" && single.Request.Path == "" {
			return nil, nil
		}
		mappings = []*stub.Mapping{&single}
	}

	for _, m := range mappings {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("mapping file %s: %w", path, err)
		}
	}
	return mappings, nil
}
