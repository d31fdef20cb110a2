// Package config loads schemactl settings from YAML files. Command line
// flags are applied on top of the loaded values by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/logging"
	"schemacore/pkg/primitives"
)

const (
	DefaultOperatorCacheSize = 256
	DefaultParallelism       = 4
)

// Config is the root of a schemactl configuration file.
type Config struct {
	Logging  logging.Config `yaml:"logging"`
	Emission Emission       `yaml:"emission"`
	Metrics  Metrics        `yaml:"metrics"`
}

// Emission holds the defaults of an emission pass.
type Emission struct {
	Mode              string   `yaml:"mode"`
	Libraries         []string `yaml:"libraries"`
	Requested         []string `yaml:"requested"`
	IncludeSystem     bool     `yaml:"includeSystem"`
	IncludeGenerated  bool     `yaml:"includeGenerated"`
	IncludeDependents bool     `yaml:"includeDependents"`

	// Parallelism bounds the number of library passes run at once.
	Parallelism       int `yaml:"parallelism"`
	OperatorCacheSize int `yaml:"operatorCacheSize"`
}

// Metrics configures the optional textfile export of emission counters.
type Metrics struct {
	TextfilePath string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: logging.Config{
			Level:  logging.LevelWarn,
			Format: "text",
		},
		Emission: Emission{
			Mode:              primitives.ForCopy.String(),
			Parallelism:       DefaultParallelism,
			OperatorCacheSize: DefaultOperatorCacheSize,
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, schemaerr.Wrap(err, schemaerr.CodeInvalidConfig, "Load", "config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, schemaerr.InvalidConfig("document", err.Error()).In("Parse", "config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes the configuration and checks every value.
func (c *Config) Validate() error {
	level, err := logging.ParseLevel(string(c.Logging.Level))
	if err != nil {
		return schemaerr.InvalidConfig("logging.level", err.Error()).In("Validate", "config")
	}
	c.Logging.Level = level

	switch strings.ToLower(c.Logging.Format) {
	case "":
		c.Logging.Format = "text"
	case "text", "json":
		c.Logging.Format = strings.ToLower(c.Logging.Format)
	default:
		return schemaerr.InvalidConfig("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format)).In("Validate", "config")
	}

	if _, err := primitives.ParseEmitMode(c.Emission.Mode); err != nil {
		return schemaerr.InvalidConfig("emission.mode", err.Error()).In("Validate", "config")
	}
	if c.Emission.Parallelism <= 0 {
		return schemaerr.InvalidConfig("emission.parallelism", "must be positive").In("Validate", "config")
	}
	if c.Emission.OperatorCacheSize <= 0 {
		return schemaerr.InvalidConfig("emission.operatorCacheSize", "must be positive").In("Validate", "config")
	}
	for _, lib := range c.Emission.Libraries {
		if strings.TrimSpace(lib) == "" {
			return schemaerr.InvalidConfig("emission.libraries", "library names cannot be empty").In("Validate", "config")
		}
	}
	return nil
}

// EmitMode returns the parsed emission mode. It is only meaningful after
// Validate succeeded.
func (c *Config) EmitMode() primitives.EmitMode {
	mode, _ := primitives.ParseEmitMode(c.Emission.Mode)
	return mode
}
