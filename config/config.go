// Package config loads the dmrlink YAML configuration.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/op/go-logging"
	"github.com/pd0mz/dmrlink/alias"
	"github.com/pd0mz/dmrlink/ipsc"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "INFO"

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Config is the top level configuration document.
type Config struct {
	Log Log `yaml:"log"`

	// Metrics is the listen address of the Prometheus endpoint, disabled if
	// empty.
	Metrics string `yaml:"metrics"`

	// Report enables the periodic status tables.
	Report bool `yaml:"report"`

	Aliases  alias.Files              `yaml:"aliases"`
	Networks map[string]*ipsc.Network `yaml:"networks"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var c = new(Config)
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate applies defaults and checks every enabled network.
func (c *Config) Validate() error {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if _, err := logging.LogLevel(strings.ToUpper(c.Log.Level)); err != nil {
		return errors.Wrapf(err, "log level %q", c.Log.Level)
	}
	if _, err := alias.ParseEncoding(c.Aliases.Encoding); err != nil {
		return err
	}

	enabled := c.Enabled()
	if len(enabled) == 0 {
		return errors.New("no enabled networks configured")
	}
	for _, name := range enabled {
		if err := c.Networks[name].Validate(); err != nil {
			return errors.Wrapf(err, "network %s", name)
		}
	}
	return nil
}

// Enabled returns the names of the enabled networks, sorted.
func (c *Config) Enabled() []string {
	var names []string
	for name, network := range c.Networks {
		if network != nil && !network.Disabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
