// Package config loads userconf settings from the environment and command-line flags.
//
// Environment variables are read first with caarlos0/env; flags registered on
// the subcommand's FlagSet then override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	userconfig "github.com/reoring/userconfig"
	"github.com/reoring/userconfig/source/gojson"
)

// Driver names accepted by -driver / USERCONF_DRIVER.
const (
	DriverStd    = "encoding/json"
	DriverGoJSON = "go-json"
)

var (
	ErrUnknownDriver   = errors.New("unknown JSON driver")
	ErrUnknownSeverity = errors.New("unknown duplicate-key severity")
	ErrNegativeLimit   = errors.New("limits must not be negative")
)

// Config holds settings shared by all userconf subcommands.
type Config struct {
	Driver        string `env:"USERCONF_DRIVER" envDefault:"encoding/json"`
	MaxDepth      int    `env:"USERCONF_MAX_DEPTH"`
	MaxBytes      int64  `env:"USERCONF_MAX_BYTES"`
	DuplicateKeys string `env:"USERCONF_DUPLICATE_KEYS" envDefault:"ignore"`
	LogLevel      string `env:"USERCONF_LOG_LEVEL" envDefault:"info"`
}

// Load reads the environment, registers the shared flags on fs with the
// environment values as defaults, parses args and validates the result.
// Flags the caller registered on fs before calling Load are parsed too.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	cfg.bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

func (c *Config) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Driver, "driver", c.Driver, "JSON driver: encoding/json or go-json")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&c.MaxBytes, "max-bytes", c.MaxBytes, "maximum input size in bytes (0 = unlimited)")
	fs.StringVar(&c.DuplicateKeys, "duplicate-keys", c.DuplicateKeys, "duplicate key handling: ignore, warn or error")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Validate normalizes names and rejects unknown values.
func (c *Config) Validate() error {
	c.Driver = strings.TrimSpace(c.Driver)
	switch c.Driver {
	case "", DriverStd:
		c.Driver = DriverStd
	case DriverGoJSON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	if _, err := c.severity(); err != nil {
		return err
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return ErrNegativeLimit
	}
	return nil
}

// ParseOpt projects the settings onto library parse options.
func (c *Config) ParseOpt() userconfig.ParseOpt {
	sev, _ := c.severity()
	return userconfig.ParseOpt{
		Strictness: userconfig.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.MaxDepth,
		MaxBytes:   c.MaxBytes,
	}
}

// JSONDriver returns the driver named by Driver. It does not touch the
// package-wide driver in userconfig.
func (c *Config) JSONDriver() userconfig.JSONDriver {
	if c.Driver == DriverGoJSON {
		return gojson.Driver()
	}
	return userconfig.DefaultJSONDriver()
}

func (c *Config) severity() (userconfig.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(c.DuplicateKeys)) {
	case "", "ignore":
		return userconfig.Ignore, nil
	case "warn":
		return userconfig.Warn, nil
	case "error":
		return userconfig.Error, nil
	default:
		return userconfig.Ignore, fmt.Errorf("%w: %q", ErrUnknownSeverity, c.DuplicateKeys)
	}
}
