package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/l0nax/go-spew/spew"
	yml "gopkg.in/yaml.v2"

	"github.com/cgxeiji/adcpi"
)

// EnvPrefix prefixes the environment variables overriding the config file,
// e.g. ADCPI_GAIN=4.
const EnvPrefix = "ADCPI_"

// Config is the configuration of the command.
type Config struct {
	// Transport is "periph" or "smbus".
	Transport string `koanf:"transport" yaml:"transport"`
	// Bus is the periph bus name ("" for the first bus) or the SMBus number.
	// "detect" picks the SMBus number from the board revision.
	Bus string `koanf:"bus" yaml:"bus"`

	AddressA     uint8         `koanf:"address_a" yaml:"address_a"`
	AddressB     uint8         `koanf:"address_b" yaml:"address_b"`
	Resolution   int           `koanf:"resolution" yaml:"resolution"`
	Gain         int           `koanf:"gain" yaml:"gain"`
	Differential bool          `koanf:"differential" yaml:"differential"`
	MaxRetries   int           `koanf:"max_retries" yaml:"max_retries"`
	PollInterval time.Duration `koanf:"poll_interval" yaml:"poll_interval"`

	// Addr is the listen address of serve.
	Addr string `koanf:"addr" yaml:"addr"`
	// Rate is the number of readings per second of watch.
	Rate float64 `koanf:"rate" yaml:"rate"`
	// Window is the number of readings kept per channel by watch.
	Window int `koanf:"window" yaml:"window"`
}

func defaultConfig() Config {
	return Config{
		Transport:  "periph",
		AddressA:   adcpi.DefaultAddrA,
		AddressB:   adcpi.DefaultAddrB,
		Resolution: 18,
		Gain:       1,
		MaxRetries: adcpi.DefaultMaxRetries,
		Addr:       ":8000",
		Rate:       2,
		Window:     16,
	}
}

// loadConfig layers the defaults, the YAML file at path and the environment.
// A missing file is not an error.
func loadConfig(k *koanf.Koanf, path string) (Config, error) {
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("could not load defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load %s: %w", path, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("could not load environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) validate() error {
	switch c.Transport {
	case "periph", "smbus":
	default:
		return fmt.Errorf("%w: transport %q, it should be periph or smbus", adcpi.ErrInvalidArgument, c.Transport)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("%w: rate %v, it should be positive", adcpi.ErrInvalidArgument, c.Rate)
	}
	return nil
}

// options returns the device options described by c.
func (c Config) options() []adcpi.Option {
	return []adcpi.Option{
		adcpi.Addresses(c.AddressA, c.AddressB),
		adcpi.Resolution(c.Resolution),
		adcpi.Gain(c.Gain),
		adcpi.MaxRetries(c.MaxRetries),
		adcpi.PollInterval(c.PollInterval),
	}
}

func writeConfig(w io.Writer, c Config) error {
	return yml.NewEncoder(w).Encode(c)
}

func dumpConfig(w io.Writer, c Config) {
	cs := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	cs.Fdump(w, c)
}
