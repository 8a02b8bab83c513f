package app

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	contracts "github.com/djrtwo/simple-contracts"
	"github.com/djrtwo/simple-contracts/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config holds the node settings that are not part of the genesis.
type Config struct {
	ChainID          string `toml:"ChainID"`
	Debug            bool   `toml:"Debug"`
	LogLevel         string `toml:"LogLevel"`
	MetricsNamespace string `toml:"MetricsNamespace"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		ChainID:          "escrow-local",
		LogLevel:         "info",
		MetricsNamespace: "escrow",
	}
}

// LoadConfig reads the TOML file at path. Values missing from the file keep
// their defaults. A missing file results in the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes TOML content on top of the defaults.
func ParseConfig(raw string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "config: %s", err)
	}
	return cfg, cfg.Validate()
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if !contracts.IsValidChainID(c.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", c.ChainID)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return nil
}

// WriteConfig serializes the configuration as TOML.
func WriteConfig(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}

// Logger returns a logger writing to w and filtered by the configured level.
func (c Config) Logger(w io.Writer) (log.Logger, error) {
	option, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), option), nil
}
