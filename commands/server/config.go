package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/custodylabs/custody/errors"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration, relative to the
// config directory under home.
const ConfigFile = "custody.toml"

// defaultLogLevel applies to modules not named in a log filter.
const defaultLogLevel = "info"

// Config holds the settings of a running node. Command line flags take
// precedence over the values read from the file.
type Config struct {
	// Bind is the address the ABCI server listens on.
	Bind string `toml:"bind"`
	// MetricsBind is the address of the prometheus endpoint. Metrics are
	// not collected when empty.
	MetricsBind string `toml:"metrics_bind"`
	// LogLevel is a single level (info) or a list of module filters
	// (main:debug,*:error).
	LogLevel string `toml:"log_level"`
	// Debug returns stack traces with errors.
	Debug bool `toml:"debug"`
	// DBPath is the location of the state database. Relative paths are
	// resolved against home and an empty path keeps state in memory.
	DBPath string `toml:"db_path"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Bind:        "tcp://localhost:26658",
		MetricsBind: "",
		LogLevel:    defaultLogLevel,
		Debug:       false,
		DBPath:      "custody.db",
	}
}

// ConfigPath returns where the configuration for home is stored.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", ConfigFile)
}

// LoadConfig reads the configuration stored under home. A missing file
// gives the defaults. Keys that are not understood are rejected, so a typo
// cannot silently fall back to a default.
func LoadConfig(home string) (Config, error) {
	conf := DefaultConfig()
	path := ConfigPath(home)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	meta, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return conf, errors.Wrapf(errors.ErrInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return conf, conf.Validate()
}

// WriteConfig stores conf under home unless a configuration already
// exists there.
func WriteConfig(home string, conf Config) (bool, error) {
	path := ConfigPath(home)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.Wrap(errors.ErrInput, err.Error())
	}
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, errors.Wrap(errors.ErrInput, err.Error())
	}
	defer fd.Close()
	if err := toml.NewEncoder(fd).Encode(conf); err != nil {
		return false, errors.Wrap(errors.ErrInput, err.Error())
	}
	return true, nil
}

// Validate checks the values that are parsed later.
func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Field("Bind", errors.ErrEmpty, "required")
	}
	if _, err := c.FilterLogger(log.NewNopLogger()); err != nil {
		return err
	}
	return nil
}

// Database returns the full database path for home.
func (c Config) Database(home string) string {
	if c.DBPath == "" || filepath.IsAbs(c.DBPath) {
		return c.DBPath
	}
	return filepath.Join(home, c.DBPath)
}

// FilterLogger applies the configured log level to logger.
func (c Config) FilterLogger(logger log.Logger) (log.Logger, error) {
	filtered, err := tmflags.ParseLogLevel(c.LogLevel, logger, defaultLogLevel)
	if err != nil {
		return nil, errors.Field("LogLevel", errors.ErrInput, "%s", err)
	}
	return filtered, nil
}
