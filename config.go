package viewkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/viewkit/internal/logging"
	"github.com/agiangrant/viewkit/retained"
)

// ConfigFileName is the file LoadConfig looks for when no path is given.
const ConfigFileName = "viewkit.toml"

// Config represents the viewkit.toml configuration file
type Config struct {
	Engine retained.Config `toml:"engine"`
	Log    LogConfig       `toml:"log"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level"`
	// text or json
	Format string `toml:"format"`
	// File receives log output instead of stderr when set
	File string `toml:"file,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Engine: retained.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Validate checks the engine section and the log format.
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", logging.FormatText, logging.FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: log format %q", retained.ErrInvalidConfig, c.Log.Format)
}

// LoadConfig loads the configuration from path, or from viewkit.toml in the
// current directory when path is empty. A missing default file yields
// DefaultConfig; a missing explicit path is an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	config, err = ParseConfig(bytes.NewReader(data))
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// ParseConfig decodes TOML on top of DefaultConfig. Unknown keys are
// rejected.
func ParseConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return config, fmt.Errorf("%w: %s", retained.ErrInvalidConfig, strict.String())
		}
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// SaveConfig writes config as TOML to path.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FindConfig walks up from dir looking for viewkit.toml, falling back to the
// directory holding go.mod. It returns "" when neither is found.
func FindConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
