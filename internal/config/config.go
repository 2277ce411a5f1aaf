// Package config defines all configuration structures for mt-nir.  No I/O or
// parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ChempropConfig holds the parameters of the external chemprop invocation.
type ChempropConfig struct {
	// Binary is the chemprop executable name or path.
	Binary string `mapstructure:"binary"`

	// ModelsPath is the trained-ensemble checkpoint directory passed to
	// --model-paths.  Validated to exist at predictor construction.
	ModelsPath string `mapstructure:"models_path"`

	// FeaturizerMode is passed to --multi-hot-atom-featurizer-mode.
	FeaturizerMode string `mapstructure:"featurizer_mode"`

	// Devices is passed to --devices.
	Devices int `mapstructure:"devices"`

	// BatchSize is passed to --batch-size.
	BatchSize int `mapstructure:"batch_size"`

	// WorkDir is where temporary input/output artifacts are created.
	// Empty means the operating system default temp directory.
	WorkDir string `mapstructure:"work_dir"`

	// Timeout bounds a single chemprop invocation.  Zero means no timeout;
	// when exceeded the subprocess is killed and the prediction degrades to
	// the sentinel vector.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds HTTP server tunables for serve mode.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig holds the optional redis prediction-cache parameters.
type CacheConfig struct {
	// Enabled turns the cache on.  When false every prediction invokes the
	// external tool.
	Enabled bool `mapstructure:"enabled"`

	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the whole tool.
type Config struct {
	Chemprop ChempropConfig    `mapstructure:"chemprop"`
	Server   ServerConfig      `mapstructure:"server"`
	Cache    CacheConfig       `mapstructure:"cache"`
	Log      logging.LogConfig `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.  Any
// error is fatal; callers must refuse to start.
func (c *Config) Validate() error {
	if c.Chemprop.Binary == "" {
		return fmt.Errorf("config: chemprop.binary is required")
	}
	if c.Chemprop.ModelsPath == "" {
		return fmt.Errorf("config: chemprop.models_path is required")
	}
	if c.Chemprop.FeaturizerMode == "" {
		return fmt.Errorf("config: chemprop.featurizer_mode is required")
	}
	if c.Chemprop.Devices < 1 {
		return fmt.Errorf("config: chemprop.devices must be >= 1, got %d", c.Chemprop.Devices)
	}
	if c.Chemprop.BatchSize < 1 {
		return fmt.Errorf("config: chemprop.batch_size must be >= 1, got %d", c.Chemprop.BatchSize)
	}
	if c.Chemprop.Timeout < 0 {
		return fmt.Errorf("config: chemprop.timeout must be >= 0, got %s", c.Chemprop.Timeout)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("config: cache.addr is required when cache.enabled is true")
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("config: cache.db must be >= 0, got %d", c.Cache.DB)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
