package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all tool settings.
const envPrefix = "MTNIR"

// newViper builds a pre-configured viper instance: YAML file type, MTNIR_ env
// prefix, automatic env binding, and a key replacer that maps "." to "_" so
// that nested keys like "chemprop.models_path" resolve to
// MTNIR_CHEMPROP_MODELS_PATH.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every config key with its default so that viper
// resolves it during Unmarshal.  AutomaticEnv only consults the environment
// for keys viper already knows about; without this registration, MTNIR_*
// overrides for keys absent from the config file would be dropped.
func registerKeys(v *viper.Viper) {
	v.SetDefault("chemprop.binary", DefaultChempropBinary)
	v.SetDefault("chemprop.models_path", DefaultModelsPath)
	v.SetDefault("chemprop.featurizer_mode", DefaultFeaturizerMode)
	v.SetDefault("chemprop.devices", DefaultDevices)
	v.SetDefault("chemprop.batch_size", DefaultBatchSize)
	v.SetDefault("chemprop.work_dir", "")
	v.SetDefault("chemprop.timeout", time.Duration(0))

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", DefaultCacheAddr)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.key_prefix", DefaultCacheKeyPrefix)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{})
}

// Load reads the YAML file at configPath, merges MTNIR_* environment variable
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MTNIR_* environment variables
// with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
