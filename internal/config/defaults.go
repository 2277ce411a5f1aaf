package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultChempropBinary = "chemprop"

	// DefaultModelsPath is the checkpoint layout produced by the ensemble
	// training run this tool ships against.
	DefaultModelsPath = "./exp_results/03232025_split/checkpoints/chemprop_weights_RIGR_ensemble_03232025/fold_0"

	DefaultFeaturizerMode = "RIGR"
	DefaultDevices        = 1
	DefaultBatchSize      = 1

	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultServerReadTimeout = 30 * time.Second

	// Predictions block on a subprocess; writes get generous headroom.
	DefaultServerWriteTimeout    = 5 * time.Minute
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultCacheAddr      = "localhost:6379"
	DefaultCacheTTL       = 24 * time.Hour
	DefaultCacheKeyPrefix = "mtnir"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// ApplyDefaults fills every zero-value field in cfg with the tool default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate so that optional-but-defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Chemprop ──────────────────────────────────────────────────────────────
	if cfg.Chemprop.Binary == "" {
		cfg.Chemprop.Binary = DefaultChempropBinary
	}
	if cfg.Chemprop.ModelsPath == "" {
		cfg.Chemprop.ModelsPath = DefaultModelsPath
	}
	if cfg.Chemprop.FeaturizerMode == "" {
		cfg.Chemprop.FeaturizerMode = DefaultFeaturizerMode
	}
	if cfg.Chemprop.Devices == 0 {
		cfg.Chemprop.Devices = DefaultDevices
	}
	if cfg.Chemprop.BatchSize == 0 {
		cfg.Chemprop.BatchSize = DefaultBatchSize
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Addr == "" {
		cfg.Cache.Addr = DefaultCacheAddr
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCacheKeyPrefix
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// NewDefaultConfig returns a Config populated entirely from defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
