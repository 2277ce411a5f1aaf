package predictor

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/internal/infrastructure/cache"
	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	"github.com/jdsanc/mt-nir/internal/infrastructure/metrics"
	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// ChempropPredictor is the external-tool-backed Predictor.  It owns the
// models path for its lifetime (validated once at construction, never
// re-checked per call) and delegates each prediction to an Invoker.
type ChempropPredictor struct {
	modelsPath string
	invoker    Invoker
	cache      cache.PredictionCache
	metrics    *metrics.Metrics
	logger     logging.Logger
}

// Option customises a ChempropPredictor.
type Option func(*ChempropPredictor)

// WithInvoker replaces the default chemprop invoker.  Used by tests and by
// any future in-process backend.
func WithInvoker(iv Invoker) Option {
	return func(p *ChempropPredictor) { p.invoker = iv }
}

// WithCache attaches a prediction cache consulted before each invocation.
func WithCache(c cache.PredictionCache) Option {
	return func(p *ChempropPredictor) { p.cache = c }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *ChempropPredictor) { p.metrics = m }
}

// NewChempropPredictor validates that cfg.ModelsPath exists and builds the
// predictor.  A nonexistent path is the one fatal failure in this package:
// everything after construction degrades to sentinel vectors instead of
// erroring.  When the path is missing, the parent directory is listed at
// debug level as a best-effort aid for diagnosing mis-mounted checkpoints.
func NewChempropPredictor(cfg config.ChempropConfig, logger logging.Logger, opts ...Option) (*ChempropPredictor, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("predictor")

	logParentDir(cfg.ModelsPath, logger)

	if _, err := os.Stat(cfg.ModelsPath); err != nil {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidModelPath,
			"model path %s does not exist", cfg.ModelsPath)
	}

	p := &ChempropPredictor{
		modelsPath: cfg.ModelsPath,
		invoker:    NewChempropInvoker(cfg, logger),
		cache:      cache.NewNop(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	logger.Info("initialized chemprop predictor", logging.String("models_path", cfg.ModelsPath))
	return p, nil
}

// Predict predicts properties for each SMILES string sequentially, in input
// order.
func (p *ChempropPredictor) Predict(ctx context.Context, smiles []string) []photoprop.Vector {
	return predictSequential(ctx, p, smiles)
}

// PredictSingle predicts the property vector for one SMILES string.  It never
// returns fewer than photoprop.PropertyCount values and never propagates an
// error: any failure along the artifact → subprocess → parse → normalize path
// is logged and collapsed to the sentinel vector.
func (p *ChempropPredictor) PredictSingle(ctx context.Context, smiles string) photoprop.Vector {
	log := p.logger.With(logging.String("smiles", truncate(smiles, 20)))
	log.Debug("predicting properties")

	if v, ok := p.cacheGet(ctx, smiles, log); ok {
		p.metrics.RecordCacheHit()
		p.metrics.RecordPrediction(metrics.OutcomeCached)
		return v
	}

	start := time.Now()
	table, err := p.invoker.Run(ctx, p.modelsPath, smiles)
	p.metrics.RecordToolDuration(time.Since(start))
	if err != nil {
		log.Error("prediction failed", logging.Err(err))
		p.metrics.RecordPrediction(metrics.OutcomeSentinel)
		return photoprop.Sentinel()
	}

	values := table.NumericFirstRow()
	if len(values) == 0 {
		log.Warn("no numeric predictions found in output")
		p.metrics.RecordPrediction(metrics.OutcomeSentinel)
		return photoprop.Sentinel()
	}

	result := photoprop.Vector(values).PadToMin()
	log.Info("predicted properties",
		logging.Float64("wavelength_nm", result.Wavelength()),
		logging.Float64("extinction_log", result.Extinction()),
		logging.Float64("quantum_yield", result.QuantumYield()),
	)

	p.cachePut(ctx, smiles, result, log)
	p.metrics.RecordPrediction(metrics.OutcomeSuccess)
	return result
}

// cacheGet consults the cache; infrastructure errors degrade to a miss.
func (p *ChempropPredictor) cacheGet(ctx context.Context, smiles string, log logging.Logger) (photoprop.Vector, bool) {
	v, ok, err := p.cache.Get(ctx, p.modelsPath, smiles)
	if err != nil {
		log.Warn("cache lookup failed", logging.Err(err))
		return nil, false
	}
	if ok {
		log.Debug("cache hit")
	}
	return v, ok
}

// cachePut stores a finished prediction.  Vectors with non-finite positions
// (sentinels, padded partial results) are never cached: the failure may be
// transient and must not be replayed from the cache.
func (p *ChempropPredictor) cachePut(ctx context.Context, smiles string, v photoprop.Vector, log logging.Logger) {
	for _, f := range v {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return
		}
	}
	if err := p.cache.Put(ctx, p.modelsPath, smiles, v); err != nil {
		log.Warn("cache store failed", logging.Err(err))
	}
}

// logParentDir logs the existence and contents of the models path's parent
// directory.  Diagnostic only; errors here never affect construction.
func logParentDir(modelsPath string, logger logging.Logger) {
	parent := filepath.Dir(modelsPath)
	if parent == "" || parent == "." {
		return
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		logger.Debug("parent directory not readable",
			logging.String("parent", parent),
			logging.Err(err),
		)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	logger.Debug("parent directory contents",
		logging.String("parent", parent),
		logging.Any("entries", names),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
