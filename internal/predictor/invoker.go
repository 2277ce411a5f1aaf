package predictor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
)

// Invoker executes exactly one external-tool invocation per call and returns
// its raw tabular output, isolating all filesystem and process concerns from
// the Predictor above it.
type Invoker interface {
	Run(ctx context.Context, modelsPath, smiles string) (*RawTable, error)
}

// chempropInvoker shells out to the chemprop CLI.  Each call owns a fresh,
// uniquely-named pair of temp artifacts, so concurrent calls never share
// mutable state; any serialization happens inside chemprop itself (device
// access) and is outside this layer's guarantees.
type chempropInvoker struct {
	cfg    config.ChempropConfig
	logger logging.Logger
}

// NewChempropInvoker builds the chemprop-backed Invoker.
func NewChempropInvoker(cfg config.ChempropConfig, logger logging.Logger) Invoker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &chempropInvoker{cfg: cfg, logger: logger.Named("invoker")}
}

// Run writes a one-row input table for smiles, invokes chemprop predict with
// the fixed argument set, and parses the predictions file it wrote.  Both
// temp artifacts are deleted before Run returns, success or failure; cleanup
// problems are logged and never mask the primary outcome.
//
// Failure modes:
//   - ErrCodeArtifactIO      — temp file creation or read failed
//   - ErrCodeExternalTool    — chemprop exited nonzero (single attempt, no
//     retry; Detail carries captured stdout/stderr)
//   - ErrCodeEmptyOutput     — predictions file missing or zero-size
//   - ErrCodeMalformedOutput — predictions file not parseable as CSV
func (iv *chempropInvoker) Run(ctx context.Context, modelsPath, smiles string) (*RawTable, error) {
	workDir := iv.cfg.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}

	id := uuid.NewString()
	inputPath := filepath.Join(workDir, "mtnir_input_"+id+".csv")
	outputPath := filepath.Join(workDir, "mtnir_preds_"+id+".csv")

	// The SMILES value goes in verbatim: no quoting or escaping beyond plain
	// text, matching what chemprop expects for a single-column table.
	if err := os.WriteFile(inputPath, []byte("smiles\n"+smiles), 0o600); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeArtifactIO, "creating temp input table")
	}
	defer iv.cleanup(inputPath)

	// Reserve the output path so the cleanup invariant covers it even when
	// chemprop never writes a byte.
	if err := os.WriteFile(outputPath, nil, 0o600); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeArtifactIO, "creating temp output table")
	}
	defer iv.cleanup(outputPath)

	if iv.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, iv.cfg.Timeout)
		defer cancel()
	}

	args := []string{
		"predict",
		"--test-path", inputPath,
		"--model-paths", modelsPath,
		"--multi-hot-atom-featurizer-mode", iv.cfg.FeaturizerMode,
		"--devices", strconv.Itoa(iv.cfg.Devices),
		"--batch-size", strconv.Itoa(iv.cfg.BatchSize),
		"--preds-path", outputPath,
	}

	iv.logger.Debug("invoking external tool",
		logging.String("binary", iv.cfg.Binary),
		logging.String("models_path", modelsPath),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, iv.cfg.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		iv.logger.Error("external tool failed",
			logging.Err(runErr),
			logging.Duration("elapsed", elapsed),
			logging.String("stdout", stdout.String()),
			logging.String("stderr", stderr.String()),
		)
		detail := fmt.Sprintf("stdout: %s\nstderr: %s", stdout.String(), stderr.String())
		return nil, apperrors.Wrap(runErr, apperrors.ErrCodeExternalTool, "chemprop prediction failed").WithDetail(detail)
	}

	info, statErr := os.Stat(outputPath)
	if statErr != nil || info.Size() == 0 {
		iv.logger.Error("external tool produced empty output file",
			logging.String("path", outputPath),
		)
		return nil, apperrors.New(apperrors.ErrCodeEmptyOutput, "chemprop produced empty output file")
	}

	f, err := os.Open(outputPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeArtifactIO, "opening predictions file")
	}
	defer f.Close()

	table, err := ParseCSVTable(f)
	if err != nil {
		return nil, err
	}

	iv.logger.Debug("external tool succeeded",
		logging.Duration("elapsed", elapsed),
		logging.Int("columns", len(table.Header)),
	)
	return table, nil
}

// cleanup removes a temp artifact.  Best-effort: a deletion failure is logged
// and never escalated, so it can neither mask a tool failure nor replace a
// successful result.
func (iv *chempropInvoker) cleanup(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		iv.logger.Warn("failed to remove temp artifact",
			logging.String("path", path),
			logging.Err(err),
		)
	}
}
