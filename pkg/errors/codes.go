package errors

// ErrorCode is a string identifier for a specific failure category.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal   ErrorCode = "COMMON_001"
	ErrCodeBadRequest ErrorCode = "COMMON_002"
	ErrCodeNotFound   ErrorCode = "COMMON_003"
	ErrCodeValidation ErrorCode = "COMMON_004"
	ErrCodeConfig     ErrorCode = "COMMON_005"
	ErrCodeCacheError ErrorCode = "COMMON_006"
)

// Prediction module error codes.
const (
	// ErrCodeInvalidModelPath means the configured checkpoint directory does
	// not exist.  Raised at predictor construction only; always fatal.
	ErrCodeInvalidModelPath ErrorCode = "PRED_001"

	// ErrCodeExternalTool means the chemprop subprocess exited nonzero.  The
	// error Detail carries the captured stdout/stderr for diagnostics.
	ErrCodeExternalTool ErrorCode = "PRED_002"

	// ErrCodeEmptyOutput means the predictions file was missing or zero-size
	// after a nominally successful invocation.
	ErrCodeEmptyOutput ErrorCode = "PRED_003"

	// ErrCodeMalformedOutput means the predictions file held no parseable
	// numeric columns.
	ErrCodeMalformedOutput ErrorCode = "PRED_004"

	// ErrCodeArtifactIO means a temporary input or output artifact could not
	// be created or read.
	ErrCodeArtifactIO ErrorCode = "PRED_005"
)
