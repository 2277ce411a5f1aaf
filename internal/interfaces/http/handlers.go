package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdsanc/mt-nir/internal/infrastructure/logging"
	"github.com/jdsanc/mt-nir/internal/predictor"
	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// maxBatchSize bounds a single batch request.  Each molecule costs one
// subprocess invocation, so large batches belong in the CSV CLI path, not an
// HTTP request.
const maxBatchSize = 256

// predictionHandler serves the prediction endpoints.
type predictionHandler struct {
	predictor predictor.Predictor
	logger    logging.Logger
}

func newPredictionHandler(p predictor.Predictor, logger logging.Logger) *predictionHandler {
	return &predictionHandler{predictor: p, logger: logger}
}

// ─────────────────────────────────────────────────────────────────────────────
// Request / response types
// ─────────────────────────────────────────────────────────────────────────────

type singleRequest struct {
	SMILES string `json:"smiles" binding:"required"`
}

type batchRequest struct {
	SMILES []string `json:"smiles" binding:"required"`
}

// predictionResult carries one molecule's outcome: the raw vector, the
// rounded display form, and an explicit failed flag derived from the sentinel
// so HTTP clients do not need to compare against -inf themselves.
type predictionResult struct {
	SMILES  string            `json:"smiles"`
	Values  photoprop.Vector  `json:"values"`
	Rounded photoprop.Rounded `json:"rounded"`
	Failed  bool              `json:"failed"`
}

type batchResponse struct {
	Results []predictionResult `json:"results"`
}

func toResult(smiles string, v photoprop.Vector) predictionResult {
	return predictionResult{
		SMILES:  smiles,
		Values:  v,
		Rounded: photoprop.Round(smiles, v),
		Failed:  v.Failed(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// PredictSingle handles POST /api/v1/predictions.
func (h *predictionHandler) PredictSingle(c *gin.Context) {
	var req singleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles is required"})
		return
	}

	v := h.predictor.PredictSingle(c.Request.Context(), req.SMILES)
	c.JSON(http.StatusOK, toResult(req.SMILES, v))
}

// PredictBatch handles POST /api/v1/predictions/batch.  Results mirror the
// request order one-to-one; failed molecules appear in place with
// failed=true rather than aborting the batch.
func (h *predictionHandler) PredictBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles list is required"})
		return
	}
	if len(req.SMILES) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles list must not be empty"})
		return
	}
	if len(req.SMILES) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles list exceeds maximum batch size"})
		return
	}

	vectors := h.predictor.Predict(c.Request.Context(), req.SMILES)
	results := make([]predictionResult, len(vectors))
	for i, v := range vectors {
		results[i] = toResult(req.SMILES[i], v)
	}
	c.JSON(http.StatusOK, batchResponse{Results: results})
}
