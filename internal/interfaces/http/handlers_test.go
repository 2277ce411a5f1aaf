package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsanc/mt-nir/internal/config"
	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// stubPredictor returns canned vectors per SMILES; unknown molecules get the
// sentinel, which is exactly the contract of the real predictor.
type stubPredictor struct {
	vectors map[string]photoprop.Vector
}

func (s *stubPredictor) PredictSingle(_ context.Context, smiles string) photoprop.Vector {
	if v, ok := s.vectors[smiles]; ok {
		return v
	}
	return photoprop.Sentinel()
}

func (s *stubPredictor) Predict(ctx context.Context, smiles []string) []photoprop.Vector {
	out := make([]photoprop.Vector, len(smiles))
	for i, sm := range smiles {
		out[i] = s.PredictSingle(ctx, sm)
	}
	return out
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	p := &stubPredictor{vectors: map[string]photoprop.Vector{
		"CCO": {450.3, 4.12, 0.67},
	}}
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: "test"}
	return NewServer(cfg, p, nil, nil).Handler()
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPredictSingleEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/v1/predictions", `{"smiles":"CCO"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		SMILES  string            `json:"smiles"`
		Values  photoprop.Vector  `json:"values"`
		Rounded photoprop.Rounded `json:"rounded"`
		Failed  bool              `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, "CCO", res.SMILES)
	assert.Equal(t, photoprop.Vector{450.3, 4.12, 0.67}, res.Values)
	assert.Equal(t, "450", res.Rounded.Wavelength)
	assert.Equal(t, "4.12", res.Rounded.Extinction)
	assert.Equal(t, "0.67", res.Rounded.QuantumYield)
	assert.False(t, res.Failed)
}

func TestPredictSingleEndpointFailedMolecule(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/v1/predictions", `{"smiles":"NOT_A_MOLECULE"}`)
	require.Equal(t, http.StatusOK, rec.Code, "prediction failures are in-band, not HTTP errors")

	var res struct {
		Values  photoprop.Vector  `json:"values"`
		Rounded photoprop.Rounded `json:"rounded"`
		Failed  bool              `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.True(t, res.Failed)
	assert.True(t, res.Values.Failed())
	assert.Equal(t, "-inf", res.Rounded.Wavelength)
	assert.Contains(t, rec.Body.String(), `"values":[null,null,null]`,
		"sentinel positions must encode as JSON null")
}

func TestPredictSingleEndpointBadRequest(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []string{``, `{}`, `{"smiles":""}`, `not json`} {
		rec := postJSON(t, h, "/api/v1/predictions", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestPredictBatchEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/v1/predictions/batch", `{"smiles":["CCO","BAD","CCO"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Results []struct {
			SMILES string           `json:"smiles"`
			Values photoprop.Vector `json:"values"`
			Failed bool             `json:"failed"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results, 3)

	assert.Equal(t, "CCO", res.Results[0].SMILES)
	assert.False(t, res.Results[0].Failed)
	assert.Equal(t, "BAD", res.Results[1].SMILES)
	assert.True(t, res.Results[1].Failed, "failed molecule stays in place")
	assert.False(t, res.Results[2].Failed)
}

func TestPredictBatchEndpointValidation(t *testing.T) {
	h := newTestServer(t)

	rec := postJSON(t, h, "/api/v1/predictions/batch", `{"smiles":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h, "/api/v1/predictions/batch", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
