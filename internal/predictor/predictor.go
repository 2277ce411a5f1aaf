// Package predictor implements the photophysical-property prediction core:
// the Predictor capability, the external chemprop invoker, and the raw-table
// normalization that turns heterogeneous tool output into fixed-shape result
// vectors.
package predictor

import (
	"context"

	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// Predictor is the property-prediction capability.  Concrete variants
// (external-tool-backed today, in-process-model-backed tomorrow) implement
// this interface; callers never depend on a concrete type.
//
// The failure contract is strict: after successful construction of a
// Predictor, PredictSingle never returns an error and never panics: every
// runtime failure (artifact I/O, subprocess, parsing, numeric coercion)
// degrades to photoprop.Sentinel().  One molecule's failure must not abort a
// batch.  Callers distinguish failures by checking Vector.Failed().
type Predictor interface {
	// Predict predicts properties for each SMILES string in order.  Results
	// mirror the input order one-to-one.  Processing is strictly sequential:
	// each molecule triggers its own external-tool invocation.
	Predict(ctx context.Context, smiles []string) []photoprop.Vector

	// PredictSingle predicts properties for a single SMILES string.
	PredictSingle(ctx context.Context, smiles string) photoprop.Vector
}

// predictSequential is the shared batch implementation: one PredictSingle
// call per molecule, input order preserved.  Concrete Predictor variants
// delegate their Predict method here so that only PredictSingle differs
// between implementations.
func predictSequential(ctx context.Context, p Predictor, smiles []string) []photoprop.Vector {
	out := make([]photoprop.Vector, 0, len(smiles))
	for _, s := range smiles {
		out = append(out, p.PredictSingle(ctx, s))
	}
	return out
}
