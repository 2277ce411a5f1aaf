// Package cache provides the optional prediction cache.  Predictions are
// immutable for a given checkpoint, so caching by models path + SMILES is
// safe; the cache only ever short-circuits a repeat invocation of the
// external tool.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// PredictionCache stores finished prediction vectors keyed by checkpoint and
// molecule.  Implementations must be safe for concurrent use.
//
// Sentinel vectors are never stored: a failure may be transient (tool crash,
// full disk) and must not poison later attempts.
type PredictionCache interface {
	// Get returns the cached vector and true on a hit.  Errors are
	// infrastructure failures, not misses.
	Get(ctx context.Context, modelsPath, smiles string) (photoprop.Vector, bool, error)

	// Put stores a vector.  Callers must not pass sentinel results.
	Put(ctx context.Context, modelsPath, smiles string, v photoprop.Vector) error
}

// Key derives the cache key for a models path + SMILES pair.  SMILES strings
// contain characters that are awkward in redis keys, so both parts are
// hashed.
func Key(prefix, modelsPath, smiles string) string {
	sum := sha256.Sum256([]byte(modelsPath + "\x00" + smiles))
	return prefix + ":pred:" + hex.EncodeToString(sum[:])
}

// ─────────────────────────────────────────────────────────────────────────────
// nopCache
// ─────────────────────────────────────────────────────────────────────────────

type nopCache struct{}

func (nopCache) Get(context.Context, string, string) (photoprop.Vector, bool, error) {
	return nil, false, nil
}

func (nopCache) Put(context.Context, string, string, photoprop.Vector) error {
	return nil
}

// NewNop returns a PredictionCache that never hits and never stores.
func NewNop() PredictionCache { return nopCache{} }
