package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

func TestKey(t *testing.T) {
	t.Parallel()

	k1 := Key("mtnir", "/models/fold_0", "CCO")
	k2 := Key("mtnir", "/models/fold_0", "CCO")
	assert.Equal(t, k1, k2, "key derivation must be deterministic")
	assert.True(t, strings.HasPrefix(k1, "mtnir:pred:"))

	assert.NotEqual(t, k1, Key("mtnir", "/models/fold_1", "CCO"),
		"different checkpoints must not share entries")
	assert.NotEqual(t, k1, Key("mtnir", "/models/fold_0", "CCC"))

	// Raw SMILES characters never leak into the key.
	k := Key("mtnir", "/models/fold_0", `C/C=C\C[O-]`)
	assert.NotContains(t, k, `\`)
	assert.NotContains(t, k, "/models")
}

func TestNopCache(t *testing.T) {
	t.Parallel()

	c := NewNop()
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "/models/fold_0", "CCO", photoprop.Vector{450.3, 4.12, 0.67}))

	v, ok, err := c.Get(ctx, "/models/fold_0", "CCO")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}
