package photoprop

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinel(t *testing.T) {
	t.Parallel()

	v := Sentinel()
	require.Len(t, v, PropertyCount)
	for i, f := range v {
		assert.True(t, math.IsInf(f, -1), "position %d should be -inf", i)
	}
	assert.True(t, v.Failed())
}

func TestPadToMin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Vector
		want int
	}{
		{"empty", Vector{}, 3},
		{"one value", Vector{300.0}, 3},
		{"exactly three", Vector{1, 2, 3}, 3},
		{"extras kept", Vector{1, 2, 3, 4, 5}, 5},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.in.PadToMin()
			assert.Len(t, got, tc.want)
			for i := len(tc.in); i < len(got); i++ {
				assert.True(t, math.IsInf(got[i], -1), "padded position %d should be -inf", i)
			}
		})
	}
}

func TestFailed(t *testing.T) {
	t.Parallel()

	assert.True(t, Vector{}.Failed())
	assert.True(t, Sentinel().Failed())
	assert.False(t, Vector{300.0, math.Inf(-1), math.Inf(-1)}.Failed(),
		"partial results are not failures")
	assert.False(t, Vector{450.3, 4.12, 0.67}.Failed())
}

func TestPositionalAccessors(t *testing.T) {
	t.Parallel()

	v := Vector{450.3, 4.12, 0.67}
	assert.Equal(t, 450.3, v.Wavelength())
	assert.Equal(t, 4.12, v.Extinction())
	assert.Equal(t, 0.67, v.QuantumYield())

	short := Vector{300.0}
	assert.Equal(t, 300.0, short.Wavelength())
	assert.True(t, math.IsInf(short.Extinction(), -1))
}

func TestRound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		in             Vector
		wantWavelength string
		wantExtinction string
		wantQY         string
	}{
		{"typical", Vector{450.3, 4.12, 0.67}, "450", "4.12", "0.67"},
		{"rounds", Vector{449.5, 4.126, 0.674}, "450", "4.13", "0.67"},
		{"sentinel", Sentinel(), "-inf", "-inf", "-inf"},
		{"partial", Vector{300.0}.PadToMin(), "300", "-inf", "-inf"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := Round("CCO", tc.in)
			assert.Equal(t, "CCO", r.SMILES)
			assert.Equal(t, tc.wantWavelength, r.Wavelength)
			assert.Equal(t, tc.wantExtinction, r.Extinction)
			assert.Equal(t, tc.wantQY, r.QuantumYield)
		})
	}
}

func TestVectorJSON_SentinelAsNull(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Vector{300.0, math.Inf(-1), math.Inf(-1)})
	require.NoError(t, err)
	assert.JSONEq(t, `[300,null,null]`, string(raw))

	var back Vector
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, 3)
	assert.Equal(t, 300.0, back[0])
	assert.True(t, math.IsInf(back[1], -1))
	assert.True(t, math.IsInf(back[2], -1))
}
