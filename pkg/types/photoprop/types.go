// Package photoprop defines the photophysical-property data types shared by
// every layer of mt-nir.  No prediction logic lives here, only plain data
// types that are safe to import from any layer without creating circular
// dependencies.
package photoprop

import (
	"encoding/json"
	"fmt"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Property positions
// ─────────────────────────────────────────────────────────────────────────────

// PropertyCount is the number of properties every prediction must carry.
// A Vector always holds at least this many positions; the first three have
// fixed semantics regardless of how many columns the underlying model emits.
const PropertyCount = 3

// Positional indices into a Vector.
const (
	// PosWavelength is the max absorption wavelength in nm.
	PosWavelength = 0

	// PosExtinction is the log extinction coefficient, log(M⁻¹ cm⁻¹).
	PosExtinction = 1

	// PosQuantumYield is the photoisomerization quantum yield.
	PosQuantumYield = 2
)

// ─────────────────────────────────────────────────────────────────────────────
// Vector — ordered prediction values
// ─────────────────────────────────────────────────────────────────────────────

// Vector is an ordered sequence of predicted property values.  The first three
// positions are [wavelength, log-extinction, quantum yield]; columns beyond
// the third are passed through from the model unchanged.  A Vector produced by
// a Predictor is never shorter than PropertyCount; failed positions are
// filled with negative infinity.
type Vector []float64

// Sentinel returns the canonical failure vector [-inf, -inf, -inf].  It is
// the in-band "prediction unavailable" signal; there is no separate error
// flag alongside a Vector.
func Sentinel() Vector {
	v := make(Vector, PropertyCount)
	for i := range v {
		v[i] = math.Inf(-1)
	}
	return v
}

// PadToMin right-pads v with negative infinity until it holds at least
// PropertyCount values.  Longer vectors are returned unchanged.
func (v Vector) PadToMin() Vector {
	for len(v) < PropertyCount {
		v = append(v, math.Inf(-1))
	}
	return v
}

// Failed reports whether v carries no usable prediction: it is empty or all
// of its first PropertyCount positions are negative infinity.
func (v Vector) Failed() bool {
	if len(v) < PropertyCount {
		return true
	}
	for i := 0; i < PropertyCount; i++ {
		if !math.IsInf(v[i], -1) {
			return false
		}
	}
	return true
}

// Wavelength returns the max absorption wavelength position.
func (v Vector) Wavelength() float64 { return v.at(PosWavelength) }

// Extinction returns the log extinction coefficient position.
func (v Vector) Extinction() float64 { return v.at(PosExtinction) }

// QuantumYield returns the photoisomerization quantum yield position.
func (v Vector) QuantumYield() float64 { return v.at(PosQuantumYield) }

func (v Vector) at(i int) float64 {
	if i >= len(v) {
		return math.Inf(-1)
	}
	return v[i]
}

// MarshalJSON encodes the vector as a JSON array with non-finite positions
// (the -inf sentinel) rendered as null, since JSON has no infinity literal.
func (v Vector) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(v))
	for i, f := range v {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			continue
		}
		val := f
		out[i] = &val
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: null positions become -inf.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Vector, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = *p
	}
	*v = out
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Rounded — display form of a Vector
// ─────────────────────────────────────────────────────────────────────────────

// Rounded is the display representation of a Vector: wavelength rounded to
// the nearest integer, extinction and quantum yield to two decimal places.
// Sentinel positions render as the literal string "-inf" so that failed
// predictions stay recognisable in CSV output and terminal text.
type Rounded struct {
	SMILES       string `json:"smiles"`
	Wavelength   string `json:"max_abs_wavelength_nm"`
	Extinction   string `json:"extinct_coeff_log"`
	QuantumYield string `json:"photoisomerization_qy"`
}

// Round produces the Rounded form of v for the given SMILES string.
func Round(smiles string, v Vector) Rounded {
	return Rounded{
		SMILES:       smiles,
		Wavelength:   formatInt(v.Wavelength()),
		Extinction:   formatFixed(v.Extinction()),
		QuantumYield: formatFixed(v.QuantumYield()),
	}
}

// formatInt renders f rounded to the nearest integer, or "-inf" for the
// sentinel value.
func formatInt(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "-inf"
	}
	return fmt.Sprintf("%d", int(math.Round(f)))
}

// formatFixed renders f with two decimal places, or "-inf" for the sentinel.
func formatFixed(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", f)
}
