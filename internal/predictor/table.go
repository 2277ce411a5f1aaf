package predictor

import (
	"encoding/csv"
	"io"
	"strconv"

	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// RawTable — the tabular output of one external-tool invocation
// ─────────────────────────────────────────────────────────────────────────────

// RawTable is the predictions file as chemprop wrote it: a header row plus
// data rows, all values still strings.  Column selection and numeric coercion
// happen in NumericFirstRow, not here.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ParseCSVTable reads a predictions file into a RawTable.  Rows shorter than
// the header are tolerated; completely empty input yields an
// ErrCodeMalformedOutput error.
func ParseCSVTable(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeMalformedOutput, "predictions file is not valid CSV")
	}
	if len(records) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeMalformedOutput, "predictions file has no rows")
	}

	return &RawTable{Header: records[0], Rows: records[1:]}, nil
}

// NumericFirstRow returns the first data row restricted to numeric columns,
// in column order.  A column is numeric when its first-row value parses as a
// float; identifier columns such as an echoed "smiles" column are discarded
// this way.  The returned slice is empty when the table has no data rows or
// no numeric columns; the caller decides whether that is a soft failure.
func (t *RawTable) NumericFirstRow() []float64 {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}

	row := t.Rows[0]
	values := make([]float64, 0, len(row))
	for _, cell := range row {
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		values = append(values, f)
	}
	return values
}
