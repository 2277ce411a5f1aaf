package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdsanc/mt-nir/internal/predictor"
	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
	"github.com/jdsanc/mt-nir/pkg/types/photoprop"
)

// csvHeader is the column layout of batch output files.
var csvHeader = []string{
	"smiles",
	"max_abs_wavelength(nm)",
	"extinct_coeff(log(M^-1 cm^-1))",
	"photoisomerization_QY",
}

// runPredict dispatches the one-shot prediction paths.  Exactly one of
// --smiles / --csv must be given; anything else is a usage error with a
// nonzero exit.
func runPredict(cmd *cobra.Command, opts *rootOptions) error {
	if (opts.SMILES == "") == (opts.CSVPath == "") {
		return apperrors.New(apperrors.ErrCodeValidation, "either --smiles or --csv must be provided")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}

	p, err := buildPredictor(cmd, cfg, logger, nil)
	if err != nil {
		return err
	}

	if opts.SMILES != "" {
		return runSingle(cmd, p, opts.SMILES)
	}
	return runCSV(cmd, p, opts.CSVPath)
}

// runSingle predicts one molecule and prints the rounded result block.
func runSingle(cmd *cobra.Command, p predictor.Predictor, smiles string) error {
	v := p.PredictSingle(cmd.Context(), smiles)
	r := photoprop.Round(smiles, v)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Prediction Results:")
	fmt.Fprintf(out, "smiles: %s\n", smiles)
	fmt.Fprintf(out, "max_abs_wavelength (nm): %s\n", r.Wavelength)
	fmt.Fprintf(out, "extinct_coeff (log(M^-1 cm^-1)): %s\n", r.Extinction)
	fmt.Fprintf(out, "photoisomerization_QY: %s\n", r.QuantumYield)
	return nil
}

// runCSV predicts every row of the input table sequentially and writes the
// sibling <base>_predict.csv.  A molecule that fails appears in the output
// as "-inf" values; it never aborts the rest of the batch.
func runCSV(cmd *cobra.Command, p predictor.Predictor, path string) error {
	smiles, err := readSMILESColumn(path)
	if err != nil {
		return err
	}

	vectors := p.Predict(cmd.Context(), smiles)

	outputPath := predictOutputPath(path)
	if err := writePredictions(outputPath, smiles, vectors); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nPredictions saved to: %s\n", outputPath)
	return nil
}

// readSMILESColumn reads the "smiles" column of a CSV file, preserving row
// order.
func readSMILESColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "opening input CSV")
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "reading input CSV")
	}
	if len(records) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "input CSV is empty")
	}

	col := -1
	for i, name := range records[0] {
		if strings.TrimSpace(name) == "smiles" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, `input CSV has no "smiles" column`)
	}

	smiles := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if col >= len(row) {
			smiles = append(smiles, "")
			continue
		}
		smiles = append(smiles, row[col])
	}
	return smiles, nil
}

// predictOutputPath derives the batch output path: the "_predict" suffix goes
// before the extension, and the output is always CSV.
func predictOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_predict.csv"
}

// writePredictions writes the rounded results table.
func writePredictions(path string, smiles []string, vectors []photoprop.Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating output CSV")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "writing output CSV header")
	}
	for i, v := range vectors {
		r := photoprop.Round(smiles[i], v)
		if err := cw.Write([]string{r.SMILES, r.Wavelength, r.Extinction, r.QuantumYield}); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "writing output CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "flushing output CSV")
	}
	return nil
}
