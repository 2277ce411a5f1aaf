package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jdsanc/mt-nir/pkg/errors"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPredictUsageErrors(t *testing.T) {
	t.Parallel()

	_, err := execRoot(t)
	require.Error(t, err, "neither --smiles nor --csv is a usage error")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))

	_, err = execRoot(t, "--smiles", "CCO", "--csv", "input.csv")
	require.Error(t, err, "--smiles and --csv are mutually exclusive")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
}

func TestPredictOutputPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"data.csv", "data_predict.csv"},
		{"dir/molecules.csv", "dir/molecules_predict.csv"},
		{"input.txt", "input_predict.csv"},
		{"noext", "noext_predict.csv"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, predictOutputPath(tc.in), "input %q", tc.in)
	}
}

func TestReadSMILESColumn(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.csv")
	content := "id,smiles,name\n1,CCO,ethanol\n2,C1=CC=CC=C1,benzene\n3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	smiles, err := readSMILESColumn(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CCO", "C1=CC=CC=C1", ""}, smiles,
		"row order preserved, short rows become empty strings")
}

func TestReadSMILESColumnErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := readSMILESColumn(filepath.Join(t.TempDir(), "absent.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("no smiles column", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "input.csv")
		require.NoError(t, os.WriteFile(path, []byte("id,structure\n1,CCO\n"), 0o644))

		_, err := readSMILESColumn(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no "smiles" column`)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "input.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := readSMILESColumn(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input CSV is empty")
	})
}

// writeToolAndConfig installs a fake chemprop binary plus a config file
// pointing at it, so the root command can run end to end without the real
// tool.
func writeToolAndConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	tool := filepath.Join(dir, "fake-chemprop")
	script := `#!/bin/sh
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--preds-path" ]; then out="$a"; fi
  prev="$a"
done
printf 'smiles,pred1,pred2,pred3\nX,450.3,4.12,0.67\n' > "$out"
`
	require.NoError(t, os.WriteFile(tool, []byte(script), 0o755))

	models := filepath.Join(dir, "fold_0")
	require.NoError(t, os.Mkdir(models, 0o755))

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "chemprop:\n" +
		"  binary: " + tool + "\n" +
		"  models_path: " + models + "\n" +
		"log:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func TestRunSinglePrintsResultBlock(t *testing.T) {
	t.Parallel()

	cfgPath := writeToolAndConfig(t)

	out, err := execRoot(t, "-c", cfgPath, "--smiles", "CCO")
	require.NoError(t, err)

	want := "\n" +
		"Prediction Results:\n" +
		"smiles: CCO\n" +
		"max_abs_wavelength (nm): 450\n" +
		"extinct_coeff (log(M^-1 cm^-1)): 4.12\n" +
		"photoisomerization_QY: 0.67\n"
	assert.Equal(t, want, out)
}

func TestModelsPathFlagOverride(t *testing.T) {
	t.Parallel()

	cfgPath := writeToolAndConfig(t)
	missing := filepath.Join(t.TempDir(), "no-such-checkpoint")

	_, err := execRoot(t, "-c", cfgPath, "--smiles", "CCO", "--models_path", missing)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidModelPath))
}

func TestRunCSVWritesPredictionsFile(t *testing.T) {
	t.Parallel()

	cfgPath := writeToolAndConfig(t)

	inputPath := filepath.Join(t.TempDir(), "molecules.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte("id,smiles\n1,CCO\n2,C1=CC=CC=C1\n"), 0o644))

	out, err := execRoot(t, "-c", cfgPath, "--csv", inputPath)
	require.NoError(t, err)

	outputPath := filepath.Join(filepath.Dir(inputPath), "molecules_predict.csv")
	assert.Contains(t, out, "Predictions saved to: "+outputPath)

	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	want := "smiles,max_abs_wavelength(nm),extinct_coeff(log(M^-1 cm^-1)),photoisomerization_QY\n" +
		"CCO,450,4.12,0.67\n" +
		"C1=CC=CC=C1,450,4.12,0.67\n"
	assert.Equal(t, want, string(raw))
}
