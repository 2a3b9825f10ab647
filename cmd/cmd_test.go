package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a database in dir and
// returns its stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{
		"--db", filepath.Join(dir, "memoriz.db"),
		"--config", filepath.Join(dir, "missing.toml"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "memoriz (devel)\n", out)
}

func TestPredictFromFlags(t *testing.T) {
	out, err := execute(t, t.TempDir(), "predict",
		"--visual", "8", "--working", "8", "--attention", "8", "--age", "25", "--education", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Category:   high")
	assert.Contains(t, out, "Confidence: 95%")
	assert.Contains(t, out, "Average:    8.00")
}

func TestPredictRejectsOutOfRangeScore(t *testing.T) {
	_, err := execute(t, t.TempDir(), "predict", "--visual", "11", "--working", "5", "--attention", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--visual")
}

func TestSimulateStoresResults(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "simulate", "-n", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "3 sessions simulated (seed 7) and stored.")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Records: 3 (3 valid)")

	out, err = execute(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "full")
	assert.NotContains(t, out, "No sessions recorded yet.")
}

func TestSimulateDryRunStoresNothing(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "simulate", "-n", "2", "--seed", "1", "--drill", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing stored")
	assert.Contains(t, out, "WM_")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No valid results found.")
}

func TestTrainNeedsEnoughRecords(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "simulate", "-n", "2", "--seed", "3")
	require.NoError(t, err)

	out, err := execute(t, dir, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "Need at least 10 records to train, have 2.")
}

func TestTrainReportsMetrics(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "simulate", "-n", "10", "--seed", "5", "--drill")
	require.NoError(t, err)

	out, err := execute(t, dir, "train", "--noise", "0", "--seed", "9", "--misclassified")
	require.NoError(t, err)
	assert.Contains(t, out, "Trained on 10 records")
	assert.Contains(t, out, "Accuracy: 100.0% (10/10)")
	assert.Contains(t, out, "Macro F1")
	assert.Contains(t, out, "Misclassified\n  none")
}

func TestTrainRejectsOutOfRangeNoise(t *testing.T) {
	for _, noise := range []string{"-0.5", "1.2"} {
		_, err := execute(t, t.TempDir(), "train", "--noise", noise)
		require.Error(t, err, noise)
		assert.Contains(t, err.Error(), "--noise")
	}
}

func TestTrainRejectsLoweredMinimum(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[classify]\nmin-samples = 0\n"), 0o644))

	_, err := execute(t, dir, "--config", cfg, "train")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min-samples")
}

func TestDatasetExportImportAndClear(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "simulate", "-n", "2", "--seed", "11")
	require.NoError(t, err)

	file := filepath.Join(dir, "export.csv")
	out, err := execute(t, dir, "dataset", "export", file, "--source", "results")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 records")

	other := t.TempDir()
	out, err = execute(t, other, "dataset", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 records")

	out, err = execute(t, other, "stats", "--source", "dataset")
	require.NoError(t, err)
	assert.Contains(t, out, "Records: 2 (2 valid)")

	_, err = execute(t, other, "dataset", "clear", "--yes")
	require.NoError(t, err)
	out, err = execute(t, other, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No valid results found.")
}

func TestResetClearsResults(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "simulate", "-n", "1", "--seed", "2")
	require.NoError(t, err)

	out, err := execute(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All results removed.")

	out, err = execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No valid results found.")
}

func TestInterpretLatestWithRules(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "interpret", "--rules")
	require.Error(t, err)

	_, err = execute(t, dir, "simulate", "-n", "1", "--seed", "4")
	require.NoError(t, err)

	out, err := execute(t, dir, "interpret", "--rules")
	require.NoError(t, err)
	assert.Contains(t, out, "EVAL_")
	assert.Contains(t, out, "Source: rules")
}
