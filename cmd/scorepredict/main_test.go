package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"go.uber.org/zap"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPredictDefaults(t *testing.T) {
	out, err := runCommand(t, "predict", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Scores: 10 values (continuous mode)")
	assert.Contains(t, out, "Mean (mu) = 2.30")
	assert.Contains(t, out, "Standard deviation (sigma) = 0.90")
	assert.Contains(t, out, "Density for score 2.5")
	assert.Contains(t, out, "Simulated: 1000 draws")
}

func TestPredictDiscreteWithSliders(t *testing.T) {
	out, err := runCommand(t, "predict", "--mode", "discrete", "--seed", "3",
		"--point", "2", "--low", "3", "--high", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "(discrete mode)")
	assert.Contains(t, out, "Probability for score 2:")
	assert.Contains(t, out, "between 1 and 3:")
}

func TestPredictJSON(t *testing.T) {
	out, err := runCommand(t, "predict", "--scores", "0,1,1,2,5", "--json", "--seed", "2")
	require.NoError(t, err)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, model.ScoreSeries{0, 1, 1, 2, 5}, report.Series)
	assert.InDelta(t, 1.8, report.Estimate.Mu, 1e-9)
}

func TestPredictDropNegative(t *testing.T) {
	out, err := runCommand(t, "predict", "--scores", "-2,1,3", "--drop-negative", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Scores: 2 values")
}

func TestPredictInvalidScores(t *testing.T) {
	_, err := runCommand(t, "predict", "--scores", "a,b")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorParse)
	assert.Contains(t, err.Error(), "An error occurred")
}

func TestPredictUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scorepredict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_scores: \"4,4,5\"\npredictor:\n  mode: discrete\n"), 0o644))

	out, err := runCommand(t, "--config", path, "predict", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Scores: 3 values (discrete mode)")
}

func TestInvalidMode(t *testing.T) {
	_, err := runCommand(t, "predict", "--mode", "poisson")
	assert.Error(t, err)
}
