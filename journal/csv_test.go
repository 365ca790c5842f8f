package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testRun() RunRecord {
	return RunRecord{
		RunID:           "01J8TESTRUN",
		Time:            time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Model:           "gbm",
		NPaths:          5000,
		HorizonQuarters: 4,
		Objective:       "maximize_npm",
		Forwards:        0.5,
		Options:         0.3,
		Natural:         0.2,
		ExpectedNPM:     0.21,
		NPMVolatility:   0.015,
		CVaR95:          -0.18,
		Success:         true,
	}
}

func testFrontier() []FrontierRecord {
	return []FrontierRecord{
		{RunID: "01J8TESTRUN", HedgeLevel: 0, ExpectedNPM: 0.2, NPMVolatility: 0.02, CVaR95: -0.15},
		{RunID: "01J8TESTRUN", HedgeLevel: 0.5, ExpectedNPM: 0.21, NPMVolatility: 0.4, CVaR95: -0.1},
		{RunID: "01J8TESTRUN", HedgeLevel: 1, ExpectedNPM: 0.22, NPMVolatility: 0.8, CVaR95: 0.1},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	assert.NoError(t, err)
	return rows
}

func TestCSVHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runs := filepath.Join(dir, "runs.csv")
	frontier := filepath.Join(dir, "frontier.csv")

	j, err := NewCSV(runs, frontier)
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	runRows := readCSV(t, runs)
	assert.Len(t, runRows, 1)
	assert.Equal(t, "run_id", runRows[0][0])
	assert.Equal(t, "success", runRows[0][len(runRows[0])-1])

	frontierRows := readCSV(t, frontier)
	assert.Len(t, frontierRows, 1)
	assert.Equal(t, []string{"run_id", "hedge_level", "expected_npm", "npm_volatility", "cvar_95"}, frontierRows[0])
}

func TestCSVRecordRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runs := filepath.Join(dir, "runs.csv")
	j, err := NewCSV(runs, filepath.Join(dir, "frontier.csv"))
	assert.NoError(t, err)

	assert.NoError(t, j.RecordRun(testRun()))
	assert.NoError(t, j.Close())

	rows := readCSV(t, runs)
	assert.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "01J8TESTRUN", row[0])
	assert.Equal(t, "2026-03-01T12:00:00Z", row[1])
	assert.Equal(t, "gbm", row[2])
	assert.Equal(t, "5000", row[3])
	assert.Equal(t, "0.500000", row[6])
	assert.Equal(t, "true", row[12])
}

func TestCSVRecordFrontier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	frontier := filepath.Join(dir, "frontier.csv")
	j, err := NewCSV(filepath.Join(dir, "runs.csv"), frontier)
	assert.NoError(t, err)

	assert.NoError(t, j.RecordFrontier(testFrontier()))
	assert.NoError(t, j.Close())

	rows := readCSV(t, frontier)
	assert.Len(t, rows, 4)
	assert.Equal(t, "0.500000", rows[2][1])
}

func TestCSVCreateFailsOnBadPath(t *testing.T) {
	t.Parallel()

	_, err := NewCSV(filepath.Join(t.TempDir(), "missing", "runs.csv"), "frontier.csv")
	assert.Error(t, err)
}
