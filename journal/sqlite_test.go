package journal

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','frontier')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["frontier"])
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	rec := testRun()
	assert.NoError(t, j.RecordRun(rec))

	got, err := j.GetRun(rec.RunID)
	assert.NoError(t, err)
	assert.Equal(t, rec.RunID, got.RunID)
	assert.Equal(t, rec.Model, got.Model)
	assert.Equal(t, rec.NPaths, got.NPaths)
	assert.Equal(t, rec.Objective, got.Objective)
	assert.InDelta(t, rec.Forwards, got.Forwards, 1e-12)
	assert.InDelta(t, rec.CVaR95, got.CVaR95, 1e-12)
	assert.True(t, got.Success)
	assert.True(t, rec.Time.Equal(got.Time))
}

func TestSQLiteRecordRunDuplicateID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	assert.NoError(t, j.RecordRun(testRun()))
	assert.Error(t, j.RecordRun(testRun()))
}

func TestSQLiteRecordFrontier(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	assert.NoError(t, j.RecordRun(testRun()))
	assert.NoError(t, j.RecordFrontier(testFrontier()))

	got, err := j.ListFrontier("01J8TESTRUN")
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0].HedgeLevel)
	assert.Equal(t, 1.0, got[2].HedgeLevel)
	assert.InDelta(t, 0.21, got[1].ExpectedNPM, 1e-12)
}

func TestSQLiteGetMissingRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
