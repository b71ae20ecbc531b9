package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/persistence"
)

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func setGenerateFlags(t *testing.T, dir string) {
	t.Helper()
	seed = 5
	genMode = "original-34"
	genIterations = 25
	genSkew = 1
	genReject = true
	genObjective = "squared-error"
	genOut = filepath.Join(dir, "board.png")
	genBefore = ""
	genTrace = ""
	genDB = ""
	genScale = 20
}

func TestRunGenerateRecordsRun(t *testing.T) {
	dir := t.TempDir()
	setGenerateFlags(t, dir)
	genDB = filepath.Join(dir, "nested", "runs.db")
	genTrace = filepath.Join(dir, "trace.png")

	require.NoError(t, runGenerate(testCommand(), nil))
	assert.FileExists(t, genOut)
	assert.FileExists(t, genTrace)

	db, err := persistence.Open(genDB)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	tiles, err := db.LoadBoard(runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, tiles, 19)
}

// A database path under a regular file cannot be created.
func blockedPath(t *testing.T, dir string) string {
	t.Helper()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	return filepath.Join(file, "runs.db")
}

func TestRunGenerateDatabaseDirError(t *testing.T) {
	dir := t.TempDir()
	setGenerateFlags(t, dir)
	genDB = blockedPath(t, dir)

	err := runGenerate(testCommand(), nil)
	assert.ErrorContains(t, err, "create ")
	assert.NoFileExists(t, genOut)
}

func TestRunStudyDatabaseDirError(t *testing.T) {
	dir := t.TempDir()
	seed = 5
	studySims = 1
	studySteps = 5
	studyPerSide = 3
	studySkew = 0
	studyWorkers = 1
	studyObjective = "squared-error"
	studyDB = blockedPath(t, dir)
	studyPlot = filepath.Join(dir, "study.png")

	err := runStudy(testCommand(), nil)
	assert.ErrorContains(t, err, "create ")
	assert.NoFileExists(t, studyPlot)
}

func TestRunFieldWritesImages(t *testing.T) {
	dir := t.TempDir()
	seed = 2
	fieldRows = 12
	fieldCols = 16
	fieldSpacing = 4
	fieldNormalizer = 10
	fieldOutDir = filepath.Join(dir, "out")
	fieldPCA = []string{"unclipped", "negative"}

	require.NoError(t, runField(testCommand(), nil))
	for _, name := range []string{"curl", "divergence", "pca_unclipped", "pca_negative"} {
		assert.FileExists(t, filepath.Join(fieldOutDir, name+"_seed_2.png"))
	}
	assert.NoFileExists(t, filepath.Join(fieldOutDir, "pca_positive_seed_2.png"))

	fieldPCA = []string{"sideways"}
	assert.ErrorContains(t, runField(testCommand(), nil), "unknown pca image")
}
