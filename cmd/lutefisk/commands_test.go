/*
Testing this CLI builds an *cli.App, swaps its Writer for a buffer,
and calls Run with a spoofed os.Args slice rather than shelling out.
*/
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tabSpectrum = "72.04439\t100\n175.119\t80\n"

func writeTempSpectrum(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ar.tab")
	require.NoError(t, os.WriteFile(path, []byte(tabSpectrum), 0644))
	return path
}

func TestSequenceCommandWritesReportToStdoutBuffer(t *testing.T) {
	spectrumPath := writeTempSpectrum(t)

	var out bytes.Buffer
	app := application()
	app.Writer = &out

	args := []string{"lutefisk", "-m", "246.157", spectrumPath}
	err := app.Run(args)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Spectrum: "+spectrumPath)
}

func TestSequenceCommandRequiresSpectrumArgument(t *testing.T) {
	var out bytes.Buffer
	app := application()
	app.Writer = &out

	err := app.Run([]string{"lutefisk"})
	assert.Error(t, err)
}

func TestSequenceCommandRescoresDatabaseSequences(t *testing.T) {
	spectrumPath := writeTempSpectrum(t)
	sequencesPath := filepath.Join(t.TempDir(), "candidates.txt")
	require.NoError(t, os.WriteFile(sequencesPath, []byte("AR\nGG\n"), 0644))

	var out bytes.Buffer
	app := application()
	app.Writer = &out

	args := []string{"lutefisk", "-m", "246.157", "-s", sequencesPath, spectrumPath}
	err := app.Run(args)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Rescoring 2 candidate sequence(s)")
	assert.Contains(t, out.String(), "AR")
}

func TestSequenceCommandWritesOutputFile(t *testing.T) {
	spectrumPath := writeTempSpectrum(t)
	outputPath := filepath.Join(t.TempDir(), "report.txt")

	app := application()
	args := []string{"lutefisk", "-m", "246.157", "-o", outputPath, spectrumPath}
	err := app.Run(args)
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Spectrum: "+spectrumPath)
}

func TestMain(t *testing.T) {
	rescueArgs := os.Args
	defer func() { os.Args = rescueArgs }()

	os.Args = []string{"lutefisk", "-h"}
	main()
}
