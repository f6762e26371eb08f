package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/engine"
	"github.com/ksantone/lutefisk/internal/scramble"
)

func TestBuildListsRankedCandidates(t *testing.T) {
	params := config.Default()
	params.PrecursorMass = 246.157

	rep := engine.Report{
		Candidates: []engine.ScoredCandidate{
			{Residues: "AR", CombinedScore: 3.5, IntensityScore: 1, ProbabilityScore: 1, Quality: 1, CrossCorrelation: 0.5, Rank: 1},
			{Residues: "RA", CombinedScore: 2.1, IntensityScore: 0.5, ProbabilityScore: 0.5, Quality: 0.5, CrossCorrelation: 0.1, Rank: 2},
		},
	}

	out := string(Build("test.dta", params, rep))
	assert.Contains(t, out, "Spectrum: test.dta")
	assert.Contains(t, out, "1  AR")
	assert.Contains(t, out, "2  RA")
}

func TestBuildReportsNoCandidates(t *testing.T) {
	out := string(Build("empty.dta", config.Default(), engine.Report{}))
	assert.Contains(t, out, "No candidate sequences survived enumeration.")
}

func TestBuildIncludesScrambleConfidence(t *testing.T) {
	rep := engine.Report{
		Candidates: []engine.ScoredCandidate{{Residues: "AR", CombinedScore: 1, Rank: 1}},
		Scramble:   &scramble.Result{TrueScore: 3.0, Confidence: 0.9, OffMassScores: []float64{1, 2, 3}},
	}

	out := string(Build("tagged.dta", config.Default(), rep))
	assert.Contains(t, out, "Mass-scramble confidence: 0.9000")
	assert.Contains(t, out, "3 off-mass runs")
}

func TestWriteSavesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := Write(path, "test.dta", config.Default(), engine.Report{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Spectrum: test.dta")
}

func TestBuildDetailBreaksOutComponentScores(t *testing.T) {
	rep := engine.Report{
		Candidates: []engine.ScoredCandidate{
			{Residues: "AR", GapCount: 1, IntensityScore: 1.2, ProbabilityScore: 0.8, Quality: 0.5, CrossCorrelation: 0.4, CombinedScore: 2.9, Rank: 1},
		},
	}

	out := string(BuildDetail(rep))
	assert.Contains(t, out, "1  AR")
	assert.Contains(t, out, "1.2000")
	assert.Contains(t, out, "2.9000")
}

func TestWriteDetailSavesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "detail.txt")

	rep := engine.Report{Candidates: []engine.ScoredCandidate{{Residues: "AR", Rank: 1}}}
	err := WriteDetail(path, rep)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1  AR")
}
