package rescoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

func TestParseSequencesSkipsBlankAndCommentLines(t *testing.T) {
	r := strings.NewReader("AR\n\n# a comment\nGCK\n")
	sequences, err := ParseSequences(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"AR", "GCK"}, sequences)
}

func arSpectrumAndParams() (spectrum.Spectrum, config.Params) {
	sp := spectrum.Spectrum{
		Peaks: []spectrum.Peak{
			{MZ: 72.04439, RawIntensity: 100, NormalizedIntensity: 1.0},
			{MZ: 175.119, RawIntensity: 80, NormalizedIntensity: 0.8},
		},
		PrecursorMass: 246.157,
		Charge:        1,
	}
	sp.SortByMZ()

	params := config.Default()
	params.PrecursorMass = 246.157
	params.ChargeState = 1
	return sp, params
}

// TestScoreRanksMatchingSequenceFirst checks that the dipeptide AR,
// whose synthetic spectrum this fixture embeds, outscores an unrelated
// sequence of the same length.
func TestScoreRanksMatchingSequenceFirst(t *testing.T) {
	sp, params := arSpectrumAndParams()

	candidates, err := Score(sp, params, []string{"GG", "AR"})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "AR", candidates[0].Sequence)
	assert.Equal(t, 1, candidates[0].Rank)
	assert.Equal(t, 2, candidates[1].Rank)
	assert.Greater(t, candidates[0].CombinedScore, candidates[1].CombinedScore)
}

func TestScoreRejectsUnknownResidueSymbol(t *testing.T) {
	sp, params := arSpectrumAndParams()

	_, err := Score(sp, params, []string{"AR", "A1R"})
	assert.Error(t, err)
	var formatErr *spectrum.FormatError
	assert.ErrorAs(t, err, &formatErr)
}
