package xcorr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

func testTables() masstab.Tables {
	return masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
}

func testSpectrum() spectrum.Spectrum {
	sp := spectrum.Spectrum{
		Peaks: []spectrum.Peak{
			{MZ: 72.04439, RawIntensity: 80, NormalizedIntensity: 0.8},
			{MZ: 129.065, RawIntensity: 60, NormalizedIntensity: 0.6},
			{MZ: 232.074, RawIntensity: 100, NormalizedIntensity: 1.0},
			{MZ: 175.119, RawIntensity: 40, NormalizedIntensity: 0.4},
		},
	}
	sp.SortByMZ()
	return sp
}

// TestAutocorrelationSelfScoreIsOne checks that cross-correlating
// spectrum1 against itself and normalizing by its own autocorrNorm must
// yield exactly 1.
func TestAutocorrelationSelfScoreIsOne(t *testing.T) {
	sp := testSpectrum()
	params := config.Default()
	params.PrecursorMass = 392.17
	params.ChargeState = 1

	observed, norm := Autocorrelation(sp, params)

	n := len(observed)
	fft := fourier.NewFFT(n)
	tau := crossCorrelate(fft, observed, observed)
	raw := tauScore(tau)

	assert.InDelta(t, 1.0, raw/norm, 1e-9)
}

// TestScoreMatchesAGCKReducedCysteine uses AGCK with reduced cysteine,
// +1, precursor 392.17.
func TestScoreMatchesAGCKReducedCysteine(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 392.17
	params.ChargeState = 1

	sp := testSpectrum()
	observed, norm := Autocorrelation(sp, params)

	score := Score(observed, norm, []rune("AGCK"), tables, params)
	assert.GreaterOrEqual(t, score, 0.3)
}

// TestBufferSizeIsPowerOfTwoWithinRange checks BufferSize never returns
// a value below minBufferLen or a non-power-of-two.
func TestBufferSizeIsPowerOfTwoWithinRange(t *testing.T) {
	for _, mass := range []float64{100, 392.17, 2000, 5000} {
		n := BufferSize(mass)
		assert.GreaterOrEqual(t, n, minBufferLen)
		assert.Zero(t, n&(n-1))
	}
}
