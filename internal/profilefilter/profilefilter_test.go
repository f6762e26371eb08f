package profilefilter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// gaussianTrace builds a single noisy Gaussian bump centered at index
// center, simulating one profile-mode peak sampled on a uniform grid.
func gaussianTrace(n, center int, width float64) spectrum.Spectrum {
	sp := spectrum.Spectrum{}
	for i := 0; i < n; i++ {
		d := float64(i - center)
		base := 100 * math.Exp(-(d*d)/(2*width*width))
		noise := 3.0
		if i%2 == 0 {
			noise = -3.0
		}
		sp.Peaks = append(sp.Peaks, spectrum.Peak{MZ: float64(i) * 0.1, RawIntensity: int(math.Round(base + noise))})
	}
	return sp
}

func TestCentroidRecoversSinglePeakNearCenter(t *testing.T) {
	sp := gaussianTrace(64, 32, 3)

	out := Centroid(sp, DefaultCutoffFraction)
	require.NotEmpty(t, out.Peaks)

	var best spectrum.Peak
	for _, p := range out.Peaks {
		if p.RawIntensity > best.RawIntensity {
			best = p
		}
	}
	assert.InDelta(t, 3.2, best.MZ, 0.3)
}

func TestCentroidPassesThroughTinySpectra(t *testing.T) {
	sp := spectrum.Spectrum{Peaks: []spectrum.Peak{{MZ: 1, RawIntensity: 10}}}
	out := Centroid(sp, DefaultCutoffFraction)
	assert.Equal(t, sp.Peaks, out.Peaks)
}

func TestCentroidDefaultsCutoffWhenNonPositive(t *testing.T) {
	sp := gaussianTrace(32, 16, 2)
	out := Centroid(sp, 0)
	assert.NotEmpty(t, out.Peaks)
}
