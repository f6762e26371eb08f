/*
Package profilefilter low-pass filters a profile-mode spectrum's
intensity trace with an FFT, then centroids the smoothed trace into
discrete peaks, before internal/spectrum hands the result to the graph
builder. It is never invoked when Params.Centroided is already true.
*/
package profilefilter

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// DefaultCutoffFraction keeps the lowest 10% of the trace's frequency
// components: a gentle low-pass, not a match-filter.
const DefaultCutoffFraction = 0.1

// Centroid sorts sp's profile-mode peaks by m/z and takes their
// intensities, one sample per peak, as a trace (it does not resample
// onto a uniform m/z grid), low-pass filters that trace with an FFT, and picks
// local maxima of the smoothed trace as the output peak list. cutoff is
// the fraction of frequency bins kept (0, 1]; DefaultCutoffFraction is
// used when cutoff is <= 0.
func Centroid(sp spectrum.Spectrum, cutoff float64) spectrum.Spectrum {
	if cutoff <= 0 {
		cutoff = DefaultCutoffFraction
	}
	if len(sp.Peaks) < 3 {
		return sp
	}

	peaks := append([]spectrum.Peak(nil), sp.Peaks...)
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].MZ < peaks[j].MZ })

	trace := make([]float64, len(peaks))
	for i, p := range peaks {
		trace[i] = float64(p.RawIntensity)
	}

	smoothed := lowPass(trace, cutoff)

	out := spectrum.Spectrum{PrecursorMass: sp.PrecursorMass, Charge: sp.Charge}
	for i := 1; i+1 < len(smoothed); i++ {
		if smoothed[i] <= 0 {
			continue
		}
		if smoothed[i] >= smoothed[i-1] && smoothed[i] >= smoothed[i+1] {
			out.Peaks = append(out.Peaks, spectrum.Peak{
				MZ:           peaks[i].MZ,
				RawIntensity: int(math.Round(smoothed[i])),
			})
		}
	}
	out.Normalize()
	return out
}

// lowPass returns trace filtered through a real FFT, zeroing every
// coefficient above cutoff*Nyquist and transforming back - the same
// fourier.FFT real/half-complex pair internal/scoring/xcorr uses for
// its autocorrelation.
func lowPass(trace []float64, cutoff float64) []float64 {
	n := len(trace)
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, trace)

	keep := int(float64(len(coeff)) * cutoff)
	if keep < 1 {
		keep = 1
	}
	for i := keep; i < len(coeff); i++ {
		coeff[i] = 0
	}

	out := make([]float64, n)
	fft.Sequence(out, coeff)
	for i := range out {
		out[i] /= float64(n)
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}
