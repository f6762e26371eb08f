/*
Package xcorr implements a Sequest-style cross-correlation scorer: both
the observed spectrum and a candidate's theoretical fragment-ion
spectrum are binned onto an integer 0.5-Da grid, and the two are
cross-correlated via a real FFT using gonum.org/v1/gonum/dsp/fourier.
*/
package xcorr

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// BinWidthDa is the integer grid spacing spectrum1/spectrum2 are
// populated on.
const BinWidthDa = 0.5

// offsetWindow bounds the i in [1, offsetWindow] the normalization sum
// runs over.
const offsetWindow = 250

// minBufferLen and maxBufferLen bound the default buffer size search;
// BufferSize still extends past maxBufferLen for an unusually large
// precursor mass rather than truncate it.
const (
	minBufferLen = 2048
	maxBufferLen = 4096
)

// toBin maps a mass in daltons to its 0.5-Da grid index.
func toBin(massDa float64) int {
	return int(math.Round(massDa / BinWidthDa))
}

// BufferSize returns the smallest power of two for which
// 2ⁿ >= 2 * toBin(precursorMassDa), clamped to at least minBufferLen and
// extended past maxBufferLen only when the precursor mass demands it.
func BufferSize(precursorMassDa float64) int {
	need := 2 * toBin(precursorMassDa)
	n := minBufferLen
	for n < need {
		n *= 2
	}
	return n
}

// buildObserved populates spectrum1 from the observed peak list: each
// peak contributes its full intensity at its bin and 0.75x at the +-1
// neighbours, extended to +-2 when the fragment tolerance is loose.
func buildObserved(buf []float64, sp spectrum.Spectrum, fragmentToleranceDa float64) {
	wideSideLobes := fragmentToleranceDa > 0.75
	for _, p := range sp.Peaks {
		full := p.NormalizedIntensity
		if full <= 0 {
			continue
		}
		deposit(buf, toBin(p.MZ), full)
		depositSide(buf, toBin(p.MZ), 1, 0.75*full)
		if wideSideLobes {
			depositSide(buf, toBin(p.MZ), 2, 0.75*full)
		}
	}
}

func deposit(buf []float64, bin int, amount float64) {
	if bin >= 0 && bin < len(buf) {
		buf[bin] += amount
	}
}

func depositSide(buf []float64, bin, offset int, amount float64) {
	deposit(buf, bin-offset, amount)
	deposit(buf, bin+offset, amount)
}

// wipeWindow zeroes buf in [lo, hi] daltons, used to remove the
// precursor peak and its neutral losses and anything outside the
// instrument scan range.
func wipeWindow(buf []float64, loDa, hiDa float64) {
	lo, hi := toBin(loDa), toBin(hiDa)
	for i := lo; i <= hi && i < len(buf); i++ {
		if i >= 0 {
			buf[i] = 0
		}
	}
}

// autocorrelate returns the circular autocorrelation of buf via a real
// FFT: IFFT(|FFT(buf)|^2).
func autocorrelate(fft *fourier.FFT, buf []float64) []float64 {
	coeff := fft.Coefficients(nil, buf)
	power := make([]complex128, len(coeff))
	for i, c := range coeff {
		mag := real(c)*real(c) + imag(c)*imag(c)
		power[i] = complex(mag, 0)
	}
	return fft.Sequence(nil, power)
}

// crossCorrelate returns the circular cross-correlation of a and b via
// a real FFT: IFFT(FFT(a) * conj(FFT(b))).
func crossCorrelate(fft *fourier.FFT, a, b []float64) []float64 {
	ca := fft.Coefficients(nil, a)
	cb := fft.Coefficients(nil, b)
	prod := make([]complex128, len(ca))
	for i := range ca {
		prod[i] = ca[i] * complex(real(cb[i]), -imag(cb[i]))
	}
	return fft.Sequence(nil, prod)
}

// tauScore computes tau[0] - (sum of |tau[i] - tau[N-i]| for i in [1,
// offsetWindow])/offsetWindow, the shared raw-score formula used by
// both autocorrelation and cross-correlation.
func tauScore(tau []float64) float64 {
	n := len(tau)
	limit := offsetWindow
	if limit > n-1 {
		limit = n - 1
	}
	if limit < 1 {
		return tau[0]
	}
	sum := 0.0
	for i := 1; i <= limit; i++ {
		j := n - i
		sum += math.Abs(tau[i] - tau[j])
	}
	return tau[0] - sum/float64(offsetWindow)
}

// Autocorrelation computes spectrum1 for sp and returns its
// self-normalization constant: a candidate cross-correlated against
// spectrum1 itself and then divided by this constant always scores
// exactly 1.
func Autocorrelation(sp spectrum.Spectrum, params config.Params) (buf []float64, norm float64) {
	n := BufferSize(params.PrecursorMass)
	buf = make([]float64, n)
	buildObserved(buf, sp, params.FragmentToleranceDa)
	fft := fourier.NewFFT(n)
	tau := autocorrelate(fft, buf)
	return buf, tauScore(tau)
}

// Score cross-correlates a candidate's synthesized theoretical spectrum
// against the observed spectrum1 and normalizes by autocorrNorm.
func Score(observed []float64, autocorrNorm float64, residues []rune, tables masstab.Tables, params config.Params) float64 {
	n := len(observed)
	candidate := make([]float64, n)
	synthesizeCandidate(candidate, residues, tables, params)

	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	water := 2*proton + masstab.MonoisotopicElementMass[masstab.Oxygen]
	ammonia := masstab.MonoisotopicElementMass[masstab.Nitrogen] + 3*proton
	precursorMZ := params.PrecursorMass + proton
	const precursorMargin = 1.0
	wipeWindow(candidate, precursorMZ-precursorMargin, precursorMZ+precursorMargin)
	wipeWindow(candidate, precursorMZ-water-precursorMargin, precursorMZ-water+precursorMargin)
	wipeWindow(candidate, precursorMZ-ammonia-precursorMargin, precursorMZ-ammonia+precursorMargin)
	if params.ScanRangeLowMZ > 0 {
		wipeWindow(candidate, 0, params.ScanRangeLowMZ)
	}
	if params.ScanRangeHighMZ > 0 {
		wipeWindow(candidate, params.ScanRangeHighMZ, float64(n)*BinWidthDa)
	}

	fft := fourier.NewFFT(n)
	tau := crossCorrelate(fft, observed, candidate)
	raw := tauScore(tau)
	if autocorrNorm == 0 {
		return 0
	}
	return raw / autocorrNorm
}
