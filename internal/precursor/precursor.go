/*
Package precursor implements ion-trap-style precursor mass refinement:
for spectra produced by instruments whose precursor isolation is
imprecise, a better peptide mass estimate is recovered by finding
complementary b/y peak pairs and exploiting the constraint
b + y = M + 2H.
*/
package precursor

import (
	"sort"

	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Refine looks for pairs of peaks (mzA, mzB) such that
// mzA + mzB ~= measuredMass + 2*proton, within toleranceDa, and returns
// the mass implied by the pair whose constituent intensities are
// largest: the heuristic for "most likely true precursor". If no
// complementary pair is found within tolerance, measuredMass is
// returned unchanged.
func Refine(sp spectrum.Spectrum, measuredMass, toleranceDa float64) float64 {
	if len(sp.Peaks) < 2 {
		return measuredMass
	}
	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	target := measuredMass + 2*proton

	type candidate struct {
		mass      float64
		intensity float64
	}
	var candidates []candidate

	peaks := append([]spectrum.Peak(nil), sp.Peaks...)
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].MZ < peaks[j].MZ })

	lo, hi := 0, len(peaks)-1
	for lo < hi {
		sum := peaks[lo].MZ + peaks[hi].MZ
		diff := sum - target
		switch {
		case diff < -toleranceDa:
			lo++
		case diff > toleranceDa:
			hi--
		default:
			candidates = append(candidates, candidate{
				mass:      sum - 2*proton,
				intensity: peaks[lo].NormalizedIntensity + peaks[hi].NormalizedIntensity,
			})
			lo++
			hi--
		}
	}

	if len(candidates) == 0 {
		return measuredMass
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.intensity > best.intensity {
			best = c
		}
	}
	return best.mass
}
