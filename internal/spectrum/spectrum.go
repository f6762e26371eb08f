/*
Package spectrum holds the normalized peak data model and the Reader
interface that every file-format collaborator
(internal/spectrum/format) implements.

Peaks are owned in a contiguous, m/z-ascending slice, which is both
simpler to free (nothing to do - the GC has it) and lets the scorers
(PeaksInWindow, used by internal/scoring/intensity) binary-search for a
peak's neighbourhood rather than walk a list.
*/
package spectrum

import "sort"

// Peak is one centroided fragment-ion observation.
type Peak struct {
	MZ                float64
	RawIntensity      int
	NormalizedIntensity float64
}

// Spectrum is one normalized MS/MS spectrum: an m/z-ascending Peaks
// slice plus the precursor data needed to seed the graph.
type Spectrum struct {
	Peaks         []Peak
	PrecursorMZ   float64
	Charge        int
	PrecursorMass float64 // (M+H) if supplied directly by the source format, else 0
}

// SortByMZ restores the m/z-ascending invariant the peak sequence
// requires. Readers call this once after parsing; it is also
// safe to call redundantly, so callers that merge multiple sources can
// call it again without checking.
func (s *Spectrum) SortByMZ() {
	sort.Slice(s.Peaks, func(i, j int) bool { return s.Peaks[i].MZ < s.Peaks[j].MZ })
}

// Normalize rescales RawIntensity into NormalizedIntensity as a
// fraction of the spectrum's maximum intensity, the form the intensity
// and cross-correlation scorers consume.
func (s *Spectrum) Normalize() {
	max := 0
	for _, p := range s.Peaks {
		if p.RawIntensity > max {
			max = p.RawIntensity
		}
	}
	if max == 0 {
		return
	}
	for i := range s.Peaks {
		s.Peaks[i].NormalizedIntensity = float64(s.Peaks[i].RawIntensity) / float64(max)
	}
}

// IndexNear returns the index of the first peak with MZ >= mz (a lower
// bound, via binary search over the m/z-ascending invariant), suitable
// for callers that then scan forward/backward within a tolerance
// window.
func (s *Spectrum) IndexNear(mz float64) int {
	return sort.Search(len(s.Peaks), func(i int) bool { return s.Peaks[i].MZ >= mz })
}

// PeaksInWindow returns the peaks whose m/z falls in [lo, hi], inclusive.
func (s *Spectrum) PeaksInWindow(lo, hi float64) []Peak {
	start := s.IndexNear(lo)
	end := start
	for end < len(s.Peaks) && s.Peaks[end].MZ <= hi {
		end++
	}
	return s.Peaks[start:end]
}
