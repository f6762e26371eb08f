package xcorr

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
)

// Mock-spectrum attenuation factors.
const (
	badBAtt    = 0.05
	badYAtt    = 0.05
	aAtt       = 0.5
	intFragAtt = 0.1
	neutralLossSingle = 0.5
	neutralLossMulti  = 0.1
)

// synthesizeCandidate deposits residues' theoretical b, a, y and
// water/ammonia-loss ions into buf on the shared 0.5-Da grid. b ions
// below the precursor m/z get full weight, above it they are
// attenuated by badBAtt; y ions below the precursor m/z get full
// weight, above it they are attenuated by badYAtt; a ions are always
// attenuated by aAtt; neutral losses use the single- or
// multiply-charged factor; a bounded set of internal dipeptide
// fragments is attenuated by intFragAtt. Every deposited peak also
// gets +-1 (and, for a loose fragment tolerance, +-2) side lobes at
// 0.75x, matching buildObserved.
func synthesizeCandidate(buf []float64, residues []rune, tables masstab.Tables, params config.Params) {
	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	water := 2*proton + masstab.MonoisotopicElementMass[masstab.Oxygen]
	ammonia := masstab.MonoisotopicElementMass[masstab.Nitrogen] + 3*proton
	co := masstab.MonoisotopicElementMass[masstab.Carbon] + masstab.MonoisotopicElementMass[masstab.Oxygen]

	lossWeight := neutralLossSingle
	if params.ChargeState > 1 {
		lossWeight = neutralLossMulti
	}
	wideSideLobes := params.FragmentToleranceDa > 0.75

	place := func(massDa, weight float64) {
		bin := toBin(massDa)
		deposit(buf, bin, weight)
		depositSide(buf, bin, 1, 0.75*weight)
		if wideSideLobes {
			depositSide(buf, bin, 2, 0.75*weight)
		}
	}

	masses := make([]float64, 0, len(residues))
	cumulative := 0.0
	for i := 0; i < len(residues)-1; i++ {
		residue, ok := gaplist.SymbolToResidue(residues[i])
		if !ok {
			continue
		}
		cumulative += float64(tables.ResidueMass[residue]) / float64(tables.Scale)
		masses = append(masses, cumulative)

		bMass := cumulative + params.ModifiedNTermMass
		bWeight := 1.0
		if bMass > params.PrecursorMass/float64(params.ChargeState) {
			bWeight = badBAtt
		}
		place(bMass, bWeight)
		place(bMass-water, lossWeight)
		place(bMass-ammonia, lossWeight)
		place(bMass-co, aAtt)

		yMass := params.PrecursorMass + 2*proton - bMass
		yWeight := 1.0
		if yMass > params.PrecursorMass/float64(params.ChargeState) {
			yWeight = badYAtt
		}
		place(yMass, yWeight)
		place(yMass-water, lossWeight)
		place(yMass-ammonia, lossWeight)
	}

	for i := 1; i+1 < len(masses); i++ {
		internal := masses[i+1] - masses[i-1]
		place(internal, intFragAtt)
	}
}
