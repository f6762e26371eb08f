package graph

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Build runs the full graph-construction pipeline in order: allocate
// and seed, project peaks, remove silly nodes, boost the known
// cleavage site, and (optionally) overlay Edman and tag data. It is
// the single entry point internal/engine calls.
func Build(tables masstab.Tables, params config.Params, gaps gaplist.List, sp spectrum.Spectrum, edman []EdmanCycle) (*Graph, TagOverlayResult) {
	g := New(tables, params, params.PrecursorMass)

	Project(g, sp, params)
	RemoveSillyNodes(g, gaps)

	ionTrap := params.Template == config.IonTrapTryptic
	BoostKnownCleavage(g, params.Proteolysis, ionTrap)

	if len(edman) > 0 {
		ApplyEdman(g, edman, params.IonWeights.Total())
	}

	var tagResult TagOverlayResult
	if params.Tag.Active {
		tagMassDa := 0.0
		for _, r := range params.Tag.Sequence {
			if residue, ok := gaplist.SymbolToResidue(r); ok {
				tagMassDa += float64(tables.ResidueMass[residue]) / float64(tables.Scale)
			}
		}
		tagMassScaled := tables.Scale.Round(tagMassDa)
		lowYScaled := tables.Scale.Round(params.Tag.LowYMass)
		highYScaled := tables.Scale.Round(params.Tag.HighYMass)
		tolScaled := tables.Scale.Round(params.FragmentToleranceDa)
		tagResult = ApplyTag(g, lowYScaled, tagMassScaled, highYScaled, tolScaled, params.Tag.CutoffPercent)
	}

	return g, tagResult
}
