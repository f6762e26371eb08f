package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

func testTables() masstab.Tables {
	return masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
}

func TestNewSeedsTermini(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 246.157
	g := New(tables, params, params.PrecursorMass)

	assert.Equal(t, int8(cNodeSeed), g.EvidenceN[g.NTerm])
	assert.Equal(t, int8(nNodeSeed), g.EvidenceC[g.CLo])
}

// TestGraphSymmetryUnderComplementarity checks that a peak interpreted
// as a y ion lands at the same node as a hypothetical b ion at
// (M + 2H - p).
func TestGraphSymmetryUnderComplementarity(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 246.157 // AR: Ala + Arg + water
	params.ChargeState = 1

	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	yIonMZ := params.PrecursorMass + 2*proton - 72.04439 // y ion complementary to a b1 at 72.04

	g := New(tables, params, params.PrecursorMass)
	sp := spectrum.Spectrum{Peaks: []spectrum.Peak{{MZ: yIonMZ, RawIntensity: 100, NormalizedIntensity: 1}}}
	Project(g, sp, params)

	expectedIndex := tables.Scale.Round(72.04439)
	nonZero := false
	tol := tables.Scale.Round(params.FragmentToleranceDa)
	for i := expectedIndex - tol; i <= expectedIndex+tol; i++ {
		if i >= 0 && i < len(g.EvidenceC) && g.EvidenceC[i] != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero, "y-ion projection should land on the complementary b-axis node")
}

func TestAddEvidenceSaturates(t *testing.T) {
	arr := make([]int8, 10)
	AddEvidence(arr, 5, 100)
	AddEvidence(arr, 5, 100) // 200 overflows int8 range
	assert.Equal(t, int8(SaturationSentinel), arr[5])
}

func TestRemoveSillyNodesZeroesUnreachable(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 500
	g := New(tables, params, params.PrecursorMass)
	gaps := gaplist.Build(tables, nil, 0)

	noise := g.NTerm + 1 // not a valid 1/2/3-residue sum this close to NTerm
	g.EvidenceN[noise] = 5

	RemoveSillyNodes(g, gaps)
	assert.Zero(t, g.EvidenceN[noise])
}

func TestBoostKnownCleavageTrypsin(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 500
	params.Proteolysis = config.Trypsin
	g := New(tables, params, params.PrecursorMass)

	BoostKnownCleavage(g, params.Proteolysis, false)
	index := g.CLo - tables.ResidueMass[masstab.Lys]
	assert.NotZero(t, g.Node[index])
}

func TestTagExcisionShiftsIndices(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 600
	g := New(tables, params, params.PrecursorMass)
	// Seed some evidence at the tag's high boundary so ApplyTag finds it reachable.
	tolScaled := tables.Scale.Round(params.FragmentToleranceDa)
	tagMassScaled := tables.Scale.Round(227.1) // E+L
	lowYScaled := tables.Scale.Round(150.0)
	tagHighNode := g.CHi - lowYScaled
	g.EvidenceN[tagHighNode] = 5

	before := g.Len()
	result := ApplyTag(g, lowYScaled, tagMassScaled, lowYScaled+tagMassScaled, tolScaled, 50)
	assert.True(t, result.Applied)
	assert.Equal(t, before, g.Len()) // array length is unchanged; tail is zero-padded
}

func TestTagRejectedWhenBoundaryIonCurrentBelowCutoff(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 600
	g := New(tables, params, params.PrecursorMass)

	tolScaled := tables.Scale.Round(params.FragmentToleranceDa)
	tagMassScaled := tables.Scale.Round(227.1) // E+L
	lowYScaled := tables.Scale.Round(150.0)
	tagHighNode := g.CHi - lowYScaled
	tagLowNode := tagHighNode - tagMassScaled

	// A single small boundary hit, swamped by heavy evidence in the
	// middle of the span, should fail a strict cutoff.
	g.EvidenceN[tagHighNode] = 1
	mid := (tagLowNode + tagHighNode) / 2
	g.EvidenceN[mid] = 100

	result := ApplyTag(g, lowYScaled, tagMassScaled, lowYScaled+tagMassScaled, tolScaled, 50)
	assert.False(t, result.Applied)
}

func TestTagRejectedWhenHighYDisagreesWithTagMass(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 600
	g := New(tables, params, params.PrecursorMass)

	tolScaled := tables.Scale.Round(params.FragmentToleranceDa)
	tagMassScaled := tables.Scale.Round(227.1) // E+L
	lowYScaled := tables.Scale.Round(150.0)
	tagHighNode := g.CHi - lowYScaled
	g.EvidenceN[tagHighNode] = 5

	// highYScaled here implies a boundary far from the one the tag's own
	// residue mass computes, well beyond tolerance.
	badHighYScaled := lowYScaled + tagMassScaled + 10*tolScaled

	result := ApplyTag(g, lowYScaled, tagMassScaled, badHighYScaled, tolScaled, 50)
	assert.False(t, result.Applied)
}
