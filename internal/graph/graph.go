/*
Package graph converts observed peaks into a scored mass graph: three
dense integer arrays indexed by scaled b-ion mass, filled in by
projecting each peak under every fragment-ion hypothesis a
fragmentation template recognizes.

The arrays are signed bytes with explicit saturation handling; a sum
that would overflow the [-127, 127] range is clamped to a sentinel
value instead, since that clamp-to-overflow behaviour is part of the
scored contract downstream scorers depend on, not an incidental
storage detail.
*/
package graph

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/masstab"
)

// Evidence clamp bounds and the overflow sentinel.
const (
	EvidenceMin       = -127
	EvidenceMax       = 127
	SaturationSentinel = 63
)

// SuperNode marks a tag-overlay terminal position: enumeration must
// land on or pass through it.
const SuperNode = -1

// Graph holds the three node-evidence arrays, indexed by scaled b-ion
// mass.
type Graph struct {
	EvidenceN []int8
	EvidenceC []int8
	Node      []int8

	NTerm int // index of the N-terminal seed node
	CLo   int // low end of the C-terminal seed band
	CHi   int // high end of the C-terminal seed band

	Tables masstab.Tables
}

// margin widens the array past the nominal precursor mass so that
// wide-tolerance painting near the C-terminus does not index out of
// bounds.
const margin = 50.0

// New allocates a Graph sized for a peptide of at most maxPeptideMassDa
// and seeds the N-terminal and C-terminal nodes.
func New(tables masstab.Tables, params config.Params, maxPeptideMassDa float64) *Graph {
	length := int(float64(tables.Scale) * (maxPeptideMassDa + margin) * 1.1)
	if length < 1 {
		length = 1
	}
	g := &Graph{
		EvidenceN: make([]int8, length),
		EvidenceC: make([]int8, length),
		Node:      make([]int8, length),
		Tables:    tables,
	}

	nTerm := tables.Scale.Round(params.ModifiedNTermMass)
	g.NTerm = nTerm
	g.seedAt(nTerm, cNodeSeed)

	cTermMono := tables.Scale.Round(params.PrecursorMass - params.ModifiedCTermMass)
	switchScaled := tables.Scale.Round(params.MonoToAvSwitchDa)
	cTerm := masstab.MonoToAvScaled(cTermMono, switchScaled, tables.Scale)

	tolScaled := tables.Scale.Round(params.PeptideErrDa)
	g.CLo = cTerm - tolScaled
	g.CHi = cTerm + tolScaled
	if g.CLo < 0 {
		g.CLo = 0
	}
	if g.CHi >= length {
		g.CHi = length - 1
	}
	for i := g.CLo; i <= g.CHi; i++ {
		g.seedAt(i, nNodeSeed)
	}

	return g
}

// cNodeSeed and nNodeSeed are the small positive seed values placed at
// the initial N-terminal and C-terminal nodes (both 10).
const (
	cNodeSeed = 10
	nNodeSeed = 10
)

func (g *Graph) seedAt(index int, value int8) {
	if index < 0 || index >= len(g.EvidenceN) {
		return
	}
	g.EvidenceN[index] = value
	g.EvidenceC[index] = value
}

// AddEvidence paints an additive weight into the given evidence array
// (EvidenceN or EvidenceC) at index, applying the clamp-and-saturate
// rule: a sum that would leave [-127, 127] is instead set to the
// sentinel 63.
func AddEvidence(arr []int8, index int, weight int) {
	if index < 0 || index >= len(arr) {
		return
	}
	sum := int(arr[index]) + weight
	switch {
	case sum > EvidenceMax || sum < EvidenceMin:
		arr[index] = SaturationSentinel
	default:
		arr[index] = int8(sum)
	}
}

// inBounds reports whether index is a valid position in the graph's
// arrays.
func (g *Graph) inBounds(index int) bool {
	return index >= 0 && index < len(g.EvidenceN)
}

// InBounds is the exported form of inBounds for callers outside the
// package (internal/summednode, internal/enumerate).
func (g *Graph) InBounds(index int) bool {
	return g.inBounds(index)
}

// Len returns the number of indexable positions in the graph.
func (g *Graph) Len() int { return len(g.EvidenceN) }
