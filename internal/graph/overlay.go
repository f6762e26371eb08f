package graph

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
)

// RemoveSillyNodes zeroes every position below
// NTerm + 3*(smallest non-zero residue) that is not itself a valid sum
// of one, two, or three residues from NTerm: no residue combination can
// reach those positions, so any evidence sitting there is graph noise.
func RemoveSillyNodes(g *Graph, gaps gaplist.List) {
	smallest := smallestNonZero(gaps.Singles)
	if smallest == 0 {
		return
	}
	ceiling := g.NTerm + 3*smallest

	reachable := make(map[int]bool)
	reachable[g.NTerm] = true
	addSums(reachable, gaps.Singles, g.NTerm, ceiling)
	addSums(reachable, gaps.Pairs, g.NTerm, ceiling)
	addSums(reachable, gaps.Triples, g.NTerm, ceiling)

	for i := g.NTerm; i < ceiling && i < g.Len(); i++ {
		if i == g.NTerm || reachable[i] {
			continue
		}
		g.EvidenceN[i] = 0
		g.EvidenceC[i] = 0
	}
}

func smallestNonZero(entries []gaplist.Entry) int {
	smallest := 0
	for _, e := range entries {
		if e.Mass <= 0 {
			continue
		}
		if smallest == 0 || e.Mass < smallest {
			smallest = e.Mass
		}
	}
	return smallest
}

func addSums(reachable map[int]bool, entries []gaplist.Entry, base, ceiling int) {
	for _, e := range entries {
		target := base + e.Mass
		if target < ceiling {
			reachable[target] = true
		}
	}
}

// BoostKnownCleavage guarantees a minimum seed value at
// CTerm-residueMass for the proteolysis enzyme configured, even absent
// peak support: the y1 ion is often missing but the cleavage site is
// assumed to exist. For
// ion-trap data the boost is further multiplied by 4.
func BoostKnownCleavage(g *Graph, proteolysis config.Proteolysis, ionTrap bool) {
	boost := cNodeSeed
	if ionTrap {
		boost *= 4
	}
	for _, residue := range cleavageResidues(proteolysis) {
		residueMass := g.Tables.ResidueMass[residue]
		if residueMass == 0 {
			continue
		}
		index := g.CLo - residueMass
		if index < 0 || index >= g.Len() {
			continue
		}
		if int(g.Node[index]) < boost {
			g.Node[index] = int8(boost)
		}
		if int(g.EvidenceC[index]) == 0 {
			g.EvidenceC[index] = int8(boost)
		}
	}
}

// cleavageResidues maps a proteolysis enzyme to the residue(s) expected
// immediately before the C-terminus: trypsin cleaves
// after both Lys and Arg, the others after a single residue.
func cleavageResidues(p config.Proteolysis) []masstab.Residue {
	return CleavageResidues(p)
}

// CleavageResidues is the exported form of cleavageResidues, used by
// internal/enumerate to recognize the terminal residues a promotion
// candidate must append before completing.
func CleavageResidues(p config.Proteolysis) []masstab.Residue {
	switch p {
	case config.Trypsin:
		return []masstab.Residue{masstab.Lys, masstab.Arg}
	case config.LysC:
		return []masstab.Residue{masstab.Lys}
	case config.GluC:
		return []masstab.Residue{masstab.Glu}
	case config.AspN:
		return []masstab.Residue{masstab.Asp}
	default:
		return nil
	}
}
