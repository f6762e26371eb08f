package graph

import (
	"github.com/ksantone/lutefisk/internal/gaplist"
)

// EdmanCycle is one cycle of Edman degradation data: the set of residue
// symbols observed at that cycle ('X' stands for "any residue" and is
// expanded over every possibility).
type EdmanCycle struct {
	Symbols []rune
}

// ApplyEdman overlays evidence at every graph index reachable by some
// residue-mass permutation consistent with each prefix of cycles: for
// each prefix sum that lands on a non-zero evidence total, totalIonWeight/2
// is added to both evidence arrays; a prefix landing on a zero only gets
// a presence marker
//
// The permutations are expanded cycle by cycle as a set of distinct
// prefix sums, in a flat loop with no recursion.
func ApplyEdman(g *Graph, cycles []EdmanCycle, totalIonWeight int) {
	prefixSums := map[int]bool{0: true}

	for _, cycle := range cycles {
		residueMasses := make([]int, 0, len(cycle.Symbols))
		for _, sym := range cycle.Symbols {
			if sym == 'X' {
				for r := 0; r < len(g.Tables.ResidueMass); r++ {
					if g.Tables.ResidueMass[r] != 0 {
						residueMasses = append(residueMasses, g.Tables.ResidueMass[r])
					}
				}
				continue
			}
			if residue, ok := gaplist.SymbolToResidue(sym); ok {
				residueMasses = append(residueMasses, g.Tables.ResidueMass[residue])
			}
		}

		next := make(map[int]bool)
		for sum := range prefixSums {
			for _, m := range residueMasses {
				if m == 0 {
					continue
				}
				next[sum+m] = true
			}
		}
		prefixSums = next

		for sum := range prefixSums {
			index := g.NTerm + sum
			if !g.inBounds(index) {
				continue
			}
			total := int(g.EvidenceN[index]) + int(g.EvidenceC[index])
			if total != 0 {
				AddEvidence(g.EvidenceN, index, totalIonWeight/2)
				AddEvidence(g.EvidenceC, index, totalIonWeight/2)
			} else {
				g.EvidenceN[index] = edmanZeroMarker
			}
		}
	}
}

// edmanZeroMarker flags an Edman-consistent position that had no prior
// evidence, distinguishing "consistent with Edman data but
// uncorroborated" from ordinary silence.
const edmanZeroMarker = 1
