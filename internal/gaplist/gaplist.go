/*
Package gaplist enumerates the single- and two-residue scaled mass jumps
the enumerator is allowed to take, honoring present/absent residue
constraints and the coarse Ile/Leu and Gln/Lys folding that applies when
the fragment tolerance is too loose to tell isobaric residues apart.
*/
package gaplist

import (
	"sort"

	"github.com/ksantone/lutefisk/internal/masstab"
)

// Entry is one allowed gap: a scaled mass together with the residue(s)
// that sum to it. Single-residue entries have exactly one element in
// Residues; two-residue entries have two.
type Entry struct {
	Mass     int
	Residues []masstab.Residue
}

// List holds the allowed mass jumps: positions 0..R-1 are the
// (possibly absent, possibly folded) canonical residues; the rest are
// unique two-residue sums.
type List struct {
	Singles []Entry // index-aligned with masstab.Residue, zero Mass => absent
	Pairs   []Entry // unique two-residue sums, ascending by mass
	Triples []Entry // used only to prime the first extension step
}

// Build derives a List from scaled residue masses and the absent
// residue constraints, folding Ile onto Leu and Gln onto
// Lys when the fragment tolerance (expressed in scaled mass units) is
// too coarse to separate them.
func Build(tables masstab.Tables, absent []rune, coarseToleranceScaled int) List {
	residueMass := tables.ResidueMass // copy; we may zero entries locally

	if coarseToleranceScaled > 0 {
		if abs(residueMass[masstab.Ile]-residueMass[masstab.Leu]) <= coarseToleranceScaled {
			residueMass[masstab.Ile] = residueMass[masstab.Leu]
		}
		if abs(residueMass[masstab.Gln]-residueMass[masstab.Lys]) <= coarseToleranceScaled {
			residueMass[masstab.Gln] = residueMass[masstab.Lys]
		}
	}

	for _, r := range absent {
		if idx, ok := symbolToResidue[r]; ok {
			residueMass[idx] = 0
		}
	}

	list := List{Singles: make([]Entry, masstab.ResidueCount)}
	for r := 0; r < masstab.ResidueCount; r++ {
		list.Singles[r] = Entry{Mass: residueMass[r], Residues: []masstab.Residue{masstab.Residue(r)}}
	}

	seen := make(map[int]bool)
	for i := 0; i < masstab.ResidueCount; i++ {
		if residueMass[i] == 0 {
			continue
		}
		for j := i; j < masstab.ResidueCount; j++ {
			if residueMass[j] == 0 {
				continue
			}
			sum := residueMass[i] + residueMass[j]
			if seen[sum] {
				continue
			}
			seen[sum] = true
			list.Pairs = append(list.Pairs, Entry{Mass: sum, Residues: []masstab.Residue{masstab.Residue(i), masstab.Residue(j)}})
		}
	}
	sort.Slice(list.Pairs, func(a, b int) bool { return list.Pairs[a].Mass < list.Pairs[b].Mass })

	seenTriple := make(map[int]bool)
	for i := 0; i < masstab.ResidueCount; i++ {
		if residueMass[i] == 0 {
			continue
		}
		for j := i; j < masstab.ResidueCount; j++ {
			if residueMass[j] == 0 {
				continue
			}
			for k := j; k < masstab.ResidueCount; k++ {
				if residueMass[k] == 0 {
					continue
				}
				sum := residueMass[i] + residueMass[j] + residueMass[k]
				if seenTriple[sum] {
					continue
				}
				seenTriple[sum] = true
				list.Triples = append(list.Triples, Entry{
					Mass:     sum,
					Residues: []masstab.Residue{masstab.Residue(i), masstab.Residue(j), masstab.Residue(k)},
				})
			}
		}
	}
	sort.Slice(list.Triples, func(a, b int) bool { return list.Triples[a].Mass < list.Triples[b].Mass })

	return list
}

// symbolToResidue maps one-letter amino acid codes to masstab.Residue
// indices, used to apply PresentResidues/AbsentResidues constraints
// supplied as letters in configuration.
var symbolToResidue = map[rune]masstab.Residue{
	'A': masstab.Ala, 'R': masstab.Arg, 'N': masstab.Asn, 'D': masstab.Asp,
	'C': masstab.Cys, 'E': masstab.Glu, 'Q': masstab.Gln, 'G': masstab.Gly,
	'H': masstab.His, 'I': masstab.Ile, 'L': masstab.Leu, 'K': masstab.Lys,
	'M': masstab.Met, 'F': masstab.Phe, 'P': masstab.Pro, 'S': masstab.Ser,
	'T': masstab.Thr, 'W': masstab.Trp, 'Y': masstab.Tyr, 'V': masstab.Val,
}

// SymbolToResidue exposes the letter->residue mapping for callers
// outside the package (the graph builder's Edman and tag overlays, the
// intensity and xcorr scorers, and rescoring use it).
func SymbolToResidue(symbol rune) (masstab.Residue, bool) {
	r, ok := symbolToResidue[symbol]
	return r, ok
}

// ContainsProline reports whether a two-residue gap entry includes
// proline, used by the proline-gap rules in the summed-node scorer and
// enumerator.
func (e Entry) ContainsProline() bool {
	for _, r := range e.Residues {
		if r == masstab.Pro {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
