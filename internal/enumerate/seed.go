package enumerate

import (
	"sort"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/masstab"
)

// seedJump is one candidate first extension: one, two or three residues
// from the N-terminal seed to a non-zero node.
type seedJump struct {
	index     int
	residues  []masstab.Residue
	mass      int
	nodeValue int
	isSuper   bool
}

// seedBeam builds the initial beam: the first jump from N_term by one,
// two, or three residues, consolidating
// extensions within fragment tolerance of one another and keeping the
// top maxExtNum whose score >= extThresh * max_extension_score (or, if
// the maximum extension lands on a super-node, bypassing the
// threshold).
func seedBeam(g *graph.Graph, gaps gaplist.List, params config.Params) []Candidate {
	jumps := collectSeedJumps(g, gaps)
	if len(jumps) == 0 {
		return nil
	}
	jumps = consolidate(jumps, g.Tables.Scale.Round(params.FragmentToleranceDa))

	sort.Slice(jumps, func(i, j int) bool { return jumps[i].nodeValue > jumps[j].nodeValue })

	maxScore := jumps[0].nodeValue
	bypassThreshold := jumps[0].isSuper

	limit := params.MaxExtNum
	if limit > len(jumps) {
		limit = len(jumps)
	}

	beam := make([]Candidate, 0, limit)
	for _, j := range jumps[:limit] {
		if !bypassThreshold && float64(j.nodeValue) < params.ExtThresh*float64(maxScore) {
			continue
		}
		step := Step{Residues: residueSymbols(j.residues), GapMass: j.mass, IsGap: len(j.residues) > 1}
		beam = append(beam, Candidate{
			Steps:     []Step{step},
			NodeValue: j.index,
			Score:     j.nodeValue,
			GapCount:  0,
			State:     seeded,
		})
	}
	return beam
}

func collectSeedJumps(g *graph.Graph, gaps gaplist.List) []seedJump {
	var jumps []seedJump
	addJumpsFrom(g, gaps.Singles, &jumps)
	addJumpsFrom(g, gaps.Pairs, &jumps)
	addJumpsFrom(g, gaps.Triples, &jumps)
	return jumps
}

func addJumpsFrom(g *graph.Graph, entries []gaplist.Entry, jumps *[]seedJump) {
	for _, e := range entries {
		if e.Mass == 0 {
			continue
		}
		idx := g.NTerm + e.Mass
		if !g.InBounds(idx) {
			continue
		}
		total := int(g.EvidenceN[idx]) + int(g.EvidenceC[idx])
		isSuper := g.EvidenceN[idx] == graph.SuperNode
		if total == 0 && !isSuper {
			continue
		}
		*jumps = append(*jumps, seedJump{index: idx, residues: e.Residues, mass: e.Mass, nodeValue: total, isSuper: isSuper})
	}
}

// consolidate merges jumps landing within tol of one another, averaging
// their index and keeping the higher score.
func consolidate(jumps []seedJump, tol int) []seedJump {
	sort.Slice(jumps, func(i, j int) bool { return jumps[i].index < jumps[j].index })

	var merged []seedJump
	for _, j := range jumps {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			if abs(j.index-last.index) <= tol {
				avgIndex := (last.index + j.index) / 2
				if j.nodeValue > last.nodeValue {
					*last = j
				}
				last.index = avgIndex
				continue
			}
		}
		merged = append(merged, j)
	}
	return merged
}

func residueSymbols(residues []masstab.Residue) []rune {
	symbols := make([]rune, len(residues))
	for i, r := range residues {
		symbols[i] = masstab.ResidueSymbol(r)
	}
	return symbols
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
