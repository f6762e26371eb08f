package enumerate

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/masstab"
)

// landsInTerminalBand reports whether nodeValue + terminalResidue falls
// within the graph's C-terminal seed band for any configured terminal
// residue.
func landsInTerminalBand(g *graph.Graph, terminals []masstab.Residue, nodeValue int) bool {
	_, _, ok := matchingTerminalResidue(g, terminals, nodeValue)
	return ok
}

// tryPromote checks the four promotion conditions and, if all pass,
// appends the terminal residue and returns the completed candidate.
func tryPromote(g *graph.Graph, terminals []masstab.Residue, params config.Params, maxGapNum int, tag graph.TagOverlayResult, cand Candidate) (Completed, bool) {
	if cand.GapCount > maxGapNum {
		return Completed{}, false
	}

	// matchingTerminalResidue already confirms nodeValue+terminalMass lands
	// in [g.CLo, g.CHi], the precursor-mass +/- peptideErr band the graph
	// was seeded with.
	terminalResidue, terminalMass, ok := matchingTerminalResidue(g, terminals, cand.NodeValue)
	if !ok {
		return Completed{}, false
	}

	finalMass := cand.NodeValue + terminalMass
	restored := tag.Restore(finalMass)

	if tag.Applied && !tagLiesOnPath(cand, tag) {
		return Completed{}, false
	}

	if !presentResiduesWitnessed(cand, params.PresentResidues, params.Tag) {
		return Completed{}, false
	}

	steps := make([]Step, len(cand.Steps)+1)
	copy(steps, cand.Steps)
	steps[len(steps)-1] = Step{Residues: []rune{masstab.ResidueSymbol(terminalResidue)}, GapMass: terminalMass}

	residues := stepsToResidues(steps)

	return Completed{
		Residues:   residues,
		Steps:      steps,
		Score:      cand.Score,
		GapCount:   cand.GapCount,
		ScaledMass: restored,
	}, true
}

func matchingTerminalResidue(g *graph.Graph, terminals []masstab.Residue, nodeValue int) (masstab.Residue, int, bool) {
	for _, r := range terminals {
		mass := g.Tables.ResidueMass[r]
		if mass == 0 {
			continue
		}
		target := nodeValue + mass
		if target >= g.CLo && target <= g.CHi {
			return r, mass, true
		}
	}
	return 0, 0, false
}

// tagLiesOnPath reports whether the tag's excised super-node boundary
// was actually crossed by this candidate's path - a cheap proxy is that
// the candidate's final mass exceeds the tag's low index, since the
// graph was excised at that point for every enumerated path.
func tagLiesOnPath(cand Candidate, tag graph.TagOverlayResult) bool {
	return cand.NodeValue > tag.LowIndex || tag.LowIndex == 0
}

// presentResiduesWitnessed checks the fourth promotion condition: every
// configured present residue appears as a single step, inside a
// two-residue gap, or inside the tag sequence.
func presentResiduesWitnessed(cand Candidate, present []rune, tag config.Tag) bool {
	if len(present) == 0 {
		return true
	}
	seen := make(map[rune]bool)
	for _, step := range cand.Steps {
		for _, sym := range step.Residues {
			seen[sym] = true
		}
	}
	if tag.Active {
		for _, sym := range tag.Sequence {
			seen[sym] = true
		}
	}
	for _, p := range present {
		if !seen[p] {
			return false
		}
	}
	return true
}

func stepsToResidues(steps []Step) []rune {
	var residues []rune
	for _, s := range steps {
		residues = append(residues, s.Residues...)
	}
	return residues
}
