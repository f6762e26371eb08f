package enumerate

import (
	"sort"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
)

// proposal is one candidate extension of a single beam member, scored
// with its penalty multiplier already applied.
type proposal struct {
	base      Candidate
	step      Step
	targetIdx int
	rawNode   int
	penalty   float64
	isGap     bool
}

func (p proposal) score() float64 { return float64(p.rawNode) * p.penalty }

func (p proposal) extend() Candidate {
	steps := make([]Step, len(p.base.Steps)+1)
	copy(steps, p.base.Steps)
	steps[len(steps)-1] = p.step

	gapCount := p.base.GapCount
	if p.isGap {
		gapCount++
	}

	return Candidate{
		Steps:     steps,
		NodeValue: p.targetIdx,
		Score:     p.base.Score + int(p.score()),
		GapCount:  gapCount,
		State:     extending,
	}
}

// proposeExtensions generates every legal next step for one beam
// member.
func proposeExtensions(g *graph.Graph, gaps gaplist.List, oneEdge map[int]bool, params config.Params, cand Candidate) []proposal {
	var proposals []proposal
	singleTargets := make(map[int]bool)

	for _, single := range gaps.Singles {
		if single.Mass == 0 {
			continue
		}
		target := cand.NodeValue + single.Mass
		if !g.InBounds(target) {
			continue
		}
		if nodeValueAt(g, target) == 0 {
			continue
		}
		singleTargets[target] = true
		proposals = append(proposals, proposal{
			base:      cand,
			step:      Step{Residues: residueSymbols(single.Residues), GapMass: single.Mass},
			targetIdx: target,
			rawNode:   nodeValueAt(g, target),
			penalty:   SingleResiduePenalty,
			isGap:     false,
		})
	}

	ionTrap := params.Template == config.IonTrapTryptic
	precursorScaled := g.Tables.Scale.Round(params.PrecursorMass)

	for _, pair := range gaps.Pairs {
		if pair.Mass == 0 {
			continue
		}
		target := cand.NodeValue + pair.Mass
		if !g.InBounds(target) {
			continue
		}
		if singleTargets[target] {
			continue // rule 2: already reachable by a single-residue jump
		}
		if nodeValueAt(g, target) == 0 && !ionTrapException(ionTrap, params, target, precursorScaled) {
			continue
		}

		proposals = append(proposals, proposal{
			base:      cand,
			step:      Step{Residues: residueSymbols(pair.Residues), GapMass: pair.Mass, IsGap: true},
			targetIdx: target,
			rawNode:   nodeValueAt(g, target),
			penalty:   gapPenalty(pair, cand.NodeValue, target, oneEdge, precursorScaled),
			isGap:     true,
		})
	}

	return proposals
}

func nodeValueAt(g *graph.Graph, idx int) int {
	v := g.Node[idx]
	if v == graph.SuperNode {
		return 1 // a super-node always carries enough weight to be taken
	}
	return int(v)
}

// ionTrapException allows a two-residue gap with zero evidence near the
// C-terminus on ion-trap data above 1200 Da, where the y2 region is
// presumed unobservable.
func ionTrapException(ionTrap bool, params config.Params, target, precursorScaled int) bool {
	if !ionTrap || params.PrecursorMass <= 1200 {
		return false
	}
	nearCTerm := precursorScaled-target < precursorScaled/20
	return nearCTerm
}

// gapPenalty resolves the two-residue-gap penalty decision table.
func gapPenalty(pair gaplist.Entry, fromIdx, toIdx int, oneEdge map[int]bool, precursorScaled int) float64 {
	if pair.ContainsProline() {
		return ProlinePenalty
	}
	if spansPrecursorRegion(fromIdx, toIdx, precursorScaled) {
		return PrecursorPenalty
	}
	fromEdge := oneEdge[fromIdx]
	toEdge := oneEdge[toIdx]
	switch {
	case fromEdge && toEdge:
		return EdgeEdgePenalty
	case fromEdge || toEdge:
		return NodeEdgePenalty
	default:
		return NodeNodePenalty
	}
}

// spansPrecursorRegion reports whether a gap crosses the doubly-charged
// precursor m/z region.
func spansPrecursorRegion(fromIdx, toIdx, precursorScaled int) bool {
	doublyCharged := precursorScaled / 2
	return fromIdx <= doublyCharged && toIdx >= doublyCharged
}

// sortProposals orders single-residue extensions before two-residue
// gaps, and by descending score within each category.
func sortProposals(proposals []proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].isGap != proposals[j].isGap {
			return !proposals[i].isGap // singles first
		}
		return proposals[i].score() > proposals[j].score()
	})
}

// applyThreshold keeps the proposals scoring at least extThresh times
// the maximum score, at most width of them, in their current order.
func applyThreshold(proposals []proposal, extThresh float64, width int) []proposal {
	if len(proposals) == 0 {
		return nil
	}
	maxScore := proposals[0].score()
	for _, p := range proposals {
		if p.score() > maxScore {
			maxScore = p.score()
		}
	}

	var kept []proposal
	for _, p := range proposals {
		if p.score() >= extThresh*maxScore {
			kept = append(kept, p)
		}
	}
	if len(kept) > width {
		kept = kept[:width]
	}
	return kept
}
