/*
Package summednode implements the summed-node scorer: starting from the
C-terminal seed node(s), walk backward (toward the
N-terminus) by single- and double-residue jumps, accumulate bonus
scores into the graph's Node array, and record the one-edge-node set
used later as two-residue bridge targets during forward enumeration.
*/
package summednode

import (
	"sort"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
)

// TotalIonValMultiplier scales the both-termini bonus applied when an
// edge's two endpoints both carry evidence from both termini.
const TotalIonValMultiplier = 1.0

// Result holds the scorer's two outputs: the graph.Node array is
// mutated in place, and OneEdgeNodes is the ascending, deduplicated set
// of nodes the backward walk reached from a seed but could not extend
// any further.
type Result struct {
	OneEdgeNodes []int
}

// Run walks every C-terminal seed node backward through the gap list,
// filling g.Node and collecting the one-edge-node set. totalIonWeight is
// the same quantity internal/graph's Edman overlay uses.
func Run(g *graph.Graph, gaps gaplist.List, template config.FragmentationTemplate, totalIonWeight int) Result {
	oneEdge := make(map[int]bool)
	seedSign := false // alternates so each seed's positive scores can be told apart before final positive-ification

	for seed := g.CLo; seed <= g.CHi; seed++ {
		if !g.InBounds(seed) {
			continue
		}
		walkFromSeed(g, gaps, template, totalIonWeight, seed, oneEdge, seedSign)
		seedSign = !seedSign
	}

	positivify(g)
	restoreSuperNodes(g)

	overlayUnchainableStrongPeaks(g)

	nodes := make([]int, 0, len(oneEdge))
	for idx := range oneEdge {
		nodes = append(nodes, idx)
	}
	sort.Ints(nodes)
	return Result{OneEdgeNodes: dedupExtendible(g, gaps, nodes)}
}

// walkFromSeed performs one backward BFS/DFS pass from a single
// C-terminal seed node, writing bonus-scored values into g.Node and
// flagging unreachable-further positions as one-edge candidates.
func walkFromSeed(g *graph.Graph, gaps gaplist.List, template config.FragmentationTemplate, totalIonWeight int, seed int, oneEdge map[int]bool, negate bool) {
	visited := map[int]bool{seed: true}
	frontier := []int{seed}

	for len(frontier) > 0 {
		var next []int
		for _, cur := range frontier {
			extended := false

			for _, single := range gaps.Singles {
				if single.Mass == 0 {
					continue
				}
				target := cur - single.Mass
				if tryEdge(g, cur, target, single.Mass, totalIonWeight, negate, visited) {
					extended = true
					next = append(next, target)
				}
			}

			if template == config.TripleQuadTryptic || template == config.IonTrapTryptic {
				for _, pair := range gaps.Pairs {
					if !pair.ContainsProline() {
						continue
					}
					target := cur - pair.Mass
					if tryEdge(g, cur, target, pair.Mass, totalIonWeight, negate, visited) {
						extended = true
						next = append(next, target)
					}
				}
			}

			if !extended && cur != seed {
				oneEdge[cur] = true
			}
		}
		frontier = next
	}
}

// tryEdge scores the edge cur -> target if target carries evidence,
// returning whether the edge was taken.
func tryEdge(g *graph.Graph, cur, target, gapMass, totalIonWeight int, negate bool, visited map[int]bool) bool {
	if target < 0 || !g.InBounds(target) || visited[target] {
		return false
	}
	if g.EvidenceN[target] == 0 && g.EvidenceC[target] == 0 {
		return false
	}
	visited[target] = true

	bonus := 0
	curBothTermini := g.EvidenceN[cur] != 0 && g.EvidenceC[cur] != 0
	targetBothTermini := g.EvidenceN[target] != 0 && g.EvidenceC[target] != 0
	if curBothTermini && targetBothTermini {
		bonus = int(float64(totalIonWeight) * TotalIonValMultiplier)
	}

	score := int(g.EvidenceN[target]) + int(g.EvidenceC[target]) + bonus
	lengthFactor := (float64(gapMass)/float64(g.Tables.AvResidueMass) + 99) / 100
	score = int(float64(score) * lengthFactor)

	if negate {
		score = -score
	}
	if score > int(g.Node[target]) {
		g.Node[target] = clampInt8(score)
	}
	return true
}

func clampInt8(v int) int8 {
	if v > graph.EvidenceMax {
		return graph.SaturationSentinel
	}
	if v < graph.EvidenceMin {
		return int8(graph.EvidenceMin)
	}
	return int8(v)
}

// positivify flips every negative Node value positive as the final
// step: all scores end up non-negative.
func positivify(g *graph.Graph) {
	for i, v := range g.Node {
		if v < 0 && v != graph.SuperNode {
			g.Node[i] = -v
		}
	}
}

// restoreSuperNodes re-marks tag-overlay super-nodes as -1 after
// positive-ification clobbered the sign convention they share with
// ordinary negative scores.
func restoreSuperNodes(g *graph.Graph) {
	for i := range g.Node {
		if g.EvidenceN[i] == graph.SuperNode {
			g.Node[i] = graph.SuperNode
		}
	}
}

// overlayUnchainableStrongPeaks fills in positions with non-zero raw
// evidence that summed-node scoring never reached, but only where no
// reachable node already appears in the same contiguous evidence run -
// so strong, un-chainable peaks still contribute at high tolerance
// without masking a position the backward walk already explained.
func overlayUnchainableStrongPeaks(g *graph.Graph) {
	i := 0
	n := g.Len()
	for i < n {
		if g.EvidenceN[i] == 0 && g.EvidenceC[i] == 0 {
			i++
			continue
		}
		start := i
		runHasReachable := false
		for i < n && (g.EvidenceN[i] != 0 || g.EvidenceC[i] != 0) {
			if g.Node[i] != 0 {
				runHasReachable = true
			}
			i++
		}
		if !runHasReachable {
			for j := start; j < i; j++ {
				sum := int(g.EvidenceN[j]) + int(g.EvidenceC[j])
				g.Node[j] = clampInt8(sum)
			}
		}
	}
}

// dedupExtendible drops any one-edge candidate that turns out to be
// extensible by a single residue jump after all, restoring the
// invariant that one-edge nodes are never further extensible.
func dedupExtendible(g *graph.Graph, gaps gaplist.List, candidates []int) []int {
	kept := candidates[:0:0]
	for _, idx := range candidates {
		extensible := false
		for _, single := range gaps.Singles {
			if single.Mass == 0 {
				continue
			}
			target := idx - single.Mass
			if target >= 0 && g.InBounds(target) && (g.EvidenceN[target] != 0 || g.EvidenceC[target] != 0) {
				extensible = true
				break
			}
		}
		if !extensible {
			kept = append(kept, idx)
		}
	}
	return kept
}
