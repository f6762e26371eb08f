/*
Package enumerate implements a beam-search subsequence enumerator: it
walks the scored mass graph forward from the N-terminal seed, keeping a
bounded, score-sorted beam of partial sequences, and promotes
candidates whose mass, gap count, tag overlay and present-residue
witnesses all check out into a completed-sequence list.
*/
package enumerate

import (
	"context"
	"sort"
	"time"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
)

// Penalty multipliers applied to a proposed extension's target node
// value, by extension-decision category.
const (
	SingleResiduePenalty = 1.0
	EdgeEdgePenalty       = 0.9
	ProlinePenalty        = 0.75
	PrecursorPenalty       = 0.65
	NodeEdgePenalty        = 0.4
	NodeNodePenalty        = 0.2
)

// state is the per-partial-sequence state machine.
type state int

const (
	seeded state = iota
	extending
	completed
	dropped
)

// Step records one residue (or two-residue gap) consumed along a
// partial sequence's path.
type Step struct {
	Residues []rune
	GapMass  int // scaled mass consumed by this step
	IsGap    bool
}

// Candidate is one partial or completed sequence carried in the beam.
type Candidate struct {
	Steps      []Step
	NodeValue  int // scaled mass reached so far
	Score      int // sum of node values visited
	GapCount   int
	State      state
	Correction int // node-correction accumulator
}

// Completed is a finished, promoted candidate ready for scoring.
type Completed struct {
	Residues   []rune
	Steps      []Step
	Score      int
	GapCount   int
	ScaledMass int
}

// Result is the enumerator's output: the completed-sequence list,
// capped at finalSeqNum and sorted descending by score.
type Result struct {
	Completed []Completed
	TimedOut  bool
}

// governor halves the beam at 30s and quarters it at 60s wall-clock
// within the current spectrum's sequencing phase.
var governorThresholds = []struct {
	after  time.Duration
	divide int
}{
	{30 * time.Second, 2},
	{60 * time.Second, 4},
}

// Run enumerates subsequences from g's N-terminal seed out to its
// C-terminal seed band, honoring params' beam caps, gap limits, tag
// overlay and present-residue constraints.
func Run(ctx context.Context, g *graph.Graph, gaps gaplist.List, oneEdge map[int]bool, params config.Params, tag graph.TagOverlayResult) Result {
	start := time.Now()
	maxGapNum := params.ResolvedMaxGapNum()
	terminals := graph.CleavageResidues(params.Proteolysis)

	beam := seedBeam(g, gaps, params)

	var finished []Completed
	for len(beam) > 0 {
		width := beamWidth(params.MaxExtNum, time.Since(start))

		proposals := make([]proposal, 0, len(beam)*4)

		for _, cand := range beam {
			if landsInTerminalBand(g, terminals, cand.NodeValue) {
				if promoted, ok := tryPromote(g, terminals, params, maxGapNum, tag, cand); ok {
					finished = append(finished, promoted)
					continue
				}
			}
			proposals = append(proposals, proposeExtensions(g, gaps, oneEdge, params, cand)...)
		}

		if len(proposals) == 0 {
			break
		}

		sortProposals(proposals)
		cutoff := applyThreshold(proposals, params.ExtThresh, width)

		var next []Candidate
		for _, p := range cutoff {
			cand := p.extend()
			if cand.GapCount > maxGapNum {
				continue // dropped: gap budget exceeded
			}
			cand.State = extending
			next = append(next, cand)
		}

		sort.Slice(next, func(i, j int) bool { return next[i].Score > next[j].Score })
		if len(next) > params.TopSeqNum {
			next = next[:params.TopSeqNum]
		}
		beam = next

		select {
		case <-ctx.Done():
			return finalize(finished, params, true)
		default:
		}
	}

	return finalize(finished, params, false)
}

func finalize(finished []Completed, params config.Params, timedOut bool) Result {
	sort.Slice(finished, func(i, j int) bool { return finished[i].Score > finished[j].Score })
	if len(finished) > params.FinalSeqNum {
		finished = finished[:params.FinalSeqNum]
	}
	return Result{Completed: finished, TimedOut: timedOut}
}

// beamWidth applies the time-based governor.
func beamWidth(base int, elapsed time.Duration) int {
	width := base
	for _, threshold := range governorThresholds {
		if elapsed >= threshold.after {
			width = base / threshold.divide
		}
	}
	if width < 1 {
		width = 1
	}
	return width
}
