/*
Package engine is the sequencing façade: it wires internal/masstab,
internal/gaplist, internal/precursor, internal/graph,
internal/summednode, internal/enumerate, internal/scoring/intensity,
internal/scoring/xcorr and internal/scramble into a single Run per
spectrum, owning tables, graph, beam and scorers as values rather than
process-global state.
*/
package engine

import (
	"context"
	"sort"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/enumerate"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/logging"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/precursor"
	"github.com/ksantone/lutefisk/internal/scoring/intensity"
	"github.com/ksantone/lutefisk/internal/scoring/xcorr"
	"github.com/ksantone/lutefisk/internal/scramble"
	"github.com/ksantone/lutefisk/internal/spectrum"
	"github.com/ksantone/lutefisk/internal/summednode"
)

// refinedPrecursor applies the ion-trap precursor-mass refinement ahead
// of graph construction.
func refinedPrecursor(sp spectrum.Spectrum, params config.Params) float64 {
	return precursor.Refine(sp, params.PrecursorMass, params.FragmentToleranceDa)
}

// ScoredCandidate is one ranked, fully-scored completed sequence
//.
type ScoredCandidate struct {
	Residues          string
	GapCount          int
	IntensityScore    float64
	ProbabilityScore  float64
	Quality           float64
	CrossCorrelation  float64
	CombinedScore     float64
	Rank              int
}

// Report is the engine's per-spectrum output.
type Report struct {
	Candidates []ScoredCandidate
	TimedOut   bool
	Scramble   *scramble.Result // nil unless params.WrongSeqNum > 0
}

// Engine holds no mutable state of its own; every field a run needs
// (tables, graph, beam) is local to Run, so an Engine value is safe to
// reuse across spectra and across goroutines that never share a Params
//.
type Engine struct {
	Edman  []graph.EdmanCycle
	Logger *logging.Logger // nil means no logging; use logging.Discard's behavior
}

// logger returns e.Logger, or a discarding logger if the caller never
// configured one.
func (e Engine) logger() *logging.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.Discard()
}

// Run executes the full pipeline once for sp under params, refining the
// precursor mass, building the graph, scoring the summed nodes,
// enumerating candidates, and scoring each completed candidate. If
// params.WrongSeqNum > 0 the mass-scramble controller wraps this
// pipeline instead of running it once.
func (e Engine) Run(ctx context.Context, sp spectrum.Spectrum, params config.Params) (Report, error) {
	if err := params.Validate(); err != nil {
		return Report{}, err
	}

	if params.WrongSeqNum > 0 {
		return e.runScrambled(ctx, sp, params)
	}
	return e.runOnce(ctx, sp, params)
}

func (e Engine) runScrambled(ctx context.Context, sp spectrum.Spectrum, params config.Params) (Report, error) {
	var trueReport Report
	run := func(ctx context.Context, sp spectrum.Spectrum, p config.Params) (float64, bool, error) {
		p.WrongSeqNum = 0 // each scramble iteration runs the plain pipeline
		report, err := e.runOnce(ctx, sp, p)
		if p.PrecursorMass == params.PrecursorMass {
			trueReport = report
		}
		if _, degenerate := err.(*DegenerateInputError); degenerate {
			// an off-mass run finding no candidate is an expected,
			// uninformative data point, not a failure of the control
			// itself; it simply contributes nothing to the null
			// distribution.
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		if len(report.Candidates) == 0 {
			return 0, false, nil
		}
		return report.Candidates[0].CombinedScore, true, nil
	}

	result, err := scramble.Run(ctx, sp, params, run)
	if err != nil {
		return Report{}, err
	}
	trueReport.Scramble = &result
	return trueReport, nil
}

// runOnce executes the pipeline exactly once at params.PrecursorMass
//.
func (e Engine) runOnce(ctx context.Context, sp spectrum.Spectrum, params config.Params) (Report, error) {
	log := e.logger()
	log.WithField("template", string(rune(params.Template))).Debug("starting run")

	if len(sp.Peaks) == 0 {
		return Report{}, &DegenerateInputError{Msg: "spectrum has no peaks"}
	}

	if params.Template == config.IonTrapTryptic {
		params.PrecursorMass = refinedPrecursor(sp, params)
		log.WithField("refinedPrecursorMass", params.PrecursorMass).Debug("ion-trap precursor mass refined")
	}

	if params.Tag.Active && params.Tag.HighYMass > params.PrecursorMass {
		log.WithFields(logging.Fields{"tagHighYMass": params.Tag.HighYMass, "precursorMass": params.PrecursorMass}).Warn("sequence tag high-y mass exceeds precursor mass")
		return Report{}, fatalf("sequence tag high-y mass %.4f exceeds precursor mass %.4f", params.Tag.HighYMass, params.PrecursorMass)
	}

	tables := masstab.New(masstab.DefaultResidueMasses(params.CysteineMassDa), params.FragmentToleranceDa)
	coarseToleranceScaled := tables.Scale.Round(params.FragmentToleranceDa)
	gaps := gaplist.Build(tables, params.AbsentResidues, coarseToleranceScaled)

	g, tagResult := graph.Build(tables, params, gaps, sp, e.Edman)
	if g.Len() == 0 {
		return Report{}, &ResourceError{Msg: "graph allocation produced zero-length arrays"}
	}

	nodeResult := summednode.Run(g, gaps, params.Template, params.IonWeights.Total())

	oneEdge := make(map[int]bool, len(nodeResult.OneEdgeNodes))
	for _, idx := range nodeResult.OneEdgeNodes {
		oneEdge[idx] = true
	}

	enumResult := enumerate.Run(ctx, g, gaps, oneEdge, params, tagResult)
	if enumResult.TimedOut {
		log.Warn("enumeration stopped early: context cancelled before it converged")
	}
	if len(enumResult.Completed) == 0 {
		return Report{TimedOut: enumResult.TimedOut}, &DegenerateInputError{Msg: "no candidate survived enumeration"}
	}
	log.WithField("completed", len(enumResult.Completed)).Debug("enumeration finished")

	observed, autocorrNorm := xcorr.Autocorrelation(sp, params)

	candidates := make([]ScoredCandidate, 0, len(enumResult.Completed))
	for _, c := range enumResult.Completed {
		isGap := make([]bool, len(c.Steps))
		for i, step := range c.Steps {
			isGap[i] = step.IsGap
		}

		scored := intensity.Score(c.Residues, isGap, tables, sp, params)
		xcScore := xcorr.Score(observed, autocorrNorm, c.Residues, tables, params)

		candidates = append(candidates, ScoredCandidate{
			Residues:         string(c.Residues),
			GapCount:         c.GapCount,
			IntensityScore:   scored.Score,
			ProbabilityScore: scored.Probability,
			Quality:          scored.Quality,
			CrossCorrelation: xcScore,
			CombinedScore:    scored.Score + scored.Probability + scored.Quality + xcScore,
		})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].CombinedScore > candidates[j].CombinedScore })
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	dropped := 0
	if len(candidates) > params.OutputSeqNum && params.OutputSeqNum > 0 {
		dropped = len(candidates) - params.OutputSeqNum
		candidates = candidates[:params.OutputSeqNum]
	}
	log.WithFields(logging.Fields{"reported": len(candidates), "dropped": dropped}).Debug("run finished")

	return Report{Candidates: candidates, TimedOut: enumResult.TimedOut}, nil
}
