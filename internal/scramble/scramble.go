/*
Package scramble implements the mass-scramble statistical control: the
full enumeration+scoring pipeline is re-run at the true precursor mass
and at `±1, ±2, ..., ±k` multiples of a reference mass increment, and
the off-mass runs' best scores form an empirical null distribution the
true-mass candidate's confidence is measured against.

The pipeline itself is supplied by the caller as a RunFunc so this
package never imports internal/engine - internal/engine imports
scramble and passes its own run-once method in, keeping the caller
decoupled from the package it calls.
*/
package scramble

import (
	"context"
	"sort"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Reduced beam and completion caps applied to every off-mass run, for
// speed.
const (
	OffMassTopSeqNum   = 1000
	OffMassFinalSeqNum = 5000
)

// RunFunc executes the full enumeration-and-scoring pipeline once for
// the given spectrum and configuration, returning the best (highest)
// combined score among completed candidates. A run that completes with
// no candidates returns ok=false.
type RunFunc func(ctx context.Context, sp spectrum.Spectrum, params config.Params) (best float64, ok bool, err error)

// Result holds the true-mass run's best score, the off-mass runs' best
// scores (the null distribution), and a confidence derived from where
// the true score falls within that distribution.
type Result struct {
	TrueScore     float64
	TrueOK        bool
	OffMassScores []float64
	Confidence    float64 // fraction of off-mass scores strictly below TrueScore
}

// ReferenceIncrement returns the mass-scramble step size, gMultiplier *
// (2*H + C).
func ReferenceIncrement(gMultiplier float64) float64 {
	h := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	c := masstab.MonoisotopicElementMass[masstab.Carbon]
	return gMultiplier * (2*h + c)
}

// Run executes the pipeline at the true precursor mass and at each of
// the wrongSeqNum/2 symmetric off-mass offsets. When
// params.WrongSeqNum is 0 only the true-mass run is made: the Result
// carries its TrueScore/TrueOK and no off-mass scores.
func Run(ctx context.Context, sp spectrum.Spectrum, params config.Params, run RunFunc) (Result, error) {
	trueParams := params.Clone()
	trueScore, trueOK, err := run(ctx, sp, trueParams)
	if err != nil {
		return Result{}, err
	}
	result := Result{TrueScore: trueScore, TrueOK: trueOK}

	n := params.WrongSeqNumRoundedUp()
	if n == 0 {
		return result, nil
	}
	half := n / 2
	increment := ReferenceIncrement(params.GMultiplier)

	var offScores []float64
	for i := 1; i <= half; i++ {
		for _, sign := range []float64{1, -1} {
			iterParams := params.Clone()
			iterParams.PrecursorMass += sign * float64(i) * increment
			iterParams.TopSeqNum = OffMassTopSeqNum
			iterParams.FinalSeqNum = OffMassFinalSeqNum

			score, ok, err := run(ctx, sp, iterParams)
			if err != nil {
				return Result{}, err
			}
			if ok {
				offScores = append(offScores, score)
			}
			select {
			case <-ctx.Done():
				result.OffMassScores = offScores
				result.Confidence = confidence(trueScore, trueOK, offScores)
				return result, ctx.Err()
			default:
			}
		}
	}

	result.OffMassScores = offScores
	result.Confidence = confidence(trueScore, trueOK, offScores)
	return result, nil
}

// confidence reports the fraction of the null distribution strictly
// below the true-mass score, a standard empirical-p-value complement:
// 1.0 means the true candidate outscored every off-mass run.
func confidence(trueScore float64, trueOK bool, offScores []float64) float64 {
	if !trueOK || len(offScores) == 0 {
		return 0
	}
	below := 0
	for _, s := range offScores {
		if s < trueScore {
			below++
		}
	}
	return float64(below) / float64(len(offScores))
}

// Median returns the median of a set of scores, used by the
// true-vs-scrambled comparison.
func Median(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
