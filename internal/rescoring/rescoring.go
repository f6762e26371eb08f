/*
Package rescoring implements the "-s databaseSequencesFile" path: given
a caller-supplied list of candidate sequences (typically from a prior
database search), it scores each one with the same intensity and
cross-correlation scorers the de novo engine uses, without ever
building a graph or running the enumerator.
*/
package rescoring

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/scoring/intensity"
	"github.com/ksantone/lutefisk/internal/scoring/xcorr"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Candidate is one rescored database sequence.
type Candidate struct {
	Sequence         string
	IntensityScore   float64
	ProbabilityScore float64
	Quality          float64
	CrossCorrelation float64
	CombinedScore    float64
	Rank             int
}

// ParseSequences reads one candidate sequence per line, skipping blank
// lines and '#'-prefixed comments. This is a plain newline-delimited
// list, not FASTA - no ">" header records are expected.
func ParseSequences(r io.Reader) ([]string, error) {
	var sequences []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sequences = append(sequences, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sequences, nil
}

// Score rescores each of sequences against sp under params, using the
// same masstab tables and cross-correlation autocorrelation an
// internal/engine run would build, then ranks the results by combined
// score. An unknown residue symbol fails the whole sequence file as a
// malformed input, rather than being silently skipped.
func Score(sp spectrum.Spectrum, params config.Params, sequences []string) ([]Candidate, error) {
	tables := masstab.New(masstab.DefaultResidueMasses(params.CysteineMassDa), params.FragmentToleranceDa)
	observed, autocorrNorm := xcorr.Autocorrelation(sp, params)

	candidates := make([]Candidate, 0, len(sequences))
	for _, seq := range sequences {
		residues := []rune(seq)
		isGap := make([]bool, len(residues))
		for _, symbol := range residues {
			if _, ok := gaplist.SymbolToResidue(symbol); !ok {
				return nil, &spectrum.FormatError{Format: "rescoring", Msg: "unknown residue symbol " + string(symbol) + " in sequence " + seq}
			}
		}

		scored := intensity.Score(residues, isGap, tables, sp, params)
		xcScore := xcorr.Score(observed, autocorrNorm, residues, tables, params)

		candidates = append(candidates, Candidate{
			Sequence:         seq,
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
	return candidates, nil
}
