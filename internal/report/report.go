/*
Package report formats an internal/engine.Report as plain text: a
header block of resolved configuration followed by outputSeqNum ranked
candidate lines. Build returns the formatted bytes and Write saves them
to a file.
*/
package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/engine"
)

// Build renders report as the plain-text output block for spectrum
// spectrumName, scored under params.
func Build(spectrumName string, params config.Params, rep engine.Report) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Spectrum: %s\n", spectrumName)
	fmt.Fprintf(&buf, "Precursor mass: %.4f  Charge: %d  Template: %c\n", params.PrecursorMass, params.ChargeState, byte(params.Template))
	fmt.Fprintf(&buf, "Fragment tolerance: %.4f Da  Top seqs: %d  Final seqs: %d  Output seqs: %d\n",
		params.FragmentToleranceDa, params.TopSeqNum, params.FinalSeqNum, params.OutputSeqNum)
	if rep.TimedOut {
		buf.WriteString("WARNING: enumeration was cancelled before it converged.\n")
	}
	buf.WriteString("\n")

	if len(rep.Candidates) == 0 {
		buf.WriteString("No candidate sequences survived enumeration.\n")
	} else {
		buf.WriteString("Rank  Sequence                  Combined  Intensity  Probability  Quality  XCorr\n")
		for _, c := range rep.Candidates {
			fmt.Fprintf(&buf, "%4d  %-24s  %8.4f  %9.4f  %11.4f  %7.4f  %6.4f\n",
				c.Rank, c.Residues, c.CombinedScore, c.IntensityScore, c.ProbabilityScore, c.Quality, c.CrossCorrelation)
		}
	}

	if rep.Scramble != nil {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "Mass-scramble confidence: %.4f (true score %.4f over %d off-mass runs)\n",
			rep.Scramble.Confidence, rep.Scramble.TrueScore, len(rep.Scramble.OffMassScores))
	}

	return buf.Bytes()
}

// Write renders report and saves it to path.
func Write(path, spectrumName string, params config.Params, rep engine.Report) error {
	return os.WriteFile(path, Build(spectrumName, params, rep), 0644)
}

// BuildDetail renders one line per candidate with every component score
// that feeds CombinedScore, plus the two-residue-gap count for that
// candidate - finer-grained than Build's summary table, for callers
// diagnosing why one sequence outranked another.
func BuildDetail(rep engine.Report) []byte {
	var buf bytes.Buffer
	buf.WriteString("Rank  Sequence                  Gaps  Intensity  Probability  Quality  XCorr     Combined\n")
	for _, c := range rep.Candidates {
		fmt.Fprintf(&buf, "%4d  %-24s  %4d  %9.4f  %11.4f  %7.4f  %8.4f  %8.4f\n",
			c.Rank, c.Residues, c.GapCount, c.IntensityScore, c.ProbabilityScore, c.Quality, c.CrossCorrelation, c.CombinedScore)
	}
	return buf.Bytes()
}

// WriteDetail renders rep with BuildDetail and saves it to path.
func WriteDetail(path string, rep engine.Report) error {
	return os.WriteFile(path, BuildDetail(rep), 0644)
}
