/*
File is structured as so:

	sequenceCommand   the one verb this CLI has: sequence (or rescore) a
	                  single spectrum file
	Helper functions  param/residue/Edman loading, logger construction

Each flag defined in main.go is read here via *cli.Context accessors;
main.go stays a pure flags-and-app-definition file, keeping flag wiring
apart from handler logic.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/engine"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/logging"
	"github.com/ksantone/lutefisk/internal/profilefilter"
	"github.com/ksantone/lutefisk/internal/report"
	"github.com/ksantone/lutefisk/internal/rescoring"
	"github.com/ksantone/lutefisk/internal/spectrum"
	"github.com/ksantone/lutefisk/internal/spectrum/format"
)

// sequenceCommand is the sole action of the lutefisk CLI: it loads
// configuration, reads the spectrum named by the one positional
// argument, and either rescores a database-sequence file (-s) or runs
// the de novo engine, writing the resulting report to -o (or stdout).
func sequenceCommand(c *cli.Context) error {
	spectrumPath := c.Args().First()
	if spectrumPath == "" {
		return errors.New("lutefisk: a spectrum file argument is required")
	}

	params, err := loadParams(c)
	if err != nil {
		return err
	}

	log := buildLogger(c)

	sp, err := readSpectrum(spectrumPath, params)
	if err != nil {
		return err
	}
	// A DTA file carries its own (M+H) precursor mass; it wins over the
	// param-file default but never over an explicit -m override. A
	// Micromass header's precursor m/z is read into sp.PrecursorMZ and is
	// not applied here.
	if !c.IsSet("m") && sp.PrecursorMass != 0 {
		params.PrecursorMass = sp.PrecursorMass
	}
	sp.SortByMZ()
	sp.Normalize()
	if !params.Centroided {
		sp = profilefilter.Centroid(sp, profilefilter.DefaultCutoffFraction)
		log.Debug("profile-mode spectrum centroided before scoring")
	}

	if sequencesPath := c.String("s"); sequencesPath != "" {
		return runRescoring(c, sequencesPath, sp, params)
	}

	edman, err := loadEdman(params)
	if err != nil {
		return err
	}

	eng := engine.Engine{Edman: edman, Logger: log}
	rep, err := eng.Run(c.Context, sp, params)
	if err != nil {
		var degenerate *engine.DegenerateInputError
		if errors.As(err, &degenerate) {
			log.Warn(degenerate.Error())
		} else {
			return err
		}
	}

	if detailsPath := c.String("d"); detailsPath != "" {
		if err := report.WriteDetail(detailsPath, rep); err != nil {
			return err
		}
	}

	return writeReport(c, spectrumPath, params, rep)
}

// loadParams layers a parameter file (-p) and a residue table (-r) on
// top of config.Default, then applies the -m precursor-mass override.
// Only the residue table's zero-mass entries are used (as absent
// residues); its non-zero masses are not applied.
func loadParams(c *cli.Context) (config.Params, error) {
	params := config.Default()

	if paramPath := c.String("p"); paramPath != "" {
		f, err := os.Open(paramPath)
		if err != nil {
			return params, err
		}
		defer f.Close()
		params, err = config.Parse(f, params)
		if err != nil {
			return params, err
		}
	}

	if residuePath := c.String("r"); residuePath != "" {
		f, err := os.Open(residuePath)
		if err != nil {
			return params, err
		}
		defer f.Close()
		table, err := config.ParseResidueTable(f)
		if err != nil {
			return params, err
		}
		for symbol, mass := range table {
			if mass == 0 {
				params.AbsentResidues = append(params.AbsentResidues, symbol)
			}
		}
	}

	if c.IsSet("m") {
		params.PrecursorMass = c.Float64("m")
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

// loadEdman parses params.EdmanFilePath if set, otherwise returns a
// nil cycle list (no Edman overlay).
func loadEdman(params config.Params) ([]graph.EdmanCycle, error) {
	if params.EdmanFilePath == "" {
		return nil, nil
	}
	f, err := os.Open(params.EdmanFilePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graph.ParseEdmanCycles(f)
}

// readSpectrum opens spectrumPath and parses it with the reader
// internal/spectrum/format.Detect infers from its extension.
func readSpectrum(spectrumPath string, params config.Params) (spectrum.Spectrum, error) {
	f, err := os.Open(spectrumPath)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	defer f.Close()

	reader := format.Detect(spectrumPath, params.PrecursorMass, params.ChargeState)
	sp, err := reader.ReadSpectrum(f)
	if err != nil {
		return sp, err
	}
	if sp.PrecursorMass == 0 {
		sp.PrecursorMass = params.PrecursorMass
	}
	if sp.Charge == 0 {
		sp.Charge = params.ChargeState
	}
	return sp, nil
}

// buildLogger resolves the -q/-v flags into a logging.Logger level:
// verbose wins over quiet when both are given, since asking for detail
// is the more specific request.
func buildLogger(c *cli.Context) *logging.Logger {
	switch {
	case c.Bool("v"):
		return logging.New(logrus.DebugLevel, os.Stderr)
	case c.Bool("q"):
		return logging.New(logrus.ErrorLevel, os.Stderr)
	default:
		return logging.Default()
	}
}

// runRescoring loads a database-sequences file and scores each entry
// against sp, writing a small rescoring-specific report.
func runRescoring(c *cli.Context, sequencesPath string, sp spectrum.Spectrum, params config.Params) error {
	f, err := os.Open(sequencesPath)
	if err != nil {
		return err
	}
	defer f.Close()

	sequences, err := rescoring.ParseSequences(f)
	if err != nil {
		return err
	}
	candidates, err := rescoring.Score(sp, params, sequences)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if outputPath := c.String("o"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	fmt.Fprintf(out, "Rescoring %d candidate sequence(s) against %s\n", len(candidates), sequencesPath)
	fmt.Fprintln(out, "Rank  Sequence                  Combined  Intensity  Probability  Quality  XCorr")
	for _, cand := range candidates {
		fmt.Fprintf(out, "%4d  %-24s  %8.4f  %9.4f  %11.4f  %7.4f  %6.4f\n",
			cand.Rank, cand.Sequence, cand.CombinedScore, cand.IntensityScore, cand.ProbabilityScore, cand.Quality, cand.CrossCorrelation)
	}
	return nil
}

// writeReport formats rep with internal/report and sends it to -o, or
// to the app's configured writer (stdout in production, a buffer in
// tests) when -o is unset.
func writeReport(c *cli.Context, spectrumPath string, params config.Params, rep engine.Report) error {
	if outputPath := c.String("o"); outputPath != "" {
		return report.Write(outputPath, spectrumPath, params, rep)
	}
	_, err := c.App.Writer.Write(report.Build(spectrumPath, params, rep))
	return err
}
