/*
This file is the entry point for the command line utility. It is kept
separate from application() to make run testable without touching
os.Args, and from commands.go to keep flag/app wiring apart from the
handler logic the flags dispatch to.

Flags:

	-p paramFile               Lutefisk-style parameter file
	-r residuesFile            residue table; zero-mass entries mark absent residues
	-s databaseSequencesFile   rescore these sequences instead of de novo
	-m precursorMass           override the precursor mass from the CLI
	-o outputFile              write the report here instead of stdout
	-d detailsFile             write per-candidate scoring detail here
	-q                         quiet: suppress progress logging
	-v                         verbose: debug-level logging

-h/--help is provided by urfave/cli itself.
*/
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	run(os.Args)
}

// run is separated from main for debugging's sake and so tests can
// invoke it without replacing os.Args.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the single-verb lutefisk CLI: one positional
// spectrum file argument plus the global flags above.
func application() *cli.App {
	return &cli.App{
		Name:  "lutefisk",
		Usage: "De novo peptide sequencing from an MS/MS spectrum.",
		UsageText: "lutefisk [options] spectrumFile",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "p",
				Usage: "Parameter file (Lutefisk-style key = value text).",
			},
			&cli.StringFlag{
				Name:  "r",
				Usage: "Residue table file (zero-mass entries mark absent residues).",
			},
			&cli.StringFlag{
				Name:  "s",
				Usage: "Database sequences file: rescore these candidates instead of running de novo enumeration.",
			},
			&cli.Float64Flag{
				Name:  "m",
				Usage: "Override the precursor mass (Da).",
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Write the report to this file instead of stdout.",
			},
			&cli.StringFlag{
				Name:  "d",
				Usage: "Write per-candidate scoring detail to this file.",
			},
			&cli.BoolFlag{
				Name:  "q",
				Usage: "Quiet: suppress progress logging.",
			},
			&cli.BoolFlag{
				Name:  "v",
				Usage: "Verbose: debug-level logging.",
			},
		},

		Action: func(c *cli.Context) error {
			return sequenceCommand(c)
		},
	}
}
