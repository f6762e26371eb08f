/*
Package format implements the peak-file readers lists as
external collaborators of the core: ICIS text, tab-delimited, ion-trap
text with an embedded precursor header, DTA/Micromass, and binary
headered spectra. Every reader normalizes to spectrum.Spectrum.
*/
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Tab is a spectrum.Reader for the simplest supported format: one
// "m/z<tab>intensity" pair per line, with precursor m/z and charge
// supplied out of band by the caller (the format carries no header).
type Tab struct {
	PrecursorMZ float64
	Charge      int
}

// ReadSpectrum implements spectrum.Reader.
func (t Tab) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	sp := spectrum.Spectrum{PrecursorMZ: t.PrecursorMZ, Charge: t.Charge}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return sp, &spectrum.FormatError{Format: "tab", Msg: fmt.Sprintf("line %d: expected \"mz intensity\"", lineNum)}
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "tab", Msg: fmt.Sprintf("line %d: bad m/z %q", lineNum, fields[0])}
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "tab", Msg: fmt.Sprintf("line %d: bad intensity %q", lineNum, fields[1])}
		}
		sp.Peaks = append(sp.Peaks, spectrum.Peak{MZ: mz, RawIntensity: int(intensity)})
	}
	if err := scanner.Err(); err != nil {
		return sp, err
	}
	sp.SortByMZ()
	sp.Normalize()
	return sp, nil
}
