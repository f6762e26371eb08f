package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// DTA is a spectrum.Reader for DTA-style files: the first line carries
// "(M+H) charge", every subsequent line is "m/z intensity" (
// form (e)).
type DTA struct{}

// ReadSpectrum implements spectrum.Reader.
func (DTA) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	var sp spectrum.Spectrum
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return sp, &spectrum.FormatError{Format: "dta", Msg: "empty file, missing (M+H)/charge header"}
	}
	header := strings.Fields(strings.TrimSpace(scanner.Text()))
	if len(header) < 2 {
		return sp, &spectrum.FormatError{Format: "dta", Msg: "header must be \"(M+H) charge\""}
	}
	mPlusH, err := strconv.ParseFloat(header[0], 64)
	if err != nil {
		return sp, &spectrum.FormatError{Format: "dta", Msg: fmt.Sprintf("bad (M+H) %q", header[0])}
	}
	charge, err := strconv.Atoi(header[1])
	if err != nil {
		return sp, &spectrum.FormatError{Format: "dta", Msg: fmt.Sprintf("bad charge %q", header[1])}
	}
	sp.PrecursorMass = mPlusH
	sp.Charge = charge

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return sp, &spectrum.FormatError{Format: "dta", Msg: fmt.Sprintf("line %d: expected \"mz intensity\"", lineNum)}
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "dta", Msg: fmt.Sprintf("line %d: bad m/z %q", lineNum, fields[0])}
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "dta", Msg: fmt.Sprintf("line %d: bad intensity %q", lineNum, fields[1])}
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

// Micromass is the Micromass variant of DTA: identical peak lines, but
// the header carries precursor m/z directly rather than (M+H).
// chargeState must be supplied since Micromass headers omit it.
type Micromass struct {
	ChargeState int
}

// ReadSpectrum implements spectrum.Reader.
func (m Micromass) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	var sp spectrum.Spectrum
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return sp, &spectrum.FormatError{Format: "micromass", Msg: "empty file, missing precursor m/z header"}
	}
	header := strings.TrimSpace(scanner.Text())
	mz, err := strconv.ParseFloat(strings.Fields(header)[0], 64)
	if err != nil {
		return sp, &spectrum.FormatError{Format: "micromass", Msg: fmt.Sprintf("bad precursor m/z %q", header)}
	}
	sp.PrecursorMZ = mz
	sp.Charge = m.ChargeState

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return sp, &spectrum.FormatError{Format: "micromass", Msg: fmt.Sprintf("line %d: expected \"mz intensity\"", lineNum)}
		}
		peakMZ, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "micromass", Msg: fmt.Sprintf("line %d: bad m/z %q", lineNum, fields[0])}
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "micromass", Msg: fmt.Sprintf("line %d: bad intensity %q", lineNum, fields[1])}
		}
		sp.Peaks = append(sp.Peaks, spectrum.Peak{MZ: peakMZ, RawIntensity: int(intensity)})
	}
	if err := scanner.Err(); err != nil {
		return sp, err
	}
	sp.SortByMZ()
	sp.Normalize()
	return sp, nil
}
