package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// IonTrap is a spectrum.Reader for ion-trap text files carrying an
// embedded precursor header: a block of
// "key: value" header lines up to a blank line, followed by
// "m/z intensity" peak lines. Recognized header keys are
// "precursormz" and "charge"; others are ignored so the same reader
// tolerates instrument-vendor header fields the core does not need.
type IonTrap struct{}

// ReadSpectrum implements spectrum.Reader.
func (IonTrap) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	var sp spectrum.Spectrum
	scanner := bufio.NewScanner(r)
	lineNum := 0
	inHeader := true
	sawPrecursor := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if inHeader {
			if line == "" {
				inHeader = false
				continue
			}
			idx := strings.IndexByte(line, ':')
			if idx < 0 {
				return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: expected \"key: value\" header", lineNum)}
			}
			key := strings.ToLower(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[idx+1:])
			switch key {
			case "precursormz":
				mz, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: bad precursor m/z %q", lineNum, value)}
				}
				sp.PrecursorMZ = mz
				sawPrecursor = true
			case "charge":
				z, err := strconv.Atoi(value)
				if err != nil {
					return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: bad charge %q", lineNum, value)}
				}
				sp.Charge = z
			}
			continue
		}

		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: expected \"mz intensity\"", lineNum)}
		}
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: bad m/z %q", lineNum, fields[0])}
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return sp, &spectrum.FormatError{Format: "iontrap", Msg: fmt.Sprintf("line %d: bad intensity %q", lineNum, fields[1])}
		}
		sp.Peaks = append(sp.Peaks, spectrum.Peak{MZ: mz, RawIntensity: int(intensity)})
	}
	if err := scanner.Err(); err != nil {
		return sp, err
	}
	if !sawPrecursor {
		return sp, &spectrum.FormatError{Format: "iontrap", Msg: "missing required precursorMz header field"}
	}
	sp.SortByMZ()
	sp.Normalize()
	return sp, nil
}

// ICIS is a spectrum.Reader for ICIS text exports:
// functionally identical peak lines to Tab but the format is kept
// distinct because ICIS exports commonly carry a title line before the
// data that must be skipped rather than parsed as a peak.
type ICIS struct {
	PrecursorMZ float64
	Charge      int
}

// ReadSpectrum implements spectrum.Reader.
func (ic ICIS) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	sp := spectrum.Spectrum{PrecursorMZ: ic.PrecursorMZ, Charge: ic.Charge}
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
			if lineNum == 1 {
				continue // title line with no numeric payload
			}
			return sp, &spectrum.FormatError{Format: "icis", Msg: fmt.Sprintf("line %d: expected \"mz intensity\"", lineNum)}
		}
		mz, err1 := strconv.ParseFloat(fields[0], 64)
		intensity, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			if lineNum == 1 {
				continue // title line that happens to have two tokens
			}
			return sp, &spectrum.FormatError{Format: "icis", Msg: fmt.Sprintf("line %d: non-numeric peak data", lineNum)}
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
