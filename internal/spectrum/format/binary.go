package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Binary is a spectrum.Reader for binary headered spectra (
// form (d)): a fixed little-endian header of (precursorMZ float64,
// charge int32, peakCount int32) followed by peakCount (mz float64,
// intensity int32) records.
type Binary struct{}

type binaryHeader struct {
	PrecursorMZ float64
	Charge      int32
	PeakCount   int32
}

type binaryPeak struct {
	MZ        float64
	Intensity int32
}

// ReadSpectrum implements spectrum.Reader.
func (Binary) ReadSpectrum(r io.Reader) (spectrum.Spectrum, error) {
	var sp spectrum.Spectrum
	var hdr binaryHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return sp, &spectrum.FormatError{Format: "binary", Msg: fmt.Sprintf("reading header: %v", err)}
	}
	if hdr.PeakCount < 0 {
		return sp, &spectrum.FormatError{Format: "binary", Msg: "negative peak count in header"}
	}
	sp.PrecursorMZ = hdr.PrecursorMZ
	sp.Charge = int(hdr.Charge)
	sp.Peaks = make([]spectrum.Peak, 0, hdr.PeakCount)

	for i := int32(0); i < hdr.PeakCount; i++ {
		var bp binaryPeak
		if err := binary.Read(r, binary.LittleEndian, &bp); err != nil {
			return sp, &spectrum.FormatError{Format: "binary", Msg: fmt.Sprintf("reading peak %d: %v", i, err)}
		}
		sp.Peaks = append(sp.Peaks, spectrum.Peak{MZ: bp.MZ, RawIntensity: int(bp.Intensity)})
	}
	sp.SortByMZ()
	sp.Normalize()
	return sp, nil
}
