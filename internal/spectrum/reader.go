package spectrum

import "io"

// Reader parses one of the raw peak file formats into the normalized
// Spectrum form: ICIS text, tab-delimited, ion-trap text with embedded
// precursor header, binary headered, DTA, or Micromass. Each format
// lives in its own file under internal/spectrum/format so that a
// malformed file in one format cannot affect the others' parsing state.
type Reader interface {
	ReadSpectrum(r io.Reader) (Spectrum, error)
}

// FormatError reports an input-format error: a malformed peak line or
// missing header field. Callers surface it and terminate the current
// spectrum (not the whole run - a multi-spectrum batch should continue
// to the next file).
type FormatError struct {
	Format string
	Msg    string
}

func (e *FormatError) Error() string {
	return "spectrum: " + e.Format + ": " + e.Msg
}
