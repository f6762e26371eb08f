package format

import (
	"path/filepath"
	"strings"

	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Detect picks a spectrum.Reader for path by its extension
// (".dta"/".dat" => DTA, ".mm" => Micromass, ".bin" => Binary,
// ".ms"/".iontrap" => IonTrap, ".icis" => ICIS). Unrecognized
// extensions default to Tab, the simplest and most forgiving format.
// precursorMZ and charge are forwarded to the formats that carry
// neither in-band (Tab, ICIS); Micromass, whose header carries the
// precursor m/z but not the charge, gets only charge; formats that embed
// their own header (DTA, IonTrap, Binary) ignore both.
func Detect(path string, precursorMZ float64, charge int) spectrum.Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dta", ".dat":
		return DTA{}
	case ".mm":
		return Micromass{ChargeState: charge}
	case ".bin":
		return Binary{}
	case ".ms", ".iontrap":
		return IonTrap{}
	case ".icis":
		return ICIS{PrecursorMZ: precursorMZ, Charge: charge}
	default:
		return Tab{PrecursorMZ: precursorMZ, Charge: charge}
	}
}
