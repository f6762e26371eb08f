package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/******************************************************************************

Parameter files are plain text, one "key = value" assignment per line;
blank lines and lines starting with '#' are ignored. Residue-table
files are a simpler two-column "symbol mass" format, one residue per
line, with an absent residue marked by a mass of exactly 0.

Parsing is split from validation: Parse never rejects a value itself,
beyond a raw type mismatch in the line's own field - use Params.Validate
for range and consistency checks once every layer (defaults, file,
overridden CLI flags) has been applied.

******************************************************************************/

// Parse reads a Lutefisk-style parameter file from r, layering assigned
// fields on top of base. Unrecognized keys are ignored (forwards
// compatible with parameter files carrying fields the core does not
// consume, e.g. output-formatter-only settings).
func Parse(r io.Reader, base Params) (Params, error) {
	p := base
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := splitAssignment(line)
		if !ok {
			return p, &Error{Field: fmt.Sprintf("line %d", lineNum), Msg: "expected key = value"}
		}
		if err := assign(&p, key, value); err != nil {
			return p, &Error{Field: key, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return p, err
	}
	return p, nil
}

func splitAssignment(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func assign(p *Params, key, value string) error {
	switch strings.ToLower(key) {
	case "precursormass":
		return setFloat(&p.PrecursorMass, value)
	case "peptideerr":
		return setFloat(&p.PeptideErrDa, value)
	case "chargestate":
		return setInt(&p.ChargeState, value)
	case "fragmenterr":
		return setFloat(&p.FragmentToleranceDa, value)
	case "qtoferr":
		return setFloat(&p.FinalFragmentToleranceDa, value)
	case "ionoffset":
		return setFloat(&p.IonOffset, value)
	case "fragmentpattern":
		if len(value) != 1 {
			return fmt.Errorf("expected a single character template code")
		}
		p.Template = FragmentationTemplate(value[0])
	case "proteolysis":
		if len(value) != 1 {
			return fmt.Errorf("expected a single character proteolysis code")
		}
		p.Proteolysis = Proteolysis(value[0])
	case "centroid":
		p.Centroided = strings.EqualFold(value, "y") || strings.EqualFold(value, "true")
	case "monotoav":
		return setFloat(&p.MonoToAvSwitchDa, value)
	case "peakwidth":
		return setFloat(&p.PeakWidthDa, value)
	case "ionthreshold":
		return setFloat(&p.IonThreshold, value)
	case "ionsperwindow":
		return setInt(&p.IonsPerWindow, value)
	case "ionsperresidue":
		return setFloat(&p.IonsPerResidue, value)
	case "autotag":
		p.AutoTag = strings.EqualFold(value, "y") || strings.EqualFold(value, "true")
	case "maxextnum":
		return setInt(&p.MaxExtNum, value)
	case "maxgapnum":
		return setInt(&p.MaxGapNum, value)
	case "extthresh":
		return setFloat(&p.ExtThresh, value)
	case "topseqnum":
		return setInt(&p.TopSeqNum, value)
	case "finalseqnum":
		return setInt(&p.FinalSeqNum, value)
	case "outputseqnum":
		return setInt(&p.OutputSeqNum, value)
	case "outputthreshold":
		return setFloat(&p.OutputThreshold, value)
	case "wrongseqnum":
		return setInt(&p.WrongSeqNum, value)
	case "presentresidues":
		p.PresentResidues = []rune(strings.ToUpper(value))
	case "absentresidues":
		p.AbsentResidues = []rune(strings.ToUpper(value))
	case "modifiednterm":
		return setFloat(&p.ModifiedNTermMass, value)
	case "modifiedcterm":
		return setFloat(&p.ModifiedCTermMass, value)
	case "cysmw":
		return setFloat(&p.CysteineMassDa, value)
	case "taglowymass":
		p.Tag.Active = true
		return setFloat(&p.Tag.LowYMass, value)
	case "tagsequence":
		p.Tag.Active = true
		p.Tag.Sequence = strings.ToUpper(value)
	case "taghighymass":
		p.Tag.Active = true
		return setFloat(&p.Tag.HighYMass, value)
	case "tagcutoffpercent":
		return setFloat(&p.Tag.CutoffPercent, value)
	case "edmanfile":
		p.EdmanFilePath = value
	case "residuetable":
		p.ResidueTablePath = value
	default:
		// Unknown keys are tolerated: the full Lutefisk.params surface
		// includes fields only the CLI's output formatter consumes.
	}
	return nil
}

func setFloat(dst *float64, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("expected a number, got %q", value)
	}
	*dst = f
	return nil
}

func setInt(dst *int, value string) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected an integer, got %q", value)
	}
	*dst = i
	return nil
}

// ResidueTable is a parsed residue-table file: a monoisotopic mass per
// residue symbol, with zero marking an absent residue.
type ResidueTable map[rune]float64

// ParseResidueTable reads a two-column "symbol mass" residue table, one
// residue per line. It does not itself apply present/absent-residue
// constraints from Params; see internal/gaplist for that.
func ParseResidueTable(r io.Reader) (ResidueTable, error) {
	table := make(ResidueTable, ResidueCount)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &Error{Field: fmt.Sprintf("residue table line %d", lineNum), Msg: "expected \"symbol mass\""}
		}
		symbol := []rune(strings.ToUpper(fields[0]))
		if len(symbol) != 1 {
			return nil, &Error{Field: fmt.Sprintf("residue table line %d", lineNum), Msg: "residue symbol must be a single letter"}
		}
		mass, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &Error{Field: fmt.Sprintf("residue table line %d", lineNum), Msg: "expected a numeric mass"}
		}
		table[symbol[0]] = mass
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
