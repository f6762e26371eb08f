/*
Package intensity implements the intensity and probabilistic scorers:
theoretical b/a/y ions (and their water/ammonia losses) are generated
for a completed candidate's residue sequence and matched against the
observed spectrum within fragment tolerance.
*/
package intensity

import (
	"math"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// Result holds the scorer's three independent outputs.
type Result struct {
	Score        float64 // weighted combination of the four intensity components
	Probability  float64 // log10 of the product of per-ion probability ratios
	Quality      float64 // longest contiguous single-residue run / peptide length
	IonsMatched  int
}

// theoreticalIon is one predicted fragment ion.
type theoreticalIon struct {
	massDa   float64
	category category
}

type category int

const (
	catB category = iota
	catBWater
	catBAmmonia
	catA
	catY
	catYWater
	catYAmmonia
)

// Score computes the intensity and probability scores for one completed
// candidate's residue sequence. isGap marks, per step in
// the candidate's path (enumerate.Completed.Steps), whether that step
// was a two-residue gap - used only for the quality number.
func Score(residues []rune, isGap []bool, tables masstab.Tables, sp spectrum.Spectrum, params config.Params) Result {
	ions := theoreticalIons(residues, tables, params)

	matched := 0
	explainedIntensity := 0.0
	totalIntensity := 0.0
	for _, p := range sp.Peaks {
		totalIntensity += p.NormalizedIntensity
	}

	hitByCategory := make(map[category]bool)
	for _, ion := range ions {
		tolDa := params.FragmentToleranceDa
		peaks := sp.PeaksInWindow(ion.massDa-tolDa, ion.massDa+tolDa)
		if len(peaks) == 0 {
			continue
		}
		matched++
		hitByCategory[ion.category] = true
		best := peaks[0]
		for _, p := range peaks {
			if p.NormalizedIntensity > best.NormalizedIntensity {
				best = p
			}
		}
		explainedIntensity += best.NormalizedIntensity
	}

	peptideLen := len(residues)
	coOccurrence := coOccurrenceScore(hitByCategory)
	fractionExplained := 0.0
	if totalIntensity > 0 {
		fractionExplained = explainedIntensity / totalIntensity
	}
	peaksPerResidue := 0.0
	if peptideLen > 0 {
		peaksPerResidue = float64(matched) / float64(peptideLen)
	}
	numberMatched := float64(matched)

	w := params.Intensity
	score := w.Attenuation*coOccurrence + w.Intensity*fractionExplained + w.Peaks*peaksPerResidue + w.Number*numberMatched

	return Result{
		Score:       score,
		Probability: probabilityScore(ions, sp, params),
		Quality:     QualityFromSteps(isGap),
		IonsMatched: matched,
	}
}

// coOccurrenceScore rewards candidates whose b and y ion series both
// register hits.
func coOccurrenceScore(hit map[category]bool) float64 {
	bHit := hit[catB] || hit[catBWater] || hit[catBAmmonia]
	yHit := hit[catY] || hit[catYWater] || hit[catYAmmonia]
	switch {
	case bHit && yHit:
		return 1.0
	case bHit || yHit:
		return 0.5
	default:
		return 0.0
	}
}

// QualityFromSteps computes the quality number using step-level gap
// information: the longest contiguous run of single-residue steps
// divided by peptide length.
func QualityFromSteps(isGap []bool) float64 {
	if len(isGap) == 0 {
		return 0
	}
	longest, current := 0, 0
	for _, gap := range isGap {
		if gap {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return float64(longest) / float64(len(isGap))
}

// theoreticalIons generates every b/a/y ion (and water/ammonia losses)
// for every cleavage position in residues.
func theoreticalIons(residues []rune, tables masstab.Tables, params config.Params) []theoreticalIon {
	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	water := masstab.MonoisotopicElementMass[masstab.Hydrogen]*2 + masstab.MonoisotopicElementMass[masstab.Oxygen]
	ammonia := masstab.MonoisotopicElementMass[masstab.Nitrogen] + masstab.MonoisotopicElementMass[masstab.Hydrogen]*3
	co := masstab.MonoisotopicElementMass[masstab.Carbon] + masstab.MonoisotopicElementMass[masstab.Oxygen]

	var ions []theoreticalIon
	cumulative := 0.0

	for i := 0; i < len(residues)-1; i++ {
		residue, ok := gaplist.SymbolToResidue(residues[i])
		if !ok {
			continue
		}
		cumulative += float64(tables.ResidueMass[residue]) / float64(tables.Scale)
		// bMass is the charged b-ion m/z: the N-terminal modification
		// mass already stands in for the proton a b-ion carries (the
		// same convention internal/graph's N-terminal seed uses), so it
		// is added once here rather than separately.
		bMass := cumulative + params.ModifiedNTermMass

		ions = append(ions,
			theoreticalIon{bMass, catB},
			theoreticalIon{bMass - water, catBWater},
			theoreticalIon{bMass - ammonia, catBAmmonia},
			theoreticalIon{bMass - co, catA},
		)

		// PrecursorMass is the singly protonated (M+H) precursor, so the
		// complementary b and y ions sum to PrecursorMass plus one proton.
		yMass := params.PrecursorMass + proton - bMass
		ions = append(ions,
			theoreticalIon{yMass, catY},
			theoreticalIon{yMass - water, catYWater},
			theoreticalIon{yMass - ammonia, catYAmmonia},
		)
	}
	return ions
}

// probRandom estimates P_random for a mass window as peak_count/200,
// clamped to [0.005, 0.995].
func probRandom(sp spectrum.Spectrum, centerMZ float64) float64 {
	peaks := sp.PeaksInWindow(centerMZ-100, centerMZ+100)
	p := float64(len(peaks)) / 200.0
	if p < 0.005 {
		p = 0.005
	}
	if p > 0.995 {
		p = 0.995
	}
	return p
}

// ionTypeProbability maps a theoretical ion's category to its
// configured P_type.
func ionTypeProbability(c category, probs config.IonProbabilities) float64 {
	switch c {
	case catB:
		return probs.B
	case catBWater:
		return probs.BWater
	case catBAmmonia:
		return probs.BAmmonia
	case catA:
		return probs.A
	case catY:
		return probs.Y
	case catYWater:
		return probs.YWater
	case catYAmmonia:
		return probs.YAmmonia
	default:
		return probs.Internal
	}
}

// probabilityScore computes the independent probabilistic score:
// product of P_type/P_random if an ion type is found, else
// (1-P_type)/(1-P_random), then log10 of the product when it exceeds 1.
func probabilityScore(ions []theoreticalIon, sp spectrum.Spectrum, params config.Params) float64 {
	product := 1.0
	for _, ion := range ions {
		pRandom := probRandom(sp, ion.massDa)
		pType := ionTypeProbability(ion.category, params.Probability)

		tolDa := params.FragmentToleranceDa
		found := len(sp.PeaksInWindow(ion.massDa-tolDa, ion.massDa+tolDa)) > 0

		if found {
			product *= pType / pRandom
		} else {
			product *= (1 - pType) / (1 - pRandom)
		}
	}
	if product > 1 {
		return math.Log10(product)
	}
	return 0
}
