package graph

import (
	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// terminus selects which evidence array a hypothesis paints.
type terminus int

const (
	nTerminus terminus = iota
	cTerminus
)

// kind names the fragment-ion species a hypothesis interprets a peak
// as, matching the glossary.
type kind int

const (
	ionB kind = iota
	ionBWater
	ionBAmmonia
	ionA
	ionAWater
	ionAAmmonia
	ionY
	ionYWater
	ionYAmmonia
)

// hypothesis is one of the fragment-ion interpretations painted during
// peak projection.
type hypothesis struct {
	kind     kind
	terminus terminus
	weight   func(w config.IonWeights) int
}

// standardHypotheses is the ion set painted under every template
// (Triple-quad, Ion-trap, Generic/Q-TOF): b, b-17/-18, a, a-17/-18, y,
// y-17/-18. Project applies no template-specific tolerance or low-mass
// retention rule either, so peak projection is the same under every
// template.
var standardHypotheses = []hypothesis{
	{ionB, nTerminus, func(w config.IonWeights) int { return w.B }},
	{ionBWater, nTerminus, func(w config.IonWeights) int { return w.BWater }},
	{ionBAmmonia, nTerminus, func(w config.IonWeights) int { return w.BAmmonia }},
	{ionA, nTerminus, func(w config.IonWeights) int { return w.A }},
	{ionAWater, nTerminus, func(w config.IonWeights) int { return w.AWater }},
	{ionAAmmonia, nTerminus, func(w config.IonWeights) int { return w.AAmmonia }},
	{ionY, cTerminus, func(w config.IonWeights) int { return w.Y }},
	{ionYWater, cTerminus, func(w config.IonWeights) int { return w.YWater }},
	{ionYAmmonia, cTerminus, func(w config.IonWeights) int { return w.YAmmonia }},
}

// hypothesesFor returns the ion set a template considers. Every
// template gets the same list, and Project does not vary its tolerance
// or low-mass handling by template either.
func hypothesesFor(config.FragmentationTemplate) []hypothesis {
	return standardHypotheses
}

// HighChargeMult, HighMassBMult and HighMassAMult are the fixed
// attenuation multipliers of step 4: fragment charge above
// the most-likely charge, b-ions above the precursor m/z, and a-ions
// above 350 Da are each disfavoured.
const (
	HighChargeMult = 0.5
	HighMassBMult  = 0.5
	HighMassAMult  = 0.1
	highMassACutoffDa = 350.0
)

// bEquivalentMass converts a singly-charged-equivalent ion mass
// (ion1, see Project) under a given hypothesis to the corresponding
// b-ion mass: b ions pass through unchanged, y ions convert via
// b = M + 2H - y, a ions via b = a + CO, with water/ammonia losses
// inverted accordingly.
func bEquivalentMass(h hypothesis, ion1 float64, precursorMassDa float64, scale masstab.Scale) float64 {
	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	water := masstab.MonoisotopicElementMass[masstab.Hydrogen]*2 + masstab.MonoisotopicElementMass[masstab.Oxygen]
	ammonia := masstab.MonoisotopicElementMass[masstab.Nitrogen] + masstab.MonoisotopicElementMass[masstab.Hydrogen]*3
	co := masstab.MonoisotopicElementMass[masstab.Carbon] + masstab.MonoisotopicElementMass[masstab.Oxygen]

	switch h.kind {
	case ionB:
		return ion1
	case ionBWater:
		return ion1 + water
	case ionBAmmonia:
		return ion1 + ammonia
	case ionA:
		return ion1 + co
	case ionAWater:
		return ion1 + water + co
	case ionAAmmonia:
		return ion1 + ammonia + co
	case ionY:
		return precursorMassDa + 2*proton - ion1
	case ionYWater:
		return precursorMassDa + 2*proton - (ion1 + water)
	case ionYAmmonia:
		return precursorMassDa + 2*proton - (ion1 + ammonia)
	}
	return ion1
}

// Project paints peak evidence into g,
// iterating every peak, every candidate charge, and every hypothesis
// the template recognizes. Each hypothesis kind is painted into its own
// scratch array first so corroboration (below) can tell which base ion,
// if any, backs a loss or an a-ion at a given position before the
// per-terminus evidence arrays are assembled.
func Project(g *Graph, sp spectrum.Spectrum, params config.Params) {
	proton := masstab.MonoisotopicElementMass[masstab.Hydrogen]
	co := masstab.MonoisotopicElementMass[masstab.Carbon] + masstab.MonoisotopicElementMass[masstab.Oxygen]
	hyps := hypothesesFor(params.Template)
	mostLikelyFragmentCharge := params.ChargeState - 1
	if mostLikelyFragmentCharge < 1 {
		mostLikelyFragmentCharge = 1
	}

	maxCharge := params.ChargeState
	if !params.Centroided {
		maxCharge = 1 // deconvolved/profile input is capped to charge 1
	}
	if maxCharge < 1 {
		maxCharge = 1
	}

	tolScaled := g.Tables.Scale.Round(params.FragmentToleranceDa)
	switchScaled := g.Tables.Scale.Round(params.MonoToAvSwitchDa)

	byKind := make([][]int8, ionYAmmonia+1)
	for k := range byKind {
		byKind[k] = make([]int8, g.Len())
	}

	for _, peak := range sp.Peaks {
		for z := 1; z <= maxCharge; z++ {
			ion1 := peak.MZ*float64(z) - float64(z-1)*proton

			for _, h := range hyps {
				bMassDa := bEquivalentMass(h, ion1, params.PrecursorMass, g.Tables.Scale)

				weight := float64(h.weight(params.IonWeights))
				if z > mostLikelyFragmentCharge {
					weight *= HighChargeMult
				}
				if h.terminus == nTerminus && (h.kind == ionB || h.kind == ionBWater || h.kind == ionBAmmonia) && bMassDa > params.PrecursorMass/float64(params.ChargeState) {
					weight *= HighMassBMult
				}
				// bMassDa is b-equivalent; the a ion itself is CO lighter.
				if (h.kind == ionA || h.kind == ionAWater || h.kind == ionAAmmonia) && bMassDa-co > highMassACutoffDa {
					weight *= HighMassAMult
				}
				if weight == 0 {
					continue
				}

				scaledMass := g.Tables.Scale.Round(bMassDa)
				scaledMass = masstab.MonoToAvScaled(scaledMass, switchScaled, g.Tables.Scale)

				paintWindow(byKind[h.kind], scaledMass, tolScaled, int(weight+0.5))
			}
		}
	}

	assembleCorroborated(g, byKind)
	zeroUncorroboratedDisfavoured(g, params)
}

// assembleCorroborated merges the per-hypothesis scratch arrays into
// g.EvidenceN/g.EvidenceC, enforcing the base-ion corroboration rule: b
// and y are always credited; a is credited only where b already fired
// at that position; b-17/-18 require b, a-17/-18 require a, and y-17/-18
// require y, each at the same position.
func assembleCorroborated(g *Graph, byKind [][]int8) {
	for i := 0; i < g.Len(); i++ {
		if byKind[ionB][i] != 0 {
			AddEvidence(g.EvidenceN, i, int(byKind[ionB][i]))
			if byKind[ionBWater][i] != 0 {
				AddEvidence(g.EvidenceN, i, int(byKind[ionBWater][i]))
			}
			if byKind[ionBAmmonia][i] != 0 {
				AddEvidence(g.EvidenceN, i, int(byKind[ionBAmmonia][i]))
			}
			if byKind[ionA][i] != 0 {
				AddEvidence(g.EvidenceN, i, int(byKind[ionA][i]))
				if byKind[ionAWater][i] != 0 {
					AddEvidence(g.EvidenceN, i, int(byKind[ionAWater][i]))
				}
				if byKind[ionAAmmonia][i] != 0 {
					AddEvidence(g.EvidenceN, i, int(byKind[ionAAmmonia][i]))
				}
			}
		}

		if byKind[ionY][i] != 0 {
			AddEvidence(g.EvidenceC, i, int(byKind[ionY][i]))
			if byKind[ionYWater][i] != 0 {
				AddEvidence(g.EvidenceC, i, int(byKind[ionYWater][i]))
			}
			if byKind[ionYAmmonia][i] != 0 {
				AddEvidence(g.EvidenceC, i, int(byKind[ionYAmmonia][i]))
			}
		}
	}
}

// paintWindow adds weight across [mass-tol, mass+tol] in arr.
func paintWindow(arr []int8, mass, tol, weight int) {
	for i := mass - tol; i <= mass+tol; i++ {
		AddEvidence(arr, i, weight)
	}
}

// zeroUncorroboratedDisfavoured is the last step of peak projection,
// separate from assembleCorroborated's base-ion gating: any position
// whose combined evidence is still strictly below the base y- or
// b-weight is zeroed, since it can only have arisen from a disfavoured
// hypothesis (high charge, high mass) attenuated below the threshold a
// real base ion would clear on its own.
func zeroUncorroboratedDisfavoured(g *Graph, params config.Params) {
	baseB := params.IonWeights.B
	baseY := params.IonWeights.Y

	for i := range g.EvidenceN {
		if int(g.EvidenceN[i]) != 0 && int(g.EvidenceN[i]) < baseB && int(g.EvidenceN[i]) != SaturationSentinel {
			g.EvidenceN[i] = 0
		}
	}
	for i := range g.EvidenceC {
		if int(g.EvidenceC[i]) != 0 && int(g.EvidenceC[i]) < baseY && int(g.EvidenceC[i]) != SaturationSentinel {
			g.EvidenceC[i] = 0
		}
	}
}
