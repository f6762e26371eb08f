package config

// IonWeights holds the additive evidence weight each fragment-ion
// hypothesis contributes to a graph node. Values are in the same
// arbitrary evidence units the graph arrays are clamped to (int8, see
// internal/graph), not daltons.
type IonWeights struct {
	B  int
	Y  int
	A  int

	BWater   int // b-H2O
	BAmmonia int // b-NH3
	AWater   int // a-H2O
	AAmmonia int // a-NH3
	YWater   int // y-H2O
	YAmmonia int // y-NH3
}

// Total sums every weight this set carries, used as the shared
// "totalIonWeight" quantity the Edman overlay's totalIonWeight/2
// addition and the summed-node scorer's both-termini bonus both
// reference.
func (w IonWeights) Total() int {
	return w.B + w.Y + w.A + w.BWater + w.BAmmonia + w.AWater + w.AAmmonia + w.YWater + w.YAmmonia
}

// DefaultIonWeights returns the built-in default for a triple-quad/Q-TOF
// run: b and y ions carry the most weight, a ions and neutral losses
// less.
func DefaultIonWeights() IonWeights {
	return IonWeights{
		B: 30, Y: 30, A: 10,
		BWater: 15, BAmmonia: 15,
		AWater: 5, AAmmonia: 5,
		YWater: 15, YAmmonia: 15,
	}
}
