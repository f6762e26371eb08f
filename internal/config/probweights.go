package config

// IonProbabilities holds the per-ion-type hit probabilities the
// probabilistic intensity score multiplies against P_random: b, b-17,
// b-18, a, y, y-17, y-18, immonium, internal, and
// internal-with-N-terminal-proline each carry their own configured
// constant.
type IonProbabilities struct {
	B                    float64
	BWater               float64
	BAmmonia             float64
	A                    float64
	Y                    float64
	YWater               float64
	YAmmonia             float64
	Immonium             float64
	Internal             float64
	InternalNTermProline float64
}

// DefaultIonProbabilities returns the built-in defaults: b and y ions
// are the most reliable witnesses, followed by their neutral losses
// and a-ions, with internal fragments and immonium ions least
// discriminating.
func DefaultIonProbabilities() IonProbabilities {
	return IonProbabilities{
		B:                    0.2,
		BWater:               0.05,
		BAmmonia:             0.05,
		A:                    0.05,
		Y:                    0.2,
		YWater:               0.05,
		YAmmonia:             0.05,
		Immonium:             0.02,
		Internal:             0.02,
		InternalNTermProline: 0.05,
	}
}
