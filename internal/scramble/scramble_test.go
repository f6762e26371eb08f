package scramble

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/spectrum"
)

// TestRunSkipsOffsetsWhenWrongSeqNumIsZero confirms the controller
// degenerates to a single true-mass run when scrambling is disabled.
func TestRunSkipsOffsetsWhenWrongSeqNumIsZero(t *testing.T) {
	params := config.Default()
	params.WrongSeqNum = 0

	calls := 0
	run := func(ctx context.Context, sp spectrum.Spectrum, p config.Params) (float64, bool, error) {
		calls++
		return 1.0, true, nil
	}

	result, err := Run(context.Background(), spectrum.Spectrum{}, params, run)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, result.OffMassScores)
	assert.Equal(t, 1.0, result.TrueScore)
}

// TestRunExecutesRoundedUpOffsetsWithReducedCaps checks that
// wrongSeqNum = 10 runs ten off-mass iterations (five positive, five
// negative), each with the reduced caps, and the true-mass run uses the
// original caps.
func TestRunExecutesRoundedUpOffsetsWithReducedCaps(t *testing.T) {
	params := config.Default()
	params.WrongSeqNum = 9 // rounds up to 10
	params.TopSeqNum = 2000
	params.PrecursorMass = 1000

	var seenMasses []float64
	var seenCaps []int
	run := func(ctx context.Context, sp spectrum.Spectrum, p config.Params) (float64, bool, error) {
		seenMasses = append(seenMasses, p.PrecursorMass)
		seenCaps = append(seenCaps, p.TopSeqNum)
		if p.PrecursorMass == 1000 {
			return 10.0, true, nil
		}
		return 1.0, true, nil
	}

	result, err := Run(context.Background(), spectrum.Spectrum{}, params, run)
	assert.NoError(t, err)
	assert.Len(t, seenMasses, 11) // 1 true-mass + 10 off-mass
	assert.Equal(t, 2000, seenCaps[0])
	for _, cap := range seenCaps[1:] {
		assert.Equal(t, OffMassTopSeqNum, cap)
	}
	assert.Len(t, result.OffMassScores, 10)
	assert.Equal(t, 10.0, result.TrueScore)
	assert.Greater(t, result.TrueScore, Median(result.OffMassScores))
}

func TestMedianEvenAndOdd(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	assert.Zero(t, Median(nil))
}
