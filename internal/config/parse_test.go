package config

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	src := `
# comment
precursorMass = 246.157
chargeState = 1
fragmentErr = 0.5
fragmentPattern = T
proteolysis = T
absentResidues = W
tagSequence = EL
tagLowYMass = 289.16
tagHighYMass = 531.3
`
	p, err := Parse(strings.NewReader(src), Default())
	require.NoError(t, err)
	assert.Equal(t, 246.157, p.PrecursorMass)
	assert.Equal(t, 1, p.ChargeState)
	assert.Equal(t, TripleQuadTryptic, p.Template)
	assert.Equal(t, []rune("W"), p.AbsentResidues)
	assert.True(t, p.Tag.Active)
	assert.Equal(t, "EL", p.Tag.Sequence)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("not-an-assignment"), Default())
	assert.Error(t, err)
}

func TestParseResidueTable(t *testing.T) {
	src := "A 71.03711\nW 0\nC 103.00919\n"
	table, err := ParseResidueTable(strings.NewReader(src))
	require.NoError(t, err)
	assert.InDelta(t, 71.03711, table['A'], 1e-6)
	assert.Zero(t, table['W'])
}

func TestValidateRejectsUnknownTemplate(t *testing.T) {
	p := Default()
	p.Template = 'Z'
	assert.Error(t, p.Validate())
}

func TestCloneIsDeepEqualButIndependent(t *testing.T) {
	p := Default()
	p.PresentResidues = []rune("KR")
	p.AbsentResidues = []rune("W")

	clone := p.Clone()
	if diff := cmp.Diff(p, clone); diff != "" {
		t.Errorf("Clone() produced a value that differs from the original:\n%s", diff)
	}

	clone.PresentResidues[0] = 'A'
	assert.Equal(t, rune('K'), p.PresentResidues[0], "mutating the clone's slice must not affect the original")
}

func TestWrongSeqNumRoundedUp(t *testing.T) {
	p := Default()
	p.WrongSeqNum = 9
	assert.Equal(t, 10, p.WrongSeqNumRoundedUp())
	p.WrongSeqNum = 10
	assert.Equal(t, 10, p.WrongSeqNumRoundedUp())
}
