package gaplist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksantone/lutefisk/internal/masstab"
)

func TestBuildZeroesAbsentResidue(t *testing.T) {
	tables := masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
	list := Build(tables, []rune{'W'}, 0)
	assert.Zero(t, list.Singles[masstab.Trp].Mass)
	assert.NotZero(t, list.Singles[masstab.Ala].Mass)
}

func TestBuildPairsAreUniqueAndSorted(t *testing.T) {
	tables := masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
	list := Build(tables, nil, 0)
	seen := make(map[int]bool)
	for i, pair := range list.Pairs {
		assert.False(t, seen[pair.Mass], "duplicate pair mass %d", pair.Mass)
		seen[pair.Mass] = true
		if i > 0 {
			assert.GreaterOrEqual(t, pair.Mass, list.Pairs[i-1].Mass)
		}
	}
}

func TestBuildFoldsIleLeuAtCoarseTolerance(t *testing.T) {
	tables := masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
	list := Build(tables, nil, 50) // coarse tolerance wider than the Ile/Leu mass gap (they're isobaric)
	assert.Equal(t, list.Singles[masstab.Leu].Mass, list.Singles[masstab.Ile].Mass)
}

func TestContainsProline(t *testing.T) {
	e := Entry{Residues: []masstab.Residue{masstab.Gly, masstab.Pro}}
	assert.True(t, e.ContainsProline())
	e2 := Entry{Residues: []masstab.Residue{masstab.Gly, masstab.Ala}}
	assert.False(t, e2.ContainsProline())
}
