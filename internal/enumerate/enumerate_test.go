package enumerate

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/masstab"
	"github.com/ksantone/lutefisk/internal/summednode"
)

func testTables() masstab.Tables {
	return masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
}

// buildARGraph constructs the graph for the synthetic dipeptide AR
// fixture.
func buildARGraph(t *testing.T) (*graph.Graph, gaplist.List, config.Params) {
	t.Helper()
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 246.157
	params.ChargeState = 1

	g := graph.New(tables, params, params.PrecursorMass)
	gaps := gaplist.Build(tables, nil, 0)

	alaMass := tables.ResidueMass[masstab.Ala]
	argMass := tables.ResidueMass[masstab.Arg]

	bIon := g.NTerm + alaMass
	if bIon >= 0 && bIon < g.Len() {
		g.EvidenceN[bIon] = 40
	}
	yComplement := g.CLo - argMass
	if yComplement >= 0 && yComplement < g.Len() {
		g.EvidenceC[yComplement] = 40
		g.Node[yComplement] = 40
	}

	return g, gaps, params
}

func TestCompletedSortedDescendingAndCapped(t *testing.T) {
	g, gaps, params := buildARGraph(t)
	result := summednode.Run(g, gaps, params.Template, params.IonWeights.Total())
	oneEdge := make(map[int]bool)
	for _, idx := range result.OneEdgeNodes {
		oneEdge[idx] = true
	}

	res := Run(context.Background(), g, gaps, oneEdge, params, graph.TagOverlayResult{})

	for i := 1; i < len(res.Completed); i++ {
		assert.GreaterOrEqual(t, res.Completed[i-1].Score, res.Completed[i].Score,
			"completed candidates must remain sorted descending by score")
	}
	assert.LessOrEqual(t, len(res.Completed), params.TopSeqNum)
}

// TestCompletionMassWithinTolerance checks that every completed
// candidate's mass stays within tolerance of the precursor.
func TestCompletionMassWithinTolerance(t *testing.T) {
	g, gaps, params := buildARGraph(t)
	result := summednode.Run(g, gaps, params.Template, params.IonWeights.Total())
	oneEdge := make(map[int]bool)
	for _, idx := range result.OneEdgeNodes {
		oneEdge[idx] = true
	}

	res := Run(context.Background(), g, gaps, oneEdge, params, graph.TagOverlayResult{})

	// The candidate's axis mass is compared against the same
	// precursor-minus-C-terminus quantity the graph's C-terminal seed
	// band was built from (graph.New), not the raw precursor mass: the
	// axis never carries the C-terminal water/proton term.
	peptideErrScaled := g.Tables.Scale.Round(params.PeptideErrDa)
	cTermMono := g.Tables.Scale.Round(params.PrecursorMass - params.ModifiedCTermMass)
	for _, c := range res.Completed {
		diff := c.ScaledMass - cTermMono
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, peptideErrScaled)
	}
}

// TestGapAccountingMatchesGapSteps checks that gapCount equals the
// number of two-residue steps, ignoring the first seed step.
func TestGapAccountingMatchesGapSteps(t *testing.T) {
	g, gaps, params := buildARGraph(t)
	result := summednode.Run(g, gaps, params.Template, params.IonWeights.Total())
	oneEdge := make(map[int]bool)
	for _, idx := range result.OneEdgeNodes {
		oneEdge[idx] = true
	}

	res := Run(context.Background(), g, gaps, oneEdge, params, graph.TagOverlayResult{})

	for _, c := range res.Completed {
		gapSteps := 0
		for i, step := range c.Steps {
			if i == 0 {
				continue // seed step never counts toward gap accounting
			}
			if step.IsGap {
				gapSteps++
			}
		}
		assert.Equal(t, gapSteps, c.GapCount)
	}
}

func TestFindsARDipeptide(t *testing.T) {
	g, gaps, params := buildARGraph(t)
	result := summednode.Run(g, gaps, params.Template, params.IonWeights.Total())
	oneEdge := make(map[int]bool)
	for _, idx := range result.OneEdgeNodes {
		oneEdge[idx] = true
	}

	res := Run(context.Background(), g, gaps, oneEdge, params, graph.TagOverlayResult{})
	assert.NotEmpty(t, res.Completed)

	sort.Slice(res.Completed, func(i, j int) bool { return res.Completed[i].Score > res.Completed[j].Score })
	found := false
	for _, c := range res.Completed {
		if string(c.Residues) == "AR" {
			found = true
			break
		}
	}
	assert.True(t, found, "expected AR among completed candidates, got %v", res.Completed)
}
