package summednode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ksantone/lutefisk/internal/config"
	"github.com/ksantone/lutefisk/internal/gaplist"
	"github.com/ksantone/lutefisk/internal/graph"
	"github.com/ksantone/lutefisk/internal/masstab"
)

func testTables() masstab.Tables {
	return masstab.New(masstab.DefaultResidueMasses(103.00919), 0.5)
}

// TestOneEdgeNodesAreAscendingUniqueAndUnreachableFurther checks that
// the one-edge-node set returned by Run is strictly ascending, contains
// no duplicate, and none of its members can be extended further by any
// single-residue jump.
func TestOneEdgeNodesAreAscendingUniqueAndUnreachableFurther(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 246.157 // AR
	g := graph.New(tables, params, params.PrecursorMass)
	gaps := gaplist.Build(tables, nil, 0)

	argMass := tables.ResidueMass[masstab.Arg]
	node := g.CLo - argMass
	if node >= 0 && node < len(g.EvidenceN) {
		g.EvidenceN[node] = 20
		g.EvidenceC[node] = 20
	}

	result := Run(g, gaps, params.Template, params.IonWeights.Total())

	for i := 1; i < len(result.OneEdgeNodes); i++ {
		assert.Less(t, result.OneEdgeNodes[i-1], result.OneEdgeNodes[i],
			"one-edge-node set must be strictly ascending with no duplicates")
	}

	for _, idx := range result.OneEdgeNodes {
		for _, single := range gaps.Singles {
			if single.Mass == 0 {
				continue
			}
			target := idx - single.Mass
			if target >= 0 && target < len(g.EvidenceN) {
				assert.True(t, g.EvidenceN[target] == 0 && g.EvidenceC[target] == 0,
					"one-edge node %d should not be extensible to %d by a single residue jump", idx, target)
			}
		}
	}
}

func TestRunPositivifiesScoresButPreservesSuperNodes(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 400
	g := graph.New(tables, params, params.PrecursorMass)
	gaps := gaplist.Build(tables, nil, 0)

	superIdx := g.NTerm + 5
	g.EvidenceN[superIdx] = graph.SuperNode
	g.EvidenceC[superIdx] = graph.SuperNode
	g.Node[superIdx] = graph.SuperNode

	Run(g, gaps, params.Template, params.IonWeights.Total())

	assert.Equal(t, int8(graph.SuperNode), g.Node[superIdx])
	for _, v := range g.Node {
		assert.True(t, v >= 0 || v == graph.SuperNode, "all non-super-node scores must be positive after Run")
	}
}

func TestRunOverlaysUnchainableStrongPeaks(t *testing.T) {
	tables := testTables()
	params := config.Default()
	params.PrecursorMass = 400
	g := graph.New(tables, params, params.PrecursorMass)
	gaps := gaplist.Build(tables, nil, 0)

	isolated := g.NTerm + 3
	g.EvidenceN[isolated] = 40

	Run(g, gaps, params.Template, params.IonWeights.Total())

	assert.NotZero(t, g.Node[isolated], "a strong peak unreached by the backward walk should still score")
}
