package reconciliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsWith(valid, missing int) []Row {
	var rows []Row
	for i := 0; i < valid; i++ {
		rows = append(rows, Row{Value: Number(1), Status: StatusValid})
	}
	for i := 0; i < missing; i++ {
		rows = append(rows, Row{Value: Null(), Status: StatusMissing})
	}
	return rows
}

func TestSummarizeScoreBounds(t *testing.T) {
	for valid := 0; valid <= 6; valid++ {
		for missing := 0; missing <= 6; missing++ {
			s := Summarize(rowsWith(valid, missing))
			assert.GreaterOrEqual(t, s.Score, 0.0)
			assert.LessOrEqual(t, s.Score, 100.0)
			assert.Equal(t, valid+missing, s.Total)
			if missing == 0 {
				assert.Equal(t, 100.0, s.Score)
			} else {
				assert.Less(t, s.Score, 100.0)
			}
		}
	}
	assert.Equal(t, Summary{Score: 100}, Summarize(nil))
	assert.Equal(t, 75.0, Summarize(rowsWith(3, 1)).Score)
}

func balanceResults(sufficiency, margin float64) Results {
	var r Results
	r.Add(Section{Name: CheckEnergyBalance, Nodes: []Node{
		Group("balance_metrics", Leaf("energy_sufficiency_percent", Number(sufficiency))),
	}})
	r.Add(Section{Name: CheckPhysicalConstraints, Nodes: []Node{
		Group("capacity_constraints", Leaf("capacity_margin", Number(margin))),
	}})
	return r
}

func TestRecommend(t *testing.T) {
	th := DefaultThresholds()

	all := Recommend(Summary{Total: 10, Valid: 8, Missing: 2, Score: 80}, balanceResults(20, 5), th)
	require.Len(t, all, 4)
	assert.Equal(t, "Data quality score is below 90%. Review missing or invalid data.", all[0])
	assert.Equal(t, "Found 2 missing data points. Complete data collection.", all[1])
	assert.Equal(t, "Energy production is insufficient for demand. Consider increasing renewable capacity.", all[2])
	assert.Equal(t, "Low capacity margin. Consider increasing system capacity for reliability.", all[3])

	none := Recommend(Summary{Total: 10, Valid: 10, Score: 100}, balanceResults(120, 40), th)
	assert.Empty(t, none)

	noSections := Recommend(Summary{Score: 100}, Results{}, th)
	assert.Empty(t, noSections)

	emptySections := Results{}
	emptySections.Add(Section{Name: CheckEnergyBalance})
	assert.Len(t, Recommend(Summary{Score: 100}, emptySections, th), 1)
}
