package reconciliation

import "fmt"

// Summary holds the row counts and the quality score.
type Summary struct {
	Total   int
	Valid   int
	Missing int
	Score   float64
}

// Summarize counts rows by status. Score is 100 × valid / total, and 100 when there are
// no rows.
func Summarize(rows []Row) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		if r.Status == StatusMissing {
			s.Missing++
		} else {
			s.Valid++
		}
	}
	if s.Total == 0 {
		s.Score = 100
		return s
	}
	s.Score = 100 * float64(s.Valid) / float64(s.Total)
	return s
}

// Thresholds drive the recommendation rules.
type Thresholds struct {
	MinQualityScore   float64 `yaml:"min_quality_score"`
	MinSufficiency    float64 `yaml:"min_energy_sufficiency"`
	MinCapacityMargin float64 `yaml:"min_capacity_margin"`
}

// DefaultThresholds returns the standard rule limits.
func DefaultThresholds() Thresholds {
	return Thresholds{MinQualityScore: 90, MinSufficiency: 50, MinCapacityMargin: 10}
}

// Recommend applies the fixed rules in order: low quality score, missing rows, insufficient
// production and low capacity margin. The last two only apply when their check section
// exists; an absent metric inside an existing section reads as 0.
func Recommend(summary Summary, results Results, th Thresholds) []string {
	var out []string
	if summary.Score < th.MinQualityScore {
		out = append(out, fmt.Sprintf("Data quality score is below %s%%. Review missing or invalid data.", formatPercent(th.MinQualityScore)))
	}
	if summary.Missing > 0 {
		out = append(out, fmt.Sprintf("Found %d missing data points. Complete data collection.", summary.Missing))
	}
	if v, ok := results.NumberAt(CheckEnergyBalance, "balance_metrics", "energy_sufficiency_percent"); ok && v < th.MinSufficiency {
		out = append(out, "Energy production is insufficient for demand. Consider increasing renewable capacity.")
	}
	if v, ok := results.NumberAt(CheckPhysicalConstraints, "capacity_constraints", "capacity_margin"); ok && v < th.MinCapacityMargin {
		out = append(out, "Low capacity margin. Consider increasing system capacity for reliability.")
	}
	return out
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%g", v)
}
