package plant

import "strings"

// CostEntry holds the cost attributes of one technology. Missing fields are 0.
type CostEntry struct {
	Technology       string
	CostPerUnit      float64
	OeM              float64
	ReplacementRate  float64
	ReplacementYears float64
	// HasUnitCost is false when "cost per unit" is absent or not numeric.
	HasUnitCost bool
	HasOeM      bool
}

// CostEntries reads every technology of a tech-cost document in order.
func CostEntries(costs Attributes) []CostEntry {
	entries := make([]CostEntry, 0, costs.Len())
	for _, item := range costs.Items() {
		attrs := item.Value.Attributes()
		replacement := attrs.Sub("replacement")
		unit, hasUnit := attrs.Number("cost per unit")
		oem, hasOeM := attrs.Number("OeM")
		entries = append(entries, CostEntry{
			Technology:       item.Key,
			CostPerUnit:      unit,
			OeM:              oem,
			ReplacementRate:  replacement.NumberOr("rate", 0),
			ReplacementYears: replacement.NumberOr("years", 0),
			HasUnitCost:      hasUnit,
			HasOeM:           hasOeM,
		})
	}
	return entries
}

// UnitCost returns the numeric "cost per unit" for a technology.
func UnitCost(costs Attributes, technology string) (float64, bool) {
	return costs.Sub(technology).Number("cost per unit")
}

// MarketEntry holds the prices of one carrier or incentive.
type MarketEntry struct {
	Name      string
	Purchase  float64
	Sale      float64
	Incentive float64
	Attrs     Attributes
}

// IsIncentive reports whether the entry name denotes an incentive.
func IsIncentive(name string) bool {
	return strings.Contains(name, "incentive")
}

// MarketEntries reads the mapping entries of an energy-market document in order.
// Scalar entries are skipped.
func MarketEntries(market Attributes) []MarketEntry {
	entries := make([]MarketEntry, 0, market.Len())
	for _, item := range market.Items() {
		if !item.Value.IsMap() {
			continue
		}
		attrs := item.Value.Attributes()
		entry := MarketEntry{
			Name:     item.Key,
			Purchase: attrs.NumberOr("purchase", 0),
			Sale:     attrs.NumberOr("sale", 0),
			Attrs:    attrs,
		}
		if IsIncentive(item.Key) {
			entry.Incentive = attrs.NumberOr("value", 0)
		}
		entries = append(entries, entry)
	}
	return entries
}

// NegativePrices counts numeric values below zero across all market entries.
func NegativePrices(market Attributes) int {
	var n int
	for _, entry := range MarketEntries(market) {
		for _, attr := range entry.Attrs.Items() {
			if v, ok := attr.Value.Number(); ok && v < 0 {
				n++
			}
		}
	}
	return n
}
