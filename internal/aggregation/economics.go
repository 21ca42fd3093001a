package aggregation

import (
	"math"

	"github.com/shopspring/decimal"

	plant "plant-reconcile/internal/plant/domain"
)

// Market and incentive keys read by the economic checks.
const (
	MarketElectricity     = "electricity"
	MarketHydrogen        = "hydrogen"
	IncentiveGreenH2      = "green_hydrogen_incentives"
	IncentiveAmmonia      = "ammonia_incentives"
	IncentiveREC          = "REC"
	recSelfConsumptionKey = "collective self consumption incentives"
)

// PriceAnalysis holds purchase and sale prices of the priced carriers.
type PriceAnalysis struct {
	ElectricityPurchase float64
	ElectricitySale     float64
	HydrogenPurchase    float64
	HydrogenSale        float64
	// Spreads are purchase minus sale, 0 unless both prices are positive.
	ElectricitySpread float64
	HydrogenSpread    float64
}

// IncentiveAnalysis sums the fixed set of named incentives.
type IncentiveAnalysis struct {
	GreenHydrogen float64
	Ammonia       float64
	REC           float64
	Total         float64
}

// EconomicsSummary is the economics aggregator output.
type EconomicsSummary struct {
	Costs              []plant.CostEntry
	Market             []plant.MarketEntry
	TotalMarketEntries int
	TotalCapital       decimal.Decimal
	TotalOM            decimal.Decimal
	MissingCosts       int
	InvalidPrices      int
	Prices             PriceAnalysis
	Incentives         IncentiveAnalysis
}

// AggregateEconomics reads technology costs and market prices.
func AggregateEconomics(ds plant.Dataset) EconomicsSummary {
	s := EconomicsSummary{
		Costs:              plant.CostEntries(ds.Costs),
		Market:             plant.MarketEntries(ds.Market),
		TotalMarketEntries: ds.Market.Len(),
		TotalCapital:       decimal.Zero,
		TotalOM:            decimal.Zero,
		InvalidPrices:      plant.NegativePrices(ds.Market),
	}
	for _, c := range s.Costs {
		if !c.HasUnitCost {
			s.MissingCosts++
		}
		s.TotalCapital = s.TotalCapital.Add(decimalOf(c.CostPerUnit))
		s.TotalOM = s.TotalOM.Add(decimalOf(c.OeM))
	}
	s.Prices = analysePrices(ds.Market)
	s.Incentives = analyseIncentives(ds.Market)
	return s
}

// CapitalCost returns the capital cost total as float64.
func (s EconomicsSummary) CapitalCost() float64 {
	return s.TotalCapital.InexactFloat64()
}

// OMCost returns the O&M cost total as float64.
func (s EconomicsSummary) OMCost() float64 {
	return s.TotalOM.InexactFloat64()
}

func analysePrices(market plant.Attributes) PriceAnalysis {
	elec := market.Sub(MarketElectricity)
	h2 := market.Sub(MarketHydrogen)
	p := PriceAnalysis{
		ElectricityPurchase: elec.NumberOr("purchase", 0),
		ElectricitySale:     elec.NumberOr("sale", 0),
		HydrogenPurchase:    h2.NumberOr("purchase", 0),
		HydrogenSale:        h2.NumberOr("sale", 0),
	}
	p.ElectricitySpread = spread(p.ElectricityPurchase, p.ElectricitySale)
	p.HydrogenSpread = spread(p.HydrogenPurchase, p.HydrogenSale)
	return p
}

func spread(purchase, sale float64) float64 {
	if purchase > 0 && sale > 0 {
		return purchase - sale
	}
	return 0
}

func analyseIncentives(market plant.Attributes) IncentiveAnalysis {
	a := IncentiveAnalysis{
		GreenHydrogen: market.Sub(IncentiveGreenH2).NumberOr("value", 0),
		Ammonia:       market.Sub(IncentiveAmmonia).NumberOr("value", 0),
		REC:           market.Sub(IncentiveREC).NumberOr(recSelfConsumptionKey, 0),
	}
	a.Total = decimalOf(a.GreenHydrogen).
		Add(decimalOf(a.Ammonia)).
		Add(decimalOf(a.REC)).
		InexactFloat64()
	return a
}

// decimalOf converts f, mapping NaN and infinities to zero.
func decimalOf(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
