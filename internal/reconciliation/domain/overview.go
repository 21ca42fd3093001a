package reconciliation

// Overview is the single-row run summary.
type Overview struct {
	LoadProfiles         int
	ProductionSources    int
	SystemComponents     int
	TechnologyCosts      int
	MarketParameters     int
	MaxElectricityDemand float64
	MaxHeatDemand        float64
	MaxHydrogenDemand    float64
	TotalSystemCapacity  float64
	TotalCapitalCost     float64
	TotalOMCost          float64
	// Purchase prices of the electricity and hydrogen market entries, 0 when absent.
	ElectricityPrice float64
	HydrogenPrice    float64
}

// Report is the full output of one reconciliation run.
type Report struct {
	Results         Results
	Rows            []Row
	Summary         Summary
	Recommendations []string
	Overview        Overview
}
