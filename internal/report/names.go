package report

// Table names per tier.
const (
	LoadProfilesSummary   = "load_profiles_summary"
	LoadStatistics        = "load_statistics"
	ProductionDataSummary = "production_data_summary"
	ProductionStatistics  = "production_statistics"
	SystemConfiguration   = "system_configuration"
	WeatherDataSummary    = "weather_data_summary"
	WeatherStatistics     = "weather_statistics"

	TechnologyCostsSummary   = "technology_costs_summary"
	EnergyMarketSummary      = "energy_market_summary"
	SystemPerformanceSummary = "system_performance_summary"
	PerformanceStatistics    = "performance_statistics"
	EnergyBalanceSummary     = "energy_balance_summary"
	ComponentAnalysisSummary = "component_analysis_summary"

	DataQualityAssessment           = "data_quality_assessment"
	InputOutputConsistency          = "input_output_consistency"
	EnergyBalanceValidation         = "energy_balance_validation"
	EconomicConsistencyCheck        = "economic_consistency_check"
	TemporalConsistencyCheck        = "temporal_consistency_check"
	PhysicalConstraintsValidation   = "physical_constraints_validation"
	ComprehensiveReport             = "comprehensive_reconciliation_report"
	ReconciliationReport            = "reconciliation_report"
	ReconciliationSummaryStatistics = "reconciliation_summary_statistics"
	ReconciliationSummary           = "reconciliation_summary"
	ReconciliationRecommendations   = "reconciliation_recommendations"
)

// KnownTables lists every table the emitter can produce, per tier. A known table that is
// not produced by a run has its previous file removed.
var KnownTables = map[Tier][]string{
	TierIntermediate: {
		LoadProfilesSummary, LoadStatistics, ProductionDataSummary, ProductionStatistics,
		SystemConfiguration, WeatherDataSummary, WeatherStatistics,
	},
	TierFinal: {
		TechnologyCostsSummary, EnergyMarketSummary, SystemPerformanceSummary,
		PerformanceStatistics, EnergyBalanceSummary, ComponentAnalysisSummary,
	},
	TierReconciliation: {
		DataQualityAssessment, InputOutputConsistency, EnergyBalanceValidation,
		EconomicConsistencyCheck, TemporalConsistencyCheck, PhysicalConstraintsValidation,
		ComprehensiveReport, ReconciliationReport, ReconciliationSummaryStatistics, ReconciliationSummary,
		ReconciliationRecommendations,
	},
}
