package aggregation

import (
	plant "plant-reconcile/internal/plant/domain"
)

// ComponentSummary is the resolved view of one configured component.
type ComponentSummary struct {
	Name        string
	Capacity    float64
	HasCapacity bool
	Alias       string
	Priority    string
	Owned       string
	Model       string
	Strategy    string
	Category    plant.Category
}

// ConfigurationSummary is the configuration aggregator output.
type ConfigurationSummary struct {
	Components []ComponentSummary
	// TotalEntries counts every configured entry, including non-mapping ones.
	TotalEntries      int
	MissingCapacities int
	InvalidPriorities int
	// TotalCapacity sums every resolved capacity regardless of category.
	TotalCapacity float64
	Renewable     float64
	Storage       float64
	Conversion    float64
}

// AggregateConfiguration resolves capacities and classifies every component.
func AggregateConfiguration(ds plant.Dataset) ConfigurationSummary {
	s := ConfigurationSummary{TotalEntries: ds.ComponentCount()}
	for _, c := range ds.Components() {
		capacity, alias, ok := c.Capacity()
		cs := ComponentSummary{
			Name:        c.Name,
			Capacity:    capacity,
			HasCapacity: ok,
			Alias:       alias,
			Priority:    c.Field("priority"),
			Owned:       c.Field("owned"),
			Model:       c.Field("model"),
			Strategy:    c.Field("strategy"),
			Category:    c.Category(),
		}
		if !ok {
			s.MissingCapacities++
		}
		if c.HasInvalidPriority() {
			s.InvalidPriorities++
		}
		s.TotalCapacity += capacity
		switch cs.Category {
		case plant.CategoryRenewable:
			s.Renewable += capacity
		case plant.CategoryStorage:
			s.Storage += capacity
		case plant.CategoryConversion:
			s.Conversion += capacity
		}
		s.Components = append(s.Components, cs)
	}
	return s
}

// CapacityOf returns the resolved capacity of the named component, 0 when absent.
func (s ConfigurationSummary) CapacityOf(name string) float64 {
	for _, c := range s.Components {
		if c.Name == name {
			return c.Capacity
		}
	}
	return 0
}
