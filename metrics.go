package carbonplan

import (
	"fmt"
	"math"
)

// PortfolioMetrics holds the aggregates of an allocation against a budget
// and a target.
type PortfolioMetrics struct {
	PortfolioSpend     float64 `json:"portfolioSpend"`
	PortfolioAbatement float64 `json:"portfolioAbatement"`
	// PortfolioCostPerTonne is 0 when nothing is abated.
	PortfolioCostPerTonne float64 `json:"portfolioCostPerTonne"`
	// GapToTarget is never negative, overachieving reports 0.
	GapToTarget float64 `json:"gapToTarget"`
	// BudgetUtilisationPercent is above 100 when the portfolio overspends.
	BudgetUtilisationPercent float64    `json:"budgetUtilisationPercent"`
	Efficiency               Efficiency `json:"efficiency"`
}

// TargetProgressPercent returns the share of the target already abated,
// capped to 100. A zero target is reached by definition.
func (m PortfolioMetrics) TargetProgressPercent() float64 {
	target := m.PortfolioAbatement + m.GapToTarget
	if target <= 0 {
		return 100
	}
	return math.Min(100, m.PortfolioAbatement/target*100)
}

// Overspent reports whether more than the total budget is allocated.
func (m PortfolioMetrics) Overspent() bool { return m.BudgetUtilisationPercent > 100 }

// ComputeMetrics computes the portfolio metrics of the allocations.
//
// The catalog drives the computation: every intervention is visited once in
// catalog order and its spend is looked up. Allocations to ids unknown to the
// catalog are ignored.
func ComputeMetrics(catalog *Catalog, allocations Allocations, totalBudget, targetTonnes float64) (PortfolioMetrics, error) {
	if catalog == nil {
		return PortfolioMetrics{}, fmt.Errorf("%w: nil catalog", ErrInvalidInput)
	}
	if err := checkAmount("total budget", totalBudget); err != nil {
		return PortfolioMetrics{}, err
	}
	if err := checkAmount("target", targetTonnes); err != nil {
		return PortfolioMetrics{}, err
	}

	var m PortfolioMetrics
	for _, i := range catalog.interventions {
		spend := SpendOf(allocations, i.id)
		m.PortfolioSpend += spend
		m.PortfolioAbatement += abatement(i, spend)
	}

	if m.PortfolioAbatement > 0 {
		m.PortfolioCostPerTonne = m.PortfolioSpend / m.PortfolioAbatement
	}
	m.GapToTarget = math.Max(0, targetTonnes-m.PortfolioAbatement)
	if totalBudget > 0 {
		m.BudgetUtilisationPercent = m.PortfolioSpend / totalBudget * 100
	}
	m.Efficiency = Classify(m.PortfolioCostPerTonne)
	return m, nil
}

// checkAmount returns an ErrInvalidInput error if v is not a finite,
// non-negative number.
func checkAmount(name string, v float64) error {
	if !isFinite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidInput, name, v)
	}
	return nil
}
