// Package carbonplan allocates an annual budget across a catalog of discrete
// carbon-reduction interventions and derives the metrics of the resulting
// portfolio.
//
// The core functionalities include:
//   - Catalog: the immutable reference list of interventions, each with a
//     cost per tonne of CO₂e abated and an annual abatement ceiling.
//   - Allocation State: the committed spend per intervention for the
//     current planning year, with the budget, the target and the budgets of
//     the following years. It only changes through a closed set of
//     operations applied by a reducer.
//   - Metrics Engine: a stateless set of functions computing abatement,
//     portfolio totals, efficiency classes and the gap to the target.
//   - Ranking and Grouping: the marginal abatement cost curve (MACC) order
//     and the spend breakdown per category.
//   - ROI fill: a greedy auto-allocation that tops up the interventions of a
//     category, cheapest abatement first.
//
// This package serves as the foundational logic for the `cpl` command-line
// tool. Every derived value is recomputed on read, nothing is cached nor
// persisted.
package carbonplan
