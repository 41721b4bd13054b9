package match

import (
	"fmt"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// Suggestion pairs a vehicle with its affordability gap: the signed
// difference between the vehicle's price and the shopper's computed
// maximum affordable price. Zero or negative means within reach.
type Suggestion struct {
	Vehicle          *catalog.Vehicle `json:"vehicle"`
	AffordabilityGap float64          `json:"affordabilityGap"`
	Reasons          []string         `json:"reasons"`
}

// SuggestByAffordability ranks vehicles by ascending affordability gap, so
// vehicles at or under the shopper's ceiling come first. It reuses the
// Ranker with budget distance as the sole signal: score is the negated
// gap, making descending score order equal ascending gap order.
func SuggestByAffordability(vehicles []catalog.Vehicle, maxVehiclePrice float64, topN int) []Suggestion {
	outcomes := make([]Outcome, 0, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		gap := v.Price.BaseMSRP - maxVehiclePrice

		reason := fmt.Sprintf("Within your budget by $%.0f", -gap)
		if gap > 0 {
			reason = fmt.Sprintf("Over your budget by $%.0f", gap)
		}

		outcomes = append(outcomes, Outcome{
			Vehicle: v,
			Score:   -gap,
			Reasons: []string{reason},
		})
	}

	ranked := Rank(outcomes, topN)

	suggestions := make([]Suggestion, len(ranked))
	for i, o := range ranked {
		suggestions[i] = Suggestion{
			Vehicle:          o.Vehicle,
			AffordabilityGap: -o.Score,
			Reasons:          o.Reasons,
		}
	}
	return suggestions
}
