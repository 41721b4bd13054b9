package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// Score evaluates one vehicle against a preference. Hard filters
// short-circuit with a single exclusion reason; surviving vehicles always
// receive a finite additive score, with one reason per contributing rule
// in evaluation order.
func Score(v *catalog.Vehicle, pref Preference, cfg Config) Outcome {
	// Hard filter: category.
	if pref.Type != "" && pref.Type != Any && string(v.Type) != pref.Type {
		return excluded(v, fmt.Sprintf("Not a %s", pref.Type))
	}

	// Hard filter: body-style substring, case-insensitive so "Pickup"
	// matches body styles like "Pickup Truck".
	if pref.Size != "" && pref.Size != Any {
		if !strings.Contains(strings.ToLower(v.BodyStyle), strings.ToLower(pref.Size)) {
			return excluded(v, fmt.Sprintf("Body style %s is not a %s", v.BodyStyle, pref.Size))
		}
	}

	var score float64
	var reasons []string

	// Budget fit, fixed dollar bands.
	if pref.Budget != nil && v.Price.BaseMSRP > 0 {
		diff := math.Abs(v.Price.BaseMSRP - *pref.Budget)
		switch {
		case diff <= cfg.NearBudgetBand:
			score += cfg.NearBudgetBonus
			reasons = append(reasons, "Near your budget")
		case diff <= cfg.CloseBudgetBand:
			score += cfg.CloseBudgetBonus
			reasons = append(reasons, "Close to your budget")
		case v.Price.BaseMSRP < *pref.Budget:
			score += cfg.UnderBudgetBonus
			reasons = append(reasons, "Under budget")
		default:
			score += cfg.OverBudgetPen
			reasons = append(reasons, "Above budget")
		}
	}

	// Fuel preference.
	if pref.Fuel != "" && pref.Fuel != Any {
		if strings.Contains(strings.ToLower(v.Engine.FuelType), strings.ToLower(pref.Fuel)) {
			score += cfg.FuelMatchBonus
			reasons = append(reasons, fmt.Sprintf("Fuel %s", v.Engine.FuelType))
		} else {
			score += cfg.FuelMismatchPen
			reasons = append(reasons, fmt.Sprintf("Fuel is %s, not %s", v.Engine.FuelType, pref.Fuel))
		}
	}

	// Drive preference: bonus on exact match, no penalty otherwise.
	if pref.Drive != "" && pref.Drive != Any {
		if strings.EqualFold(v.DriveType, pref.Drive) {
			score += cfg.DriveMatchBonus
			reasons = append(reasons, fmt.Sprintf("Drive %s", v.DriveType))
		}
	}

	// MPG bias, capped so extreme highway figures stop contributing.
	if pref.MPGBias > 0 && v.MPG.Highway != nil {
		contribution := float64(pref.MPGBias) * math.Min(cfg.MPGCap, *v.MPG.Highway) * cfg.MPGWeight
		score += contribution
		reasons = append(reasons, fmt.Sprintf("%.0f highway MPG", *v.MPG.Highway))
	}

	// Requested features: each counts once on a case-insensitive substring
	// match against any of the vehicle's features.
	if len(pref.Features) > 0 {
		matched := matchFeatures(pref.Features, v.Features)
		if matched > 0 {
			score += float64(matched) * cfg.FeatureBonus
			reasons = append(reasons, fmt.Sprintf("Has %d of your %d requested features", matched, len(pref.Features)))
		}
	}

	return Outcome{Vehicle: v, Score: score, Reasons: reasons}
}

func excluded(v *catalog.Vehicle, reason string) Outcome {
	return Outcome{Vehicle: v, Excluded: true, Reasons: []string{reason}}
}

func matchFeatures(wanted, have []string) int {
	matched := 0
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, f := range have {
			if strings.Contains(strings.ToLower(f), lw) {
				matched++
				break
			}
		}
	}
	return matched
}
