// Package match scores catalog vehicles against shopper preferences and
// ranks the results. Scoring is pure: it reads the normalized catalog view
// and a preference object and returns value objects only.
package match

import (
	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// Any disables a preference dimension.
const Any = "Any"

// MPG bias levels.
const (
	MPGBiasNone     = 0
	MPGBiasSomewhat = 1
	MPGBiasVery     = 2
)

// Preference is a shopper's answers, one per scoring pass.
type Preference struct {
	Type     string   `json:"type"`   // vehicle category or "Any"
	Budget   *float64 `json:"budget"` // target MSRP, nil when unstated
	Fuel     string   `json:"fuel"`   // fuel preference or "Any"
	Size     string   `json:"size"`   // body-style substring or "Any"
	Drive    string   `json:"drive"`  // drive type or "Any"
	MPGBias  int      `json:"mpgBias"`
	Features []string `json:"features"`
}

// Outcome is the scored result for one vehicle. Exclusion is a tagged
// state, not a sentinel score value; an excluded outcome carries exactly
// one reason and its Score is meaningless.
type Outcome struct {
	Vehicle  *catalog.Vehicle `json:"vehicle"`
	Excluded bool             `json:"excluded"`
	Score    float64          `json:"score"`
	Reasons  []string         `json:"reasons"`
}

// Config holds the scoring constants. Defaults preserve the product's
// fixed dollar bands regardless of price tier.
type Config struct {
	NearBudgetBand   float64 `yaml:"near_budget_band" mapstructure:"near_budget_band"`
	CloseBudgetBand  float64 `yaml:"close_budget_band" mapstructure:"close_budget_band"`
	NearBudgetBonus  float64 `yaml:"near_budget_bonus" mapstructure:"near_budget_bonus"`
	CloseBudgetBonus float64 `yaml:"close_budget_bonus" mapstructure:"close_budget_bonus"`
	UnderBudgetBonus float64 `yaml:"under_budget_bonus" mapstructure:"under_budget_bonus"`
	OverBudgetPen    float64 `yaml:"over_budget_penalty" mapstructure:"over_budget_penalty"`
	FuelMatchBonus   float64 `yaml:"fuel_match_bonus" mapstructure:"fuel_match_bonus"`
	FuelMismatchPen  float64 `yaml:"fuel_mismatch_penalty" mapstructure:"fuel_mismatch_penalty"`
	DriveMatchBonus  float64 `yaml:"drive_match_bonus" mapstructure:"drive_match_bonus"`
	MPGCap           float64 `yaml:"mpg_cap" mapstructure:"mpg_cap"`
	MPGWeight        float64 `yaml:"mpg_weight" mapstructure:"mpg_weight"`
	FeatureBonus     float64 `yaml:"feature_bonus" mapstructure:"feature_bonus"`
	TopN             int     `yaml:"top_n" mapstructure:"top_n"`
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		NearBudgetBand:   2000,
		CloseBudgetBand:  5000,
		NearBudgetBonus:  25,
		CloseBudgetBonus: 15,
		UnderBudgetBonus: 10,
		OverBudgetPen:    -10,
		FuelMatchBonus:   20,
		FuelMismatchPen:  -10,
		DriveMatchBonus:  10,
		MPGCap:           30,
		MPGWeight:        0.5,
		FeatureBonus:     6,
		TopN:             3,
	}
}
