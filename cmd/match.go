package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/advisor"
	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/internal/match"
	"github.com/driveline-group/showroom-cli/pkg/anthropic"
)

var (
	matchPref    match.Preference
	matchBudget  float64
	matchMPGBias string
	matchExplain bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank catalog vehicles against shopper preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cmd.Flags().Changed("budget") {
			matchPref.Budget = &matchBudget
		}
		switch strings.ToLower(matchMPGBias) {
		case "", "none":
			matchPref.MPGBias = match.MPGBiasNone
		case "somewhat":
			matchPref.MPGBias = match.MPGBiasSomewhat
		case "very":
			matchPref.MPGBias = match.MPGBiasVery
		default:
			return fmt.Errorf("invalid --mpg value %q (none|somewhat|very)", matchMPGBias)
		}

		vehicles, err := loadVehicles(ctx, catalog.Filter{})
		if err != nil {
			return err
		}

		ranked := match.Run(vehicles, matchPref, cfg.Match)
		if len(ranked) == 0 {
			fmt.Println("No vehicles matched your preferences.")
			return nil
		}

		var explainer *advisor.Explainer
		if matchExplain || cfg.Advisor.Explain {
			if cfg.Anthropic.Key == "" {
				return fmt.Errorf("--explain requires anthropic.key (SHOWROOM_ANTHROPIC_KEY)")
			}
			explainer = advisor.NewExplainer(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		}

		for i, out := range ranked {
			v := out.Vehicle
			fmt.Printf("%d. %d %s %s (%s) - %s  [score %.0f]\n",
				i+1, v.Year, v.Make, v.Model, v.Trim, dollars(v.Price.BaseMSRP), out.Score)
			for _, r := range out.Reasons {
				fmt.Printf("   %s\n", r)
			}
			if explainer != nil {
				if text, err := explainer.Explain(ctx, out); err == nil {
					fmt.Printf("   %s\n", text)
				}
			}
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchPref.Type, "type", match.Any, "vehicle category")
	matchCmd.Flags().Float64Var(&matchBudget, "budget", 0, "target vehicle budget")
	matchCmd.Flags().StringVar(&matchPref.Fuel, "fuel", match.Any, "fuel preference (Gasoline|Hybrid|Electric)")
	matchCmd.Flags().StringVar(&matchPref.Size, "size", match.Any, "body style preference")
	matchCmd.Flags().StringVar(&matchPref.Drive, "drive", match.Any, "drive type (FWD|RWD|AWD|4WD)")
	matchCmd.Flags().StringVar(&matchMPGBias, "mpg", "none", "fuel economy priority (none|somewhat|very)")
	matchCmd.Flags().StringSliceVar(&matchPref.Features, "features", nil, "must-have features")
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "explain each recommendation via Claude")
	rootCmd.AddCommand(matchCmd)
}
