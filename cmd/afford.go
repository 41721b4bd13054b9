package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/catalog"
	"github.com/driveline-group/showroom-cli/internal/finance"
	"github.com/driveline-group/showroom-cli/internal/match"
)

var (
	affordReq     finance.AffordabilityRequest
	affordSuggest bool
)

var affordCmd = &cobra.Command{
	Use:   "afford",
	Short: "Calculate the maximum vehicle price a budget supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("rate") {
			affordReq.InterestRate = cfg.Finance.DefaultInterestRate
		}

		res, err := finance.Affordability(affordReq)
		if err != nil {
			return err
		}

		fmt.Printf("Monthly capacity:  %s\n", dollars(res.MonthlyPaymentCapacity))
		fmt.Printf("Max loan amount:   %s\n", dollars(res.MaxLoanAmount))
		fmt.Printf("Max vehicle price: %s\n", dollars(res.MaxVehiclePrice))

		if !affordSuggest {
			return nil
		}

		vehicles, err := loadVehicles(cmd.Context(), catalog.Filter{})
		if err != nil {
			return err
		}
		suggestions := match.SuggestByAffordability(vehicles, res.MaxVehiclePrice, cfg.Match.TopN)
		if len(suggestions) == 0 {
			fmt.Println("\nNo vehicles in the catalog to suggest.")
			return nil
		}

		fmt.Println("\nSuggested vehicles:")
		for _, s := range suggestions {
			v := s.Vehicle
			fmt.Printf("  %d %s %s (%s) - %s\n", v.Year, v.Make, v.Model, v.Trim, dollars(v.Price.BaseMSRP))
			for _, r := range s.Reasons {
				fmt.Printf("    %s\n", r)
			}
		}
		return nil
	},
}

func init() {
	affordCmd.Flags().Float64Var(&affordReq.MonthlyIncome, "income", 0, "monthly income (required)")
	affordCmd.Flags().Float64Var(&affordReq.MonthlyExpenses, "expenses", 0, "monthly expenses")
	affordCmd.Flags().Float64Var(&affordReq.DownPayment, "down", 0, "down payment")
	affordCmd.Flags().Float64Var(&affordReq.InterestRate, "rate", 0, "annual interest rate percent (default from config)")
	affordCmd.Flags().IntVar(&affordReq.LoanTermMonths, "term", finance.DefaultLoanTermMonths, "loan term in months")
	affordCmd.Flags().BoolVar(&affordSuggest, "suggest", false, "suggest catalog vehicles near the computed ceiling")
	affordCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(affordCmd)
}
