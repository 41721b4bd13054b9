package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/finance"
)

var (
	comparePrice    float64
	compareDown     float64
	compareRate     float64
	compareMF       float64
	compareResidual float64
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare financing a vehicle with a loan vs a lease",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("rate") {
			compareRate = cfg.Finance.DefaultInterestRate
		}
		if !cmd.Flags().Changed("money-factor") {
			compareMF = cfg.Finance.DefaultMoneyFactor
		}
		if !cmd.Flags().Changed("residual") {
			// Typical three-year residual.
			compareResidual = comparePrice * 0.55
		}

		res, err := finance.CompareLeaseVsLoan(comparePrice, compareDown, compareRate, compareMF, compareResidual)
		if err != nil {
			return err
		}

		fmt.Printf("%-18s %14s %14s\n", "", "Loan", "Lease")
		fmt.Printf("%-18s %14s %14s\n", "Monthly payment", dollars(res.Loan.MonthlyPayment), dollars(res.Lease.MonthlyPayment))
		fmt.Printf("%-18s %14s %14s\n", "Total cost", dollars(res.Loan.TotalCost), dollars(res.Lease.TotalCost))
		fmt.Printf("%-18s %14d %14d\n", "Term (months)", res.Loan.TermMonths, res.Lease.TermMonths)
		fmt.Printf("%-18s %14v %14v\n", "Ownership", res.Loan.Ownership, res.Lease.Ownership)
		return nil
	},
}

func init() {
	compareCmd.Flags().Float64Var(&comparePrice, "price", 0, "vehicle price (required)")
	compareCmd.Flags().Float64Var(&compareDown, "down", 0, "down payment")
	compareCmd.Flags().Float64Var(&compareRate, "rate", 0, "loan annual interest rate percent (default from config)")
	compareCmd.Flags().Float64Var(&compareMF, "money-factor", 0, "lease money factor (default from config)")
	compareCmd.Flags().Float64Var(&compareResidual, "residual", 0, "lease residual value (default 55% of price)")
	compareCmd.MarkFlagRequired("price")
	rootCmd.AddCommand(compareCmd)
}
