package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/finance"
)

var loanReq finance.LoanRequest

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Calculate monthly payment and total cost for a vehicle loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("rate") {
			loanReq.InterestRate = cfg.Finance.DefaultInterestRate
		}

		res, err := finance.Loan(loanReq)
		if err != nil {
			return err
		}

		fmt.Printf("Loan amount:      %s\n", dollars(res.LoanAmount))
		fmt.Printf("Monthly payment:  %s for %d months\n", dollars(res.MonthlyPayment), res.LoanTermMonths)
		fmt.Printf("Total cost:       %s\n", dollars(res.TotalCost))
		fmt.Printf("Total interest:   %s\n", dollars(res.TotalInterest))
		return nil
	},
}

func init() {
	loanCmd.Flags().Float64Var(&loanReq.VehiclePrice, "price", 0, "vehicle price (required)")
	loanCmd.Flags().Float64Var(&loanReq.DownPayment, "down", 0, "down payment")
	loanCmd.Flags().Float64Var(&loanReq.InterestRate, "rate", 0, "annual interest rate percent (default from config)")
	loanCmd.Flags().IntVar(&loanReq.LoanTermMonths, "term", finance.DefaultLoanTermMonths, "loan term in months")
	loanCmd.MarkFlagRequired("price")
	rootCmd.AddCommand(loanCmd)
}
