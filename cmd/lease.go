package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/finance"
)

var leaseReq finance.LeaseRequest

var leaseCmd = &cobra.Command{
	Use:   "lease",
	Short: "Calculate the monthly payment breakdown for a lease",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("money-factor") {
			leaseReq.MoneyFactor = cfg.Finance.DefaultMoneyFactor
		}

		res, err := finance.Lease(leaseReq)
		if err != nil {
			return err
		}

		fmt.Printf("Capitalized cost:   %s\n", dollars(res.CapitalizedCost))
		fmt.Printf("Monthly payment:    %s for %d months\n", dollars(res.MonthlyPayment), res.LeaseTermMonths)
		fmt.Printf("  depreciation:     %s\n", dollars(res.MonthlyDepreciation))
		fmt.Printf("  finance charge:   %s\n", dollars(res.MonthlyFinanceCharge))
		fmt.Printf("Total lease cost:   %s\n", dollars(res.TotalLeaseCost))
		return nil
	},
}

func init() {
	leaseCmd.Flags().Float64Var(&leaseReq.VehiclePrice, "price", 0, "vehicle price (required)")
	leaseCmd.Flags().Float64Var(&leaseReq.ResidualValue, "residual", 0, "residual value at lease end (required)")
	leaseCmd.Flags().Float64Var(&leaseReq.MoneyFactor, "money-factor", 0, "money factor (default from config)")
	leaseCmd.Flags().Float64Var(&leaseReq.DownPayment, "down", 0, "down payment")
	leaseCmd.Flags().IntVar(&leaseReq.LeaseTermMonths, "term", finance.DefaultLeaseTermMonths, "lease term in months")
	leaseCmd.MarkFlagRequired("price")
	leaseCmd.MarkFlagRequired("residual")
	rootCmd.AddCommand(leaseCmd)
}
