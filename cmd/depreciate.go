package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/finance"
)

var depReq finance.DepreciationRequest

var depreciateCmd = &cobra.Command{
	Use:   "depreciate",
	Short: "Project year-by-year vehicle value loss",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := finance.Depreciation(depReq)
		if err != nil {
			return err
		}

		fmt.Printf("Initial value: %s\n", dollars(depReq.InitialValue))
		for i, v := range res.YearlyValues {
			fmt.Printf("Year %2d: %s  (lost %s, %s total)\n",
				i+1, dollars(v), dollars(res.YearlyDepreciation[i]), dollars(res.CumulativeDepreciation[i]))
		}
		return nil
	},
}

func init() {
	depreciateCmd.Flags().Float64Var(&depReq.InitialValue, "value", 0, "initial vehicle value (required)")
	depreciateCmd.Flags().IntVar(&depReq.Years, "years", 5, "years to project")
	depreciateCmd.Flags().Float64Var(&depReq.AnnualDepreciationRate, "rate", 0.15, "annual depreciation rate (0..1)")
	depreciateCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(depreciateCmd)
}
