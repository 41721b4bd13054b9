package finance

// ComparisonSide summarizes one financing option in a comparison.
type ComparisonSide struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalCost      float64 `json:"totalCost"`
	Ownership      bool    `json:"ownership"`
	TermMonths     int     `json:"termMonths"`
}

// Comparison holds a side-by-side loan vs lease breakdown.
type Comparison struct {
	Loan  ComparisonSide `json:"loan"`
	Lease ComparisonSide `json:"lease"`
}

// CompareLeaseVsLoan runs both calculators at their default terms (60-month
// loan, 36-month lease) for the same vehicle and down payment.
func CompareLeaseVsLoan(vehiclePrice, downPayment, loanInterestRate, leaseMoneyFactor, residualValue float64) (*Comparison, error) {
	loan, err := Loan(LoanRequest{
		VehiclePrice:   vehiclePrice,
		DownPayment:    downPayment,
		InterestRate:   loanInterestRate,
		LoanTermMonths: DefaultLoanTermMonths,
	})
	if err != nil {
		return nil, err
	}

	lease, err := Lease(LeaseRequest{
		VehiclePrice:    vehiclePrice,
		ResidualValue:   residualValue,
		MoneyFactor:     leaseMoneyFactor,
		DownPayment:     downPayment,
		LeaseTermMonths: DefaultLeaseTermMonths,
	})
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Loan: ComparisonSide{
			MonthlyPayment: loan.MonthlyPayment,
			TotalCost:      loan.TotalCost,
			Ownership:      true,
			TermMonths:     loan.LoanTermMonths,
		},
		Lease: ComparisonSide{
			MonthlyPayment: lease.MonthlyPayment,
			TotalCost:      lease.TotalLeaseCost,
			Ownership:      false,
			TermMonths:     lease.LeaseTermMonths,
		},
	}, nil
}
