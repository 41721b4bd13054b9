package finance

import "math"

// AffordabilityRequest holds inputs for the affordability calculator.
type AffordabilityRequest struct {
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	DownPayment     float64 `json:"downPayment"`
	InterestRate    float64 `json:"interestRate"`
	LoanTermMonths  int     `json:"loanTermMonths"`
}

// AffordabilityResult is the affordability ceiling, rounded to cents.
type AffordabilityResult struct {
	MaxVehiclePrice        float64 `json:"maxVehiclePrice"`
	MonthlyPaymentCapacity float64 `json:"monthlyPaymentCapacity"`
	MaxLoanAmount          float64 `json:"maxLoanAmount"`
}

func (r AffordabilityRequest) validate() error {
	switch {
	case r.MonthlyIncome < 0:
		return invalid("monthlyIncome", "must be >= 0")
	case r.MonthlyExpenses < 0:
		return invalid("monthlyExpenses", "must be >= 0")
	case r.DownPayment < 0:
		return invalid("downPayment", "must be >= 0")
	case r.InterestRate < 0:
		return invalid("interestRate", "must be >= 0")
	case r.LoanTermMonths < MinLoanTermMonths || r.LoanTermMonths > MaxLoanTermMonths:
		return invalid("loanTermMonths", "must be between 12 and 84")
	}
	return nil
}

// Affordability inverts the amortization formula to find the largest loan a
// shopper's monthly payment capacity supports:
//
//	maxLoan = capacity * ((1+r)^n - 1) / (r * (1+r)^n)
//
// Capacity is income minus expenses, floored at zero; a zero rate
// degenerates to capacity * n.
func Affordability(req AffordabilityRequest) (*AffordabilityResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	capacity := math.Max(0, req.MonthlyIncome-req.MonthlyExpenses)
	maxLoan := maxLoanAmount(capacity, req.InterestRate, req.LoanTermMonths)

	return &AffordabilityResult{
		MaxVehiclePrice:        round2(maxLoan + req.DownPayment),
		MonthlyPaymentCapacity: round2(capacity),
		MaxLoanAmount:          round2(maxLoan),
	}, nil
}

// maxLoanAmount is the inverse of monthlyPayment for a fixed target payment.
func maxLoanAmount(payment, annualRate float64, termMonths int) float64 {
	r := annualRate / 100 / 12
	n := float64(termMonths)
	if r == 0 {
		return payment * n
	}
	growth := math.Pow(1+r, n)
	return payment * (growth - 1) / (r * growth)
}
