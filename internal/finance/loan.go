// Package finance implements the deterministic vehicle finance formulas:
// loan amortization, lease payment breakdown, affordability ceiling, and
// depreciation schedules. All functions are pure; inputs are validated
// against their documented bounds before anything is computed, and money
// values are rounded to cents only at the result boundary.
package finance

import "math"

// Term bounds shared by the loan and affordability calculators.
const (
	MinLoanTermMonths = 12
	MaxLoanTermMonths = 84

	// DefaultLoanTermMonths is the 5-year term used when a caller does not
	// specify one (CLI defaults, lease-vs-loan comparison).
	DefaultLoanTermMonths = 60
)

// MinVehiclePrice is the floor accepted for any priced input.
const MinVehiclePrice = 1000

// LoanRequest holds inputs for the loan calculator.
type LoanRequest struct {
	VehiclePrice   float64 `json:"vehiclePrice"`
	DownPayment    float64 `json:"downPayment"`
	InterestRate   float64 `json:"interestRate"` // annual percent
	LoanTermMonths int     `json:"loanTermMonths"`
}

// LoanResult is the loan calculator output, rounded to cents.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalCost      float64 `json:"totalCost"`
	TotalInterest  float64 `json:"totalInterest"`
	LoanTermMonths int     `json:"loanTermMonths"`
	LoanAmount     float64 `json:"loanAmount"`
}

func (r LoanRequest) validate() error {
	switch {
	case r.VehiclePrice < MinVehiclePrice:
		return invalid("vehiclePrice", "must be >= 1000")
	case r.DownPayment < 0:
		return invalid("downPayment", "must be >= 0")
	case r.DownPayment > r.VehiclePrice:
		return invalid("downPayment", "must not exceed vehiclePrice")
	case r.InterestRate < 0:
		return invalid("interestRate", "must be >= 0")
	case r.LoanTermMonths < MinLoanTermMonths || r.LoanTermMonths > MaxLoanTermMonths:
		return invalid("loanTermMonths", "must be between 12 and 84")
	}
	return nil
}

// Loan computes the monthly payment for an amortized vehicle loan:
//
//	PMT = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate. A zero rate degenerates to straight-line
// amortization, avoiding the division by zero in the closed form.
func Loan(req LoanRequest) (*LoanResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	loanAmount := req.VehiclePrice - req.DownPayment
	n := float64(req.LoanTermMonths)
	monthly := monthlyPayment(loanAmount, req.InterestRate, req.LoanTermMonths)
	totalCost := monthly * n

	return &LoanResult{
		MonthlyPayment: round2(monthly),
		TotalCost:      round2(totalCost),
		TotalInterest:  round2(totalCost - loanAmount),
		LoanTermMonths: req.LoanTermMonths,
		LoanAmount:     round2(loanAmount),
	}, nil
}

// monthlyPayment is the unrounded amortization kernel shared with the
// affordability calculator's round-trip.
func monthlyPayment(principal, annualRate float64, termMonths int) float64 {
	r := annualRate / 100 / 12
	n := float64(termMonths)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// round2 rounds a monetary value to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
