package finance

// Lease term bounds.
const (
	MinLeaseTermMonths = 24
	MaxLeaseTermMonths = 48

	// DefaultLeaseTermMonths is the 3-year term used for CLI defaults and
	// the lease-vs-loan comparison.
	DefaultLeaseTermMonths = 36
)

// LeaseRequest holds inputs for the lease calculator. MoneyFactor is the
// lease-industry analogue of a monthly rate (APR / 2400).
type LeaseRequest struct {
	VehiclePrice    float64 `json:"vehiclePrice"`
	ResidualValue   float64 `json:"residualValue"`
	MoneyFactor     float64 `json:"moneyFactor"`
	DownPayment     float64 `json:"downPayment"`
	LeaseTermMonths int     `json:"leaseTermMonths"`
}

// LeaseResult is the lease calculator output, rounded to cents.
type LeaseResult struct {
	MonthlyPayment       float64 `json:"monthlyPayment"`
	TotalLeaseCost       float64 `json:"totalLeaseCost"`
	CapitalizedCost      float64 `json:"capitalizedCost"`
	MonthlyDepreciation  float64 `json:"monthlyDepreciation"`
	MonthlyFinanceCharge float64 `json:"monthlyFinanceCharge"`
	LeaseTermMonths      int     `json:"leaseTermMonths"`
}

func (r LeaseRequest) validate() error {
	switch {
	case r.VehiclePrice < MinVehiclePrice:
		return invalid("vehiclePrice", "must be >= 1000")
	case r.ResidualValue < 0:
		return invalid("residualValue", "must be >= 0")
	case r.ResidualValue > r.VehiclePrice:
		return invalid("residualValue", "must not exceed vehiclePrice")
	case r.MoneyFactor < 0:
		return invalid("moneyFactor", "must be >= 0")
	case r.DownPayment < 0:
		return invalid("downPayment", "must be >= 0")
	case r.LeaseTermMonths < MinLeaseTermMonths || r.LeaseTermMonths > MaxLeaseTermMonths:
		return invalid("leaseTermMonths", "must be between 24 and 48")
	}
	return nil
}

// Lease computes the monthly lease payment as the sum of the depreciation
// fee and the finance charge:
//
//	payment = (capCost - residual) / term + (capCost + residual) * moneyFactor
//
// where capCost = vehiclePrice - downPayment.
func Lease(req LeaseRequest) (*LeaseResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	capCost := req.VehiclePrice - req.DownPayment
	n := float64(req.LeaseTermMonths)

	depreciation := (capCost - req.ResidualValue) / n
	financeCharge := (capCost + req.ResidualValue) * req.MoneyFactor
	monthly := depreciation + financeCharge

	return &LeaseResult{
		MonthlyPayment:       round2(monthly),
		TotalLeaseCost:       round2(monthly*n + req.DownPayment),
		CapitalizedCost:      round2(capCost),
		MonthlyDepreciation:  round2(depreciation),
		MonthlyFinanceCharge: round2(financeCharge),
		LeaseTermMonths:      req.LeaseTermMonths,
	}, nil
}
