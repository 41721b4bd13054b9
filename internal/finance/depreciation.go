package finance

import "math"

// Depreciation year bounds.
const (
	MinDepreciationYears = 1
	MaxDepreciationYears = 10
)

// DepreciationRequest holds inputs for the depreciation calculator.
type DepreciationRequest struct {
	InitialValue           float64 `json:"initialValue"`
	Years                  int     `json:"years"`
	AnnualDepreciationRate float64 `json:"annualDepreciationRate"` // 0..1
}

// DepreciationResult holds three equal-length schedules indexed by year
// (element 0 is the end of year 1).
type DepreciationResult struct {
	YearlyValues           []float64 `json:"yearlyValues"`
	YearlyDepreciation     []float64 `json:"yearlyDepreciation"`
	CumulativeDepreciation []float64 `json:"cumulativeDepreciation"`
}

func (r DepreciationRequest) validate() error {
	switch {
	case r.InitialValue < MinVehiclePrice:
		return invalid("initialValue", "must be >= 1000")
	case r.Years < MinDepreciationYears || r.Years > MaxDepreciationYears:
		return invalid("years", "must be between 1 and 10")
	case r.AnnualDepreciationRate < 0 || r.AnnualDepreciationRate > 1:
		return invalid("annualDepreciationRate", "must be between 0 and 1")
	}
	return nil
}

// Depreciation computes compound depreciation schedules:
//
//	value[i] = initial * (1 - rate)^i
//
// yearlyDepreciation is the year-over-year drop and cumulativeDepreciation
// the total loss from the initial value, both derived from the unrounded
// series so the schedules reconcile.
func Depreciation(req DepreciationRequest) (*DepreciationResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	res := &DepreciationResult{
		YearlyValues:           make([]float64, req.Years),
		YearlyDepreciation:     make([]float64, req.Years),
		CumulativeDepreciation: make([]float64, req.Years),
	}

	prev := req.InitialValue
	for year := 1; year <= req.Years; year++ {
		value := req.InitialValue * math.Pow(1-req.AnnualDepreciationRate, float64(year))
		res.YearlyValues[year-1] = round2(value)
		res.YearlyDepreciation[year-1] = round2(prev - value)
		res.CumulativeDepreciation[year-1] = round2(req.InitialValue - value)
		prev = value
	}

	return res, nil
}
