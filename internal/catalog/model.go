// Package catalog holds the vehicle catalog: the raw upstream document
// shape, the normalized read-only view the engine consumes, and the
// persistence backends.
package catalog

// VehicleType is the top-level catalog category.
type VehicleType string

const (
	TypeCarsMinivans   VehicleType = "Cars & Minivans"
	TypeTrucks         VehicleType = "Trucks"
	TypeCrossoversSUVs VehicleType = "Crossovers & SUVs"
	TypeHybrids        VehicleType = "Hybrids"
)

// Types lists every recognized vehicle category.
func Types() []VehicleType {
	return []VehicleType{TypeCarsMinivans, TypeTrucks, TypeCrossoversSUVs, TypeHybrids}
}

// Dealership is a point of sale carrying a vehicle. Distance is an opaque
// display string supplied upstream ("12 miles").
type Dealership struct {
	Name     string `json:"name"`
	Zip      string `json:"zip"`
	Distance string `json:"distance"`
}

// Engine describes the normalized drivetrain fields.
type Engine struct {
	Type       string   `json:"type"`
	Horsepower *float64 `json:"horsepower"`
	FuelType   string   `json:"fuelType"`
}

// MPG holds normalized fuel economy figures.
type MPG struct {
	City    *float64 `json:"city"`
	Highway *float64 `json:"highway"`
}

// Price holds normalized pricing. BaseMSRP is required and positive for any
// vehicle the engine scores; the estimates are optional.
type Price struct {
	BaseMSRP        float64  `json:"baseMSRP"`
	LeaseEstimate   *float64 `json:"leaseEstimate"`
	FinanceEstimate *float64 `json:"financeEstimate"`
}

// Vehicle is the canonical, immutable catalog record after normalization.
// Numeric fields that could not be coerced are nil, never zero.
type Vehicle struct {
	ID    string      `json:"id"`
	Type  VehicleType `json:"type"`
	Make  string      `json:"make"`
	Model string      `json:"model"`
	Year  int         `json:"year"`
	Trim  string      `json:"trim"`

	Engine    Engine `json:"engine"`
	MPG       MPG    `json:"mpg"`
	DriveType string `json:"driveType"` // FWD|RWD|AWD|4WD
	BodyStyle string `json:"bodyStyle"`
	Price     Price  `json:"price"`

	TowingCapacity  *float64 `json:"towingCapacity"`
	PayloadCapacity *float64 `json:"payloadCapacity"`
	SeatingCapacity *float64 `json:"seatingCapacity"`
	CargoSpace      *float64 `json:"cargoSpace"`
	BatteryWarranty string   `json:"batteryWarranty,omitempty"`
	Emissions       string   `json:"emissions,omitempty"`

	Features    []string     `json:"features"`
	Dealerships []Dealership `json:"dealerships"`
}

// RawVehicle mirrors the upstream document before normalization. Fields that
// arrive as either numbers or strings are typed `any` so decoding never
// fails on a loosely-typed document; Normalize owns all coercion.
type RawVehicle struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  any    `json:"year"`
	Trim  string `json:"trim"`

	Engine struct {
		Type       string `json:"type"`
		Horsepower any    `json:"horsepower"`
		FuelType   string `json:"fuelType"`
	} `json:"engine"`

	MPG struct {
		City    any `json:"city"`
		Highway any `json:"highway"`
	} `json:"mpg"`

	DriveType string `json:"driveType"`
	BodyStyle string `json:"bodyStyle"`

	Price struct {
		BaseMSRP        any `json:"baseMSRP"`
		LeaseEstimate   any `json:"leaseEstimate"`
		FinanceEstimate any `json:"financeEstimate"`
	} `json:"price"`

	TowingCapacity  any `json:"towingCapacity"`
	PayloadCapacity any `json:"payloadCapacity"`
	SeatingCapacity any `json:"seatingCapacity"`
	CargoSpace      any `json:"cargoSpace"`
	BatteryWarranty any `json:"batteryWarranty"`
	Emissions       any `json:"emissions"`

	Features    []string     `json:"features"`
	Dealerships []Dealership `json:"dealerships"`
}
