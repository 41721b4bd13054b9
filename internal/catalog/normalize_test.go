package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"float", 34500.0, ptr(34500.0)},
		{"int", 7, ptr(7.0)},
		{"plain string", "285", ptr(285.0)},
		{"currency string", "$34,500", ptr(34500.0)},
		{"units string", "1500 lbs", ptr(1500.0)},
		{"decimal string", "28.5", ptr(28.5)},
		{"empty string", "", nil},
		{"garbage string", "N/A", nil},
		{"bool", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.0001)
		})
	}
}

func TestNormalize_StringyNumericFields(t *testing.T) {
	raw := rawFixture("veh-1")
	raw.Year = "2024"
	raw.Engine.Horsepower = "285 hp"
	raw.MPG.Highway = "33"
	raw.Price.BaseMSRP = "$41,500"
	raw.TowingCapacity = "5,000 lbs"

	v, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 2024, v.Year)
	require.NotNil(t, v.Engine.Horsepower)
	assert.InDelta(t, 285, *v.Engine.Horsepower, 0.001)
	require.NotNil(t, v.MPG.Highway)
	assert.InDelta(t, 33, *v.MPG.Highway, 0.001)
	assert.InDelta(t, 41500, v.Price.BaseMSRP, 0.001)
	require.NotNil(t, v.TowingCapacity)
	assert.InDelta(t, 5000, *v.TowingCapacity, 0.001)
}

func TestNormalize_MalformedOptionalBecomesNil(t *testing.T) {
	raw := rawFixture("veh-2")
	raw.MPG.City = "not a number"
	raw.SeatingCapacity = map[string]any{"rows": 3}

	v, err := Normalize(raw)
	require.NoError(t, err)
	assert.Nil(t, v.MPG.City)
	assert.Nil(t, v.SeatingCapacity)
}

func TestNormalize_MissingIdentityFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawVehicle)
		field  string
	}{
		{"no id", func(r *RawVehicle) { r.ID = "" }, "id"},
		{"no type", func(r *RawVehicle) { r.Type = " " }, "type"},
		{"no make", func(r *RawVehicle) { r.Make = "" }, "make"},
		{"no model", func(r *RawVehicle) { r.Model = "" }, "model"},
		{"no msrp", func(r *RawVehicle) { r.Price.BaseMSRP = nil }, "price.baseMSRP"},
		{"unparsable msrp", func(r *RawVehicle) { r.Price.BaseMSRP = "call us" }, "price.baseMSRP"},
		{"zero msrp", func(r *RawVehicle) { r.Price.BaseMSRP = 0.0 }, "price.baseMSRP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawFixture("veh-3")
			tt.mutate(&raw)

			_, err := Normalize(raw)
			var ierr *IntegrityError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, tt.field, ierr.Field)
		})
	}
}

func TestNormalizeAll_SkipsBadRecordsAndContinues(t *testing.T) {
	good1 := rawFixture("veh-a")
	bad := rawFixture("veh-b")
	bad.Price.BaseMSRP = nil
	good2 := rawFixture("veh-c")

	vehicles, dropped := NormalizeAll([]RawVehicle{good1, bad, good2})

	require.Len(t, vehicles, 2)
	assert.Equal(t, "veh-a", vehicles[0].ID)
	assert.Equal(t, "veh-c", vehicles[1].ID)
	require.Len(t, dropped, 1)
	assert.Contains(t, dropped[0].Error(), "veh-b")
}

func TestNormalize_DoesNotAliasCallerSlices(t *testing.T) {
	raw := rawFixture("veh-4")
	raw.Features = []string{"Sunroof"}

	v, err := Normalize(raw)
	require.NoError(t, err)

	raw.Features[0] = "mutated"
	assert.Equal(t, "Sunroof", v.Features[0])
}

func TestRawVehicle_DecodesMixedTypes(t *testing.T) {
	doc := `{
		"id": "truck-9", "type": "Trucks", "make": "Toyota", "model": "Tundra",
		"year": "2023", "trim": "SR5",
		"engine": {"type": "V6", "horsepower": "389", "fuelType": "Gasoline"},
		"mpg": {"city": 18, "highway": "24"},
		"driveType": "4WD", "bodyStyle": "Pickup Truck",
		"price": {"baseMSRP": "$41,815", "leaseEstimate": 560, "financeEstimate": null},
		"towingCapacity": "12,000 lbs",
		"features": ["Tow Package", "Apple CarPlay"],
		"dealerships": [{"name": "Downtown Toyota", "zip": "94103", "distance": "4 miles"}]
	}`

	var raw RawVehicle
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))

	v, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeTrucks, v.Type)
	assert.Equal(t, 2023, v.Year)
	assert.InDelta(t, 41815, v.Price.BaseMSRP, 0.001)
	require.NotNil(t, v.Price.LeaseEstimate)
	assert.Nil(t, v.Price.FinanceEstimate)
	require.Len(t, v.Dealerships, 1)
	assert.Equal(t, "94103", v.Dealerships[0].Zip)
}

// rawFixture builds a minimal valid raw record.
func rawFixture(id string) RawVehicle {
	raw := RawVehicle{
		ID:    id,
		Type:  string(TypeCrossoversSUVs),
		Make:  "Toyota",
		Model: "RAV4",
		Trim:  "XLE",
	}
	raw.Year = 2024.0
	raw.Engine.Type = "I4"
	raw.Engine.FuelType = "Gasoline"
	raw.DriveType = "AWD"
	raw.BodyStyle = "SUV"
	raw.Price.BaseMSRP = 31500.0
	return raw
}

func ptr[T any](v T) *T { return &v }
