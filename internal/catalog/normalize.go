package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// IntegrityError reports a catalog record missing a required identity field.
// The record is dropped; loading continues for the rest of the catalog.
type IntegrityError struct {
	ID    string // may be empty when the id itself is missing
	Field string
}

func (e *IntegrityError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("catalog: record missing %s", e.Field)
	}
	return fmt.Sprintf("catalog: record %s missing %s", e.ID, e.Field)
}

// nonNumeric strips currency symbols, commas, units and any other decoration
// around a numeric string ("$34,500", "285 hp").
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// CoerceNumber converts a loosely-typed field to a number. Strings are
// stripped of non-numeric characters before parsing. Anything that still
// fails to parse is absent (nil), never zero.
func CoerceNumber(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case float32:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case string:
		cleaned := nonNumeric.ReplaceAllString(n, "")
		if cleaned == "" {
			return nil
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// coerceString renders a loosely-typed optional field for display.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Normalize converts a raw record to the canonical Vehicle. It fails only
// on a missing identity field (id, type, make, model, price.baseMSRP);
// malformed optional fields degrade to nil.
func Normalize(raw RawVehicle) (*Vehicle, error) {
	switch {
	case strings.TrimSpace(raw.ID) == "":
		return nil, &IntegrityError{Field: "id"}
	case strings.TrimSpace(raw.Type) == "":
		return nil, &IntegrityError{ID: raw.ID, Field: "type"}
	case strings.TrimSpace(raw.Make) == "":
		return nil, &IntegrityError{ID: raw.ID, Field: "make"}
	case strings.TrimSpace(raw.Model) == "":
		return nil, &IntegrityError{ID: raw.ID, Field: "model"}
	}

	msrp := CoerceNumber(raw.Price.BaseMSRP)
	if msrp == nil || *msrp <= 0 {
		return nil, &IntegrityError{ID: raw.ID, Field: "price.baseMSRP"}
	}

	v := &Vehicle{
		ID:        raw.ID,
		Type:      VehicleType(raw.Type),
		Make:      raw.Make,
		Model:     raw.Model,
		Trim:      raw.Trim,
		DriveType: raw.DriveType,
		BodyStyle: raw.BodyStyle,
		Engine: Engine{
			Type:       raw.Engine.Type,
			Horsepower: CoerceNumber(raw.Engine.Horsepower),
			FuelType:   raw.Engine.FuelType,
		},
		MPG: MPG{
			City:    CoerceNumber(raw.MPG.City),
			Highway: CoerceNumber(raw.MPG.Highway),
		},
		Price: Price{
			BaseMSRP:        *msrp,
			LeaseEstimate:   CoerceNumber(raw.Price.LeaseEstimate),
			FinanceEstimate: CoerceNumber(raw.Price.FinanceEstimate),
		},
		TowingCapacity:  CoerceNumber(raw.TowingCapacity),
		PayloadCapacity: CoerceNumber(raw.PayloadCapacity),
		SeatingCapacity: CoerceNumber(raw.SeatingCapacity),
		CargoSpace:      CoerceNumber(raw.CargoSpace),
		BatteryWarranty: coerceString(raw.BatteryWarranty),
		Emissions:       coerceString(raw.Emissions),
		Features:        append([]string(nil), raw.Features...),
		Dealerships:     append([]Dealership(nil), raw.Dealerships...),
	}

	if year := CoerceNumber(raw.Year); year != nil {
		v.Year = int(*year)
	}

	return v, nil
}

// NormalizeAll converts raw records to the canonical view, dropping records
// that fail identity checks. The dropped-record errors are returned for
// visibility alongside the surviving vehicles; order is preserved.
func NormalizeAll(raws []RawVehicle) ([]Vehicle, []error) {
	vehicles := make([]Vehicle, 0, len(raws))
	var dropped []error

	for _, raw := range raws {
		v, err := Normalize(raw)
		if err != nil {
			zap.L().Warn("catalog: dropping record", zap.String("id", raw.ID), zap.Error(err))
			dropped = append(dropped, err)
			continue
		}
		vehicles = append(vehicles, *v)
	}

	return vehicles, dropped
}
