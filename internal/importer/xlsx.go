package importer

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// LoadXLSX reads records from the first sheet of an XLSX workbook. The first
// row names the columns; unrecognized columns are ignored. Cell values stay
// strings in the loosely-typed fields, so "$34,500" survives untouched until
// normalization.
func LoadXLSX(path string) ([]catalog.RawVehicle, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("importer: %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	cols := columnIndex(sheet.Rows[0])
	var raws []catalog.RawVehicle
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blank(cells) {
			continue
		}
		raws = append(raws, rowToRecord(cells, cols))
	}
	return raws, nil
}

// columnIndex maps lowercased, space-stripped header names to positions.
func columnIndex(header *xlsx.Row) map[string]int {
	cols := make(map[string]int, len(header.Cells))
	for i, cell := range header.Cells {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell.String())), " ", "")
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowToRecord(cells []string, cols map[string]int) catalog.RawVehicle {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	loose := func(name string) any {
		if v := get(name); v != "" {
			return v
		}
		return nil
	}

	var raw catalog.RawVehicle
	raw.ID = get("id")
	raw.Type = get("type")
	raw.Make = get("make")
	raw.Model = get("model")
	raw.Trim = get("trim")
	raw.Year = loose("year")
	raw.Engine.Type = get("enginetype")
	raw.Engine.Horsepower = loose("horsepower")
	raw.Engine.FuelType = get("fueltype")
	raw.MPG.City = loose("mpgcity")
	raw.MPG.Highway = loose("mpghighway")
	raw.DriveType = get("drivetype")
	raw.BodyStyle = get("bodystyle")
	raw.Price.BaseMSRP = loose("basemsrp")
	raw.Price.LeaseEstimate = loose("leaseestimate")
	raw.Price.FinanceEstimate = loose("financeestimate")
	raw.SeatingCapacity = loose("seatingcapacity")
	raw.TowingCapacity = loose("towingcapacity")
	raw.CargoSpace = loose("cargospace")

	if features := get("features"); features != "" {
		for _, f := range strings.Split(features, ";") {
			if f = strings.TrimSpace(f); f != "" {
				raw.Features = append(raw.Features, f)
			}
		}
	}
	return raw
}
