// Package importer loads catalog documents from JSON and XLSX files into a
// catalog store. Loose typing is preserved on import; the catalog's
// normalization pass owns all coercion and integrity checks.
package importer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// Result summarizes one import run.
type Result struct {
	Files  int
	Read   int
	Stored int
}

// Load parses one file by extension into raw catalog records.
func Load(path string) ([]catalog.RawVehicle, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, eris.Errorf("importer: unsupported file type %q", ext)
	}
}

// LoadJSON reads records from a JSON file. Both a bare array and a
// {"vehicles": [...]} wrapper are accepted.
func LoadJSON(path string) ([]catalog.RawVehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "importer: read %s", path)
	}

	var raws []catalog.RawVehicle
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, nil
	}

	var wrapped struct {
		Vehicles []catalog.RawVehicle `json:"vehicles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, eris.Wrapf(err, "importer: parse %s", path)
	}
	if wrapped.Vehicles == nil {
		return nil, eris.Errorf("importer: %s has no vehicle array", path)
	}
	return wrapped.Vehicles, nil
}

// Import loads every path and writes the combined records to the store.
// Records arriving without an id are assigned one.
func Import(ctx context.Context, store catalog.Store, paths ...string) (*Result, error) {
	res := &Result{}
	var all []catalog.RawVehicle

	for _, path := range paths {
		raws, err := Load(path)
		if err != nil {
			return nil, err
		}
		res.Files++
		res.Read += len(raws)
		all = append(all, raws...)
	}

	for i := range all {
		if all[i].ID == "" {
			all[i].ID = uuid.NewString()
		}
	}

	stored, err := store.Put(ctx, all)
	if err != nil {
		return nil, eris.Wrap(err, "importer: store records")
	}
	res.Stored = stored

	zap.L().Info("catalog import complete",
		zap.Int("files", res.Files),
		zap.Int("read", res.Read),
		zap.Int("stored", res.Stored),
	)
	return res, nil
}
