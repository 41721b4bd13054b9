package catalog

import "context"

// Filter narrows List queries. Zero values mean "no constraint".
type Filter struct {
	Type     string   `json:"type,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	Year     int      `json:"year,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// Store persists raw catalog documents. Vehicles are written as received
// from upstream; normalization happens on read via Snapshot.
type Store interface {
	Put(ctx context.Context, raws []RawVehicle) (int, error)
	Get(ctx context.Context, id string) (*RawVehicle, error)
	List(ctx context.Context, filter Filter) ([]RawVehicle, error)
	Count(ctx context.Context) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Snapshot loads matching records and normalizes them into the read-only
// view the engine consumes. Records failing identity checks are dropped and
// their errors returned alongside the result.
func Snapshot(ctx context.Context, store Store, filter Filter) ([]Vehicle, []error, error) {
	raws, err := store.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	vehicles, dropped := NormalizeAll(raws)
	return vehicles, dropped, nil
}
