package booking

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Store persists bookings in the same SQLite database as the catalog.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle. The caller owns the handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const bookingMigration = `
CREATE TABLE IF NOT EXISTS bookings (
	id           TEXT PRIMARY KEY,
	confirmation TEXT NOT NULL UNIQUE,
	vehicle_id   TEXT NOT NULL,
	dealership   TEXT NOT NULL,
	slot_date    TEXT NOT NULL,
	slot_time    TEXT NOT NULL,
	slot_type    TEXT NOT NULL,
	customer     TEXT NOT NULL,
	status       TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_bookings_vehicle ON bookings(vehicle_id);
`

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, bookingMigration)
	return eris.Wrap(err, "booking: migrate")
}

// Save writes one confirmed booking. Customer details are stored as a JSON
// document alongside the denormalized slot columns.
func (s *Store) Save(ctx context.Context, conf *Confirmation, cust Customer) error {
	custDoc, err := json.Marshal(cust)
	if err != nil {
		return eris.Wrap(err, "booking: marshal customer")
	}
	dealerDoc, err := json.Marshal(conf.Dealership)
	if err != nil {
		return eris.Wrap(err, "booking: marshal dealership")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookings (id, confirmation, vehicle_id, dealership, slot_date, slot_time, slot_type, customer, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conf.BookingID, conf.ConfirmationNumber, conf.VehicleID, string(dealerDoc),
		conf.Appointment.Date, conf.Appointment.Time, string(conf.Appointment.Type),
		string(custDoc), conf.Status,
	)
	return eris.Wrapf(err, "booking: save %s", conf.BookingID)
}

// Get loads a booking by its confirmation number. Returns nil when absent.
func (s *Store) Get(ctx context.Context, confirmation string) (*Confirmation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, confirmation, vehicle_id, dealership, slot_date, slot_time, slot_type, status
		FROM bookings WHERE confirmation = ?`, confirmation)

	var conf Confirmation
	var dealerDoc, slotType string
	err := row.Scan(&conf.BookingID, &conf.ConfirmationNumber, &conf.VehicleID,
		&dealerDoc, &conf.Appointment.Date, &conf.Appointment.Time, &slotType, &conf.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "booking: get %s", confirmation)
	}
	conf.Appointment.Type = SlotType(slotType)
	if err := json.Unmarshal([]byte(dealerDoc), &conf.Dealership); err != nil {
		return nil, eris.Wrapf(err, "booking: decode dealership for %s", confirmation)
	}
	return &conf, nil
}

// Count reports how many bookings have been taken.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, eris.Wrap(err, "booking: count")
}
