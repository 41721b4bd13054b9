// Package booking handles test-drive and consultation appointments against
// the vehicle catalog.
package booking

import (
	"context"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/driveline-group/showroom-cli/internal/catalog"
)

// SlotType is the kind of appointment a shopper can book.
type SlotType string

const (
	SlotTestDrive    SlotType = "test-drive"
	SlotConsultation SlotType = "consultation"
)

// Appointment times are fixed per slot type.
const (
	testDriveTime    = "10:00"
	consultationTime = "14:00"
	availabilityDays = 5
)

// Slot is one bookable appointment. Date is an ISO date (YYYY-MM-DD).
type Slot struct {
	Date string   `json:"date"`
	Time string   `json:"time"`
	Type SlotType `json:"type"`
}

// Customer identifies who the appointment is for.
type Customer struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PreferredContact string `json:"preferredContact"` // email|phone
}

// Request is a booking submission.
type Request struct {
	VehicleID   string             `json:"vehicleId"`
	Dealership  catalog.Dealership `json:"dealership"`
	Appointment Slot               `json:"appointment"`
	Customer    Customer           `json:"customer"`
}

// Confirmation is returned once a booking is persisted.
type Confirmation struct {
	BookingID          string             `json:"bookingId"`
	ConfirmationNumber string             `json:"confirmationNumber"`
	VehicleID          string             `json:"vehicleId"`
	Dealership         catalog.Dealership `json:"dealership"`
	Appointment        Slot               `json:"appointment"`
	Status             string             `json:"status"`
}

// DealershipSlots pairs a dealership with its open appointment slots.
type DealershipSlots struct {
	catalog.Dealership
	AvailableSlots []Slot `json:"availableSlots"`
}

// ErrVehicleNotFound reports a booking against an unknown vehicle id.
var ErrVehicleNotFound = eris.New("booking: vehicle not found")

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// Service creates bookings against the catalog and persists them.
type Service struct {
	vehicles catalog.Store
	store    *Store
}

// NewService wires a booking service over the catalog and booking stores.
func NewService(vehicles catalog.Store, store *Store) *Service {
	return &Service{vehicles: vehicles, store: store}
}

// Create validates the request, checks the vehicle exists, and persists a
// confirmed booking with a fresh id and confirmation number.
func (s *Service) Create(ctx context.Context, req Request) (*Confirmation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	v, err := s.vehicles.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, eris.Wrapf(err, "booking: look up vehicle %s", req.VehicleID)
	}
	if v == nil {
		return nil, ErrVehicleNotFound
	}

	conf := &Confirmation{
		BookingID:          uuid.NewString(),
		ConfirmationNumber: confirmationNumber(),
		VehicleID:          req.VehicleID,
		Dealership:         req.Dealership,
		Appointment:        req.Appointment,
		Status:             "confirmed",
	}
	if err := s.store.Save(ctx, conf, req.Customer); err != nil {
		return nil, err
	}

	zap.L().Info("booking created",
		zap.String("booking_id", conf.BookingID),
		zap.String("vehicle_id", req.VehicleID),
		zap.String("type", string(req.Appointment.Type)),
	)
	return conf, nil
}

func validate(req Request) error {
	switch {
	case req.VehicleID == "":
		return eris.New("booking: vehicleId is required")
	case req.Customer.Name == "":
		return eris.New("booking: customer name is required")
	case !emailRe.MatchString(req.Customer.Email):
		return eris.Errorf("booking: invalid email %q", req.Customer.Email)
	case !phoneRe.MatchString(req.Customer.Phone):
		return eris.Errorf("booking: invalid phone %q", req.Customer.Phone)
	case req.Customer.PreferredContact != "email" && req.Customer.PreferredContact != "phone":
		return eris.Errorf("booking: invalid preferredContact %q", req.Customer.PreferredContact)
	case req.Appointment.Type != SlotTestDrive && req.Appointment.Type != SlotConsultation:
		return eris.Errorf("booking: invalid appointment type %q", req.Appointment.Type)
	}
	if _, err := time.Parse("2006-01-02", req.Appointment.Date); err != nil {
		return eris.Errorf("booking: invalid appointment date %q", req.Appointment.Date)
	}
	return nil
}

// Availability synthesizes the next five days of slots per dealership,
// starting the day after from. Each day offers a morning test drive and an
// afternoon consultation.
func Availability(from time.Time, dealerships []catalog.Dealership) []DealershipSlots {
	out := make([]DealershipSlots, 0, len(dealerships))
	for _, d := range dealerships {
		slots := make([]Slot, 0, availabilityDays*2)
		for i := 1; i <= availabilityDays; i++ {
			date := from.AddDate(0, 0, i).Format("2006-01-02")
			slots = append(slots,
				Slot{Date: date, Time: testDriveTime, Type: SlotTestDrive},
				Slot{Date: date, Time: consultationTime, Type: SlotConsultation},
			)
		}
		out = append(out, DealershipSlots{Dealership: d, AvailableSlots: slots})
	}
	return out
}

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func confirmationNumber() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = confirmationAlphabet[rand.IntN(len(confirmationAlphabet))]
	}
	return string(b)
}
