package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/driveline-group/showroom-cli/internal/booking"
	"github.com/driveline-group/showroom-cli/internal/catalog"
)

var bookReq booking.Request

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a test drive or consultation for a catalog vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		sqliteStore, ok := st.(*catalog.SQLiteStore)
		if !ok {
			return eris.New("booking requires the sqlite store driver")
		}
		bookings := booking.NewStore(sqliteStore.DB())
		if err := bookings.Migrate(ctx); err != nil {
			return err
		}

		svc := booking.NewService(st, bookings)
		conf, err := svc.Create(ctx, bookReq)
		if err != nil {
			return err
		}

		fmt.Printf("Booking confirmed: %s\n", conf.ConfirmationNumber)
		fmt.Printf("  %s at %s on %s (%s)\n",
			conf.Appointment.Type, conf.Appointment.Time, conf.Appointment.Date, conf.Dealership.Name)
		return nil
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots VEHICLE_ID",
	Short: "List appointment availability at a vehicle's dealerships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		raw, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if raw == nil {
			return eris.Errorf("vehicle %q not found", args[0])
		}
		v, err := catalog.Normalize(*raw)
		if err != nil {
			return err
		}

		for _, d := range booking.Availability(time.Now(), v.Dealerships) {
			fmt.Printf("%s (%s, %s)\n", d.Name, d.Zip, d.Distance)
			for _, s := range d.AvailableSlots {
				fmt.Printf("  %s %s  %s\n", s.Date, s.Time, s.Type)
			}
		}
		return nil
	},
}

func init() {
	bookCmd.Flags().StringVar(&bookReq.VehicleID, "vehicle", "", "vehicle id (required)")
	bookCmd.Flags().StringVar(&bookReq.Dealership.Name, "dealership", "", "dealership name (required)")
	bookCmd.Flags().StringVar(&bookReq.Dealership.Zip, "zip", "", "dealership zip")
	bookCmd.Flags().StringVar(&bookReq.Appointment.Date, "date", "", "appointment date YYYY-MM-DD (required)")
	bookCmd.Flags().StringVar(&bookReq.Appointment.Time, "time", "10:00", "appointment time")
	bookCmd.Flags().StringVar((*string)(&bookReq.Appointment.Type), "slot-type", string(booking.SlotTestDrive), "test-drive or consultation")
	bookCmd.Flags().StringVar(&bookReq.Customer.Name, "name", "", "customer name (required)")
	bookCmd.Flags().StringVar(&bookReq.Customer.Email, "email", "", "customer email (required)")
	bookCmd.Flags().StringVar(&bookReq.Customer.Phone, "phone", "", "customer phone (required)")
	bookCmd.Flags().StringVar(&bookReq.Customer.PreferredContact, "contact", "email", "preferred contact channel (email|phone)")
	bookCmd.MarkFlagRequired("vehicle")
	bookCmd.MarkFlagRequired("dealership")
	bookCmd.MarkFlagRequired("date")
	bookCmd.MarkFlagRequired("name")
	bookCmd.MarkFlagRequired("email")
	bookCmd.MarkFlagRequired("phone")

	rootCmd.AddCommand(bookCmd, slotsCmd)
}
