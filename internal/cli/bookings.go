package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"staysync/internal/app"
)

func init() {
	bookings := &cobra.Command{
		Use:   "bookings",
		Short: "List, inspect and cancel bookings",
	}
	bookings.AddCommand(newBookingsListCmd(), newBookingsShowCmd(), newBookingsCancelCmd())
	rootCmd.AddCommand(bookings, newBookCmd())
}

func newBookingsListCmd() *cobra.Command {
	var status string
	var force bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := deps.bookings.List(cmd.Context(), status, force)
			if err != nil {
				return err
			}
			for _, bk := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %s -> %s  %s/%s\n",
					bk.ID, bk.CheckInDate, bk.CheckOutDate, bk.Status, bk.PaymentStatus)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter: pending|confirmed|cancelled|completed")
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache")
	return cmd
}

func newBookingsShowCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "show <booking-id>",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bk, err := deps.bookings.Get(cmd.Context(), args[0], force)
			if err != nil {
				return err
			}
			return printJSON(cmd, bk)
		},
	}
	cmd.Flags().BoolVar(&force, "refresh", false, "bypass the cache")
	return cmd
}

func newBookingsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.bookings.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		},
	}
}

// newBookCmd runs the whole wizard in one shot; each Continue is the same
// transition the step-by-step UI drives.
func newBookCmd() *cobra.Command {
	var room, checkIn, checkOut, requests, email, method string
	var guests int
	cmd := &cobra.Command{
		Use:   "book <accommodation-id>",
		Short: "Book a room end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			acc, err := deps.catalog.Accommodation(ctx, args[0], false)
			if err != nil {
				return err
			}
			if _, ok := acc.RoomByID(room); !ok {
				return fmt.Errorf("no room %q at %s", room, acc.Name)
			}
			w := app.NewWizard(deps.client, args[0], deps.cfg.CallbackURL, deps.log)

			w.SelectRoom(room)
			if err := w.Continue(ctx); err != nil {
				return err
			}
			w.SetDetails(app.DetailsDraft{CheckIn: checkIn, CheckOut: checkOut, Guests: guests, SpecialRequests: requests})
			if err := w.Continue(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booking %s created, initiating payment\n", w.BookingID())
			w.SetPayment(app.PaymentDraft{Email: email, Method: method})
			if err := w.Continue(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booking %s confirmed: %s %s -> %s, %d guest(s)\n",
				w.BookingID(), room, checkIn, checkOut, guests)
			return nil
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "room id")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&guests, "guests", 1, "number of guests")
	cmd.Flags().StringVar(&requests, "requests", "", "special requests")
	cmd.Flags().StringVar(&email, "email", "", "payment receipt email")
	cmd.Flags().StringVar(&method, "method", "card", "payment method: card|paypal")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("check-in")
	_ = cmd.MarkFlagRequired("check-out")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
