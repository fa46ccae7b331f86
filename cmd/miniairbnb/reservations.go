package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/miniairbnb/client/internal/models"
	"github.com/miniairbnb/client/internal/notify"
	"github.com/spf13/cobra"
)

func (a *app) reservationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "Book stays and manage their lifecycle",
	}
	cmd.AddCommand(
		a.reservationsListCommand(),
		a.reservationsCreateCommand(),
		a.reservationTransitionCommand("confirm", "Confirm a pending reservation", notify.PromptSuccess, a.reservations.Confirm),
		a.reservationTransitionCommand("complete", "Complete a confirmed reservation", notify.PromptInfo, a.reservations.Complete),
		a.reservationTransitionCommand("cancel", "Cancel a reservation", notify.PromptDanger, a.reservations.Cancel),
		a.reservationsBusyDatesCommand(),
	)
	return cmd
}

func (a *app) reservationsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reservations for your role (guest: yours, host: against your properties)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(func() error {
				reservations, err := a.reservations.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				for _, r := range reservations {
					printReservation(r)
				}
				return nil
			})
		},
	}
}

func (a *app) reservationsCreateCommand() *cobra.Command {
	var propertyID, guests int
	var checkIn, checkOut string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			checkInDate, err := models.ParseDate(checkIn)
			if err != nil {
				return err
			}
			checkOutDate, err := models.ParseDate(checkOut)
			if err != nil {
				return err
			}
			req := models.ReservationRequest{
				PropertyID:     propertyID,
				CheckInDate:    checkInDate,
				CheckOutDate:   checkOutDate,
				NumberOfGuests: guests,
			}
			return a.withAuth(func() error {
				reservation, err := a.reservations.Create(cmd.Context(), req)
				if err != nil {
					a.toasts.Error(err.Error())
					return err
				}
				a.toasts.Success(fmt.Sprintf("reservation %d created, total %.2f, awaiting host confirmation",
					reservation.ID, reservation.TotalPrice))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&propertyID, "property", 0, "property id")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&guests, "guests", 1, "number of guests")
	return cmd
}

func (a *app) reservationTransitionCommand(
	name, short string,
	kind notify.PromptKind,
	action func(context.Context, int) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid reservation id: %w", err)
			}
			return a.withAuth(func() error {
				var actionErr error
				err := a.confirm(
					short,
					fmt.Sprintf("%s %d?", short, id),
					kind,
					func() {
						if actionErr = action(cmd.Context(), id); actionErr == nil {
							a.toasts.Success(fmt.Sprintf("reservation %d: %s done", id, name))
						} else {
							a.toasts.Error(actionErr.Error())
						}
					},
				)
				if err != nil {
					return err
				}
				return actionErr
			})
		},
	}
}

func (a *app) reservationsBusyDatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "busy-dates <property-id>",
		Short: "Show the occupied periods for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id: %w", err)
			}
			reservations, err := a.reservations.BusyDates(cmd.Context(), propertyID)
			if err != nil {
				a.toasts.Error(err.Error())
				return err
			}
			for _, r := range reservations {
				fmt.Printf("%s → %s (%s)\n", r.CheckInDate, r.CheckOutDate, r.Status)
			}
			return nil
		},
	}
}

func printReservation(r models.Reservation) {
	fmt.Printf("#%d %s: %s → %s · %d guests · %.2f · %s\n",
		r.ID, r.Property.Title, r.CheckInDate, r.CheckOutDate, r.NumberOfGuests, r.TotalPrice, r.Status)
}
