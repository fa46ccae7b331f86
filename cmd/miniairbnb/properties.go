package main

import (
	"fmt"
	"strconv"

	"github.com/miniairbnb/client/internal/models"
	"github.com/miniairbnb/client/internal/notify"
	"github.com/spf13/cobra"
)

func (a *app) propertiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Browse and manage listings",
	}
	cmd.AddCommand(
		a.propertiesListCommand(),
		a.propertiesGetCommand(),
		a.propertiesMineCommand(),
		a.propertiesCreateCommand(),
		a.propertiesUpdateCommand(),
		a.propertiesDeleteCommand(),
	)
	return cmd
}

func (a *app) propertiesListCommand() *cobra.Command {
	var city, country string
	var minPrice, maxPrice float64
	var minBedrooms, minBathrooms, minGuests int
	var hostID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.properties.Browse(cmd.Context(), city, country); err != nil {
				a.toasts.Error(err.Error())
				return err
			}

			filters := models.PropertyFilters{}
			if cmd.Flags().Changed("min-price") {
				filters.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				filters.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("min-bedrooms") {
				filters.MinBedrooms = &minBedrooms
			}
			if cmd.Flags().Changed("min-bathrooms") {
				filters.MinBathrooms = &minBathrooms
			}
			if cmd.Flags().Changed("min-guests") {
				filters.MinGuests = &minGuests
			}
			a.properties.SetFilters(filters)

			if cmd.Flags().Changed("host") {
				if err := a.properties.FilterByHost(hostID); err != nil {
					a.toasts.Error(err.Error())
					return err
				}
			}

			for _, p := range a.properties.Visible() {
				printProperty(p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "filter by city (server-side)")
	cmd.Flags().StringVar(&country, "country", "", "filter by country (server-side)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price per night")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price per night")
	cmd.Flags().IntVar(&minBedrooms, "min-bedrooms", 0, "minimum bedrooms")
	cmd.Flags().IntVar(&minBathrooms, "min-bathrooms", 0, "minimum bathrooms")
	cmd.Flags().IntVar(&minGuests, "min-guests", 0, "minimum guest capacity")
	cmd.Flags().IntVar(&hostID, "host", 0, "admin: show only this host's properties")
	return cmd
}

func (a *app) propertiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id: %w", err)
			}
			property, err := a.properties.Get(cmd.Context(), id)
			if err != nil {
				a.toasts.Error(err.Error())
				return err
			}
			printProperty(*property)
			identity := a.session.Identity()
			if identity != nil && property.Host.ID == identity.ID {
				fmt.Println("this is your own property, it cannot be reserved by you")
			}
			return nil
		},
	}
}

func (a *app) propertiesMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your own properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(func() error {
				properties, err := a.properties.Mine(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range properties {
					printProperty(p)
				}
				return nil
			})
		},
	}
}

func propertyInputFlags(cmd *cobra.Command, input *models.PropertyInput) {
	cmd.Flags().StringVar(&input.Title, "title", "", "listing title")
	cmd.Flags().StringVar(&input.Description, "description", "", "listing description")
	cmd.Flags().StringVar(&input.Address, "address", "", "street address")
	cmd.Flags().StringVar(&input.City, "city", "", "city")
	cmd.Flags().StringVar(&input.Country, "country", "", "country")
	cmd.Flags().Float64Var(&input.PricePerNight, "price", 0, "price per night")
	cmd.Flags().IntVar(&input.Bedrooms, "bedrooms", 1, "number of bedrooms")
	cmd.Flags().IntVar(&input.Bathrooms, "bathrooms", 1, "number of bathrooms")
	cmd.Flags().IntVar(&input.MaxGuests, "max-guests", 1, "maximum guests")
}

func (a *app) propertiesCreateCommand() *cobra.Command {
	var input models.PropertyInput
	var images []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(func() error {
				property, err := a.properties.Create(cmd.Context(), input, images)
				if err != nil {
					a.toasts.Error(err.Error())
					return err
				}
				a.toasts.Success(fmt.Sprintf("property %q published with id %d", property.Title, property.ID))
				return nil
			})
		},
	}
	propertyInputFlags(cmd, &input)
	cmd.Flags().StringArrayVar(&images, "image", nil, "image file to upload (repeatable)")
	return cmd
}

func (a *app) propertiesUpdateCommand() *cobra.Command {
	var input models.PropertyInput
	var images, removeImages []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id: %w", err)
			}
			return a.withAuth(func() error {
				property, err := a.properties.Update(cmd.Context(), id, input, images, removeImages)
				if err != nil {
					a.toasts.Error(err.Error())
					return err
				}
				a.toasts.Success(fmt.Sprintf("property %q saved", property.Title))
				return nil
			})
		},
	}
	propertyInputFlags(cmd, &input)
	cmd.Flags().StringArrayVar(&images, "image", nil, "new image file to upload (repeatable)")
	cmd.Flags().StringArrayVar(&removeImages, "remove-image", nil, "persisted image URL to remove (repeatable)")
	return cmd
}

func (a *app) propertiesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id: %w", err)
			}
			return a.withAuth(func() error {
				var actionErr error
				err := a.confirm(
					"Delete property",
					fmt.Sprintf("Property %d and its reservations will be removed. Continue?", id),
					notify.PromptDanger,
					func() {
						if actionErr = a.properties.Delete(cmd.Context(), id); actionErr == nil {
							a.toasts.Success("property deleted")
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

func printProperty(p models.Property) {
	fmt.Printf("#%d %s — %s, %s · %.2f/night · %d bd, %d ba, up to %d guests · host %s\n",
		p.ID, p.Title, p.City, p.Country, p.PricePerNight, p.Bedrooms, p.Bathrooms, p.MaxGuests, p.Host.Email)
}
