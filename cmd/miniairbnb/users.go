package main

import (
	"fmt"
	"strconv"

	"github.com/miniairbnb/client/internal/notify"
	"github.com/spf13/cobra"
)

func (a *app) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Moderate users (admin only)",
	}
	cmd.AddCommand(
		a.usersListCommand(),
		a.usersSetRoleCommand(),
		a.usersDeleteCommand(),
	)
	return cmd
}

func (a *app) usersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withAuth(func() error {
				users, err := a.users.Refresh(cmd.Context())
				if err != nil {
					a.toasts.Error(err.Error())
					return err
				}
				for _, u := range users {
					fmt.Printf("#%d %s %s <%s> (%s)\n", u.ID, u.FirstName, u.LastName, u.Email, u.Role)
				}
				return nil
			})
		},
	}
}

func (a *app) usersSetRoleCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "set-role <id>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			parsed, err := parseRoleFlag(role)
			if err != nil {
				return err
			}
			return a.withAuth(func() error {
				var actionErr error
				err := a.confirm(
					"Change role",
					fmt.Sprintf("Set role of user %d to %s?", id, parsed),
					notify.PromptInfo,
					func() {
						if actionErr = a.users.SetRole(cmd.Context(), id, parsed); actionErr == nil {
							a.toasts.Success("role updated")
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
	cmd.Flags().StringVar(&role, "role", "", "new role (guest, host or admin)")
	return cmd
}

func (a *app) usersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			return a.withAuth(func() error {
				var actionErr error
				err := a.confirm(
					"Delete user",
					fmt.Sprintf("User %d will be removed permanently. Continue?", id),
					notify.PromptDanger,
					func() {
						if actionErr = a.users.Delete(cmd.Context(), id); actionErr == nil {
							a.toasts.Success("user deleted")
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
