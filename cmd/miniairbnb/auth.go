package main

import (
	"fmt"

	"github.com/miniairbnb/client/internal/models"
	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return a.interactiveLogin()
			}
			identity, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				a.toasts.Error(err.Error())
				return err
			}
			a.toasts.Success("logged in as " + identity.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func (a *app) registerCommand() *cobra.Command {
	var req models.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" {
				parsed, err := parseRoleFlag(role)
				if err != nil {
					return err
				}
				req.Role = parsed
			}
			identity, err := a.session.Register(cmd.Context(), req)
			if err != nil {
				a.toasts.Error(err.Error())
				return err
			}
			a.toasts.Success("welcome, " + identity.FirstName)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&role, "role", "", "initial role (guest or host)")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			a.session.Logout()
			a.toasts.Success("logged out")
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Run: func(cmd *cobra.Command, args []string) {
			identity := a.session.Identity()
			if identity == nil {
				fmt.Println("not logged in")
				return
			}
			fmt.Printf("%s %s <%s> (%s)\n", identity.FirstName, identity.LastName, identity.Email, identity.Role)
		},
	}
}

func (a *app) becomeHostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "become-host",
		Short: "Upgrade the current account to a host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsAuthenticated() {
				if err := a.interactiveLogin(); err != nil {
					return err
				}
			}
			identity := a.session.Identity()
			if identity != nil && (identity.Role == models.RoleHost || identity.Role == models.RoleAdmin) {
				a.toasts.Info("you are already a host")
				return nil
			}
			if _, err := a.session.BecomeHost(cmd.Context()); err != nil {
				a.toasts.Error(err.Error())
				return err
			}
			a.toasts.Success("congratulations, you are now a host")
			return nil
		},
	}
}

// parseRoleFlag accepts the short role names used on the command line.
func parseRoleFlag(s string) (models.Role, error) {
	switch s {
	case "guest", "GUEST":
		return models.RoleGuest, nil
	case "host", "HOST":
		return models.RoleHost, nil
	case "admin", "ADMIN":
		return models.RoleAdmin, nil
	}
	return models.ParseRole(s)
}
