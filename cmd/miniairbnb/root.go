package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/miniairbnb/client/internal/notify"
	"github.com/miniairbnb/client/internal/services"
	"github.com/miniairbnb/client/internal/session"
	"github.com/spf13/cobra"
)

// app bundles the view models and the feedback layer behind the commands.
type app struct {
	session      *session.Store
	properties   *services.PropertyService
	reservations *services.ReservationService
	users        *services.UserService
	toasts       *notify.ToastCenter
	confirmer    *notify.Confirmer
	stdin        *bufio.Reader
}

// setupNotify wires the toast queue to the terminal and prepares the
// confirmation prompt.
func (a *app) setupNotify() {
	a.stdin = bufio.NewReader(os.Stdin)
	a.confirmer = notify.NewConfirmer()
	a.toasts = notify.NewToastCenter(notify.WithListener(func(t notify.Toast) {
		switch t.Kind {
		case notify.ToastError:
			fmt.Fprintf(os.Stderr, "✗ %s\n", t.Message)
		case notify.ToastSuccess:
			fmt.Printf("✓ %s\n", t.Message)
		case notify.ToastWarning:
			fmt.Printf("! %s\n", t.Message)
		default:
			fmt.Printf("· %s\n", t.Message)
		}
	}))
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "miniairbnb",
		Short:         "Terminal client for the MiniAirbnb marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.becomeHostCommand(),
		a.propertiesCommand(),
		a.reservationsCommand(),
		a.usersCommand(),
	)
	return root
}

// confirm shows a yes/no prompt and reads the answer from stdin. Cancelling
// (anything but y/yes, including EOF) closes the prompt without running the
// action.
func (a *app) confirm(title, message string, kind notify.PromptKind, action func()) error {
	if err := a.confirmer.Show(notify.Prompt{
		Title:     title,
		Message:   message,
		Kind:      kind,
		OnConfirm: action,
	}); err != nil {
		return err
	}

	fmt.Printf("%s\n%s [y/N]: ", title, message)
	answer, err := a.stdin.ReadString('\n')
	if err != nil {
		a.confirmer.Cancel()
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		a.confirmer.Confirm()
	default:
		a.confirmer.Cancel()
		a.toasts.Info("action cancelled")
	}
	return nil
}

// withAuth runs the action; when it fails because no one is logged in, it
// walks the user through login and then resumes the original action, so the
// place they were headed to survives the detour.
func (a *app) withAuth(action func() error) error {
	err := action()
	if !errors.Is(err, services.ErrNotAuthenticated) {
		return err
	}

	var notAuth *services.NotAuthenticatedError
	if errors.As(err, &notAuth) {
		a.toasts.Warning("you need to log in first, then you'll be returned to " + notAuth.ReturnTo)
	} else {
		a.toasts.Warning("you need to log in first")
	}

	if err := a.interactiveLogin(); err != nil {
		return err
	}
	return action()
}

// interactiveLogin prompts for credentials on stdin.
func (a *app) interactiveLogin() error {
	fmt.Print("email: ")
	email, err := a.stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	fmt.Print("password: ")
	password, err := a.stdin.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	identity, err := a.session.Login(context.Background(), strings.TrimSpace(email), strings.TrimSpace(password))
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}
	a.toasts.Success("logged in as " + identity.Email)
	return nil
}
