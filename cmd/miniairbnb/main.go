package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/miniairbnb/client/internal/api"
	"github.com/miniairbnb/client/internal/config"
	"github.com/miniairbnb/client/internal/logger"
	"github.com/miniairbnb/client/internal/services"
	"github.com/miniairbnb/client/internal/session"
	"github.com/miniairbnb/client/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	// Persisted session state
	keystore, err := storage.NewKeystore(cfg.State.Dir, logger.Logger)
	if err != nil {
		log.Fatalf("Failed to open state directory: %v\n", err)
	}

	// REST collaborator
	client := api.NewClient(cfg.API.BaseURL, logger.Logger,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	// Session store, wired as the client's token source and 401 hook
	sess := session.NewStore(client, keystore, logger.Logger)
	client.SetTokenSource(sess)
	client.SetSessionExpiredHook(sess.HandleSessionExpired)
	sess.Restore()

	// View models
	app := &app{
		session:      sess,
		properties:   services.NewPropertyService(client, sess, logger.Logger),
		reservations: services.NewReservationService(client, client, sess, logger.Logger),
		users:        services.NewUserService(client, sess, logger.Logger),
	}
	app.setupNotify()

	if err := app.rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
