package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"qrcheckctl/config"
	"qrcheckctl/internal/adapters/api"
	"qrcheckctl/internal/adapters/auth"
	"qrcheckctl/internal/adapters/storage"
	"qrcheckctl/internal/delivery/cli"
	"qrcheckctl/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	tokens, err := storage.NewFileTokenStore(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, tokens, logger)

	authSvc := services.NewAuthService(client, client, tokens, logger)
	sessionSvc := services.NewSessionService(authSvc, client, tokens, auth.NewJWTInspector(), logger)
	eventSvc := services.NewEventService(client, logger)

	// A rejected token ends the session everywhere, not just at the call site.
	client.OnUnauthorized(sessionSvc.Expire)

	app := &cli.App{
		Session: sessionSvc,
		Auth:    authSvc,
		Events:  eventSvc,
		People:  client,
		QR:      services.NewQRCodeService(0),
		Log:     logger,
		Out:     os.Stdout,
		In:      os.Stdin,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand(app).ExecuteContext(ctx)
}
