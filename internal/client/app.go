package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-account-service/internal/adapter"
	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/workers"
	"github.com/MKhiriev/go-account-service/models"
)

type App struct {
	cfg     *config.ClientConfig
	adapter adapter.ServerAdapter
	session Session
	job     SessionJob
	logger  *logger.Logger
}

// NewApp wires the client runtime: configuration, the typed API adapter, the
// session cache, and the background refresh job.
func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("client")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	session := NewSession(serverAdapter, cfg.Session, log)

	return &App{
		cfg:     cfg,
		adapter: serverAdapter,
		session: session,
		job:     NewSessionJob(session, log),
		logger:  log,
	}, nil
}

// Session exposes the wired session for embedding the client as a library.
func (a *App) Session() Session {
	return a.session
}

// Adapter exposes the wired server adapter for direct API access.
func (a *App) Adapter() adapter.ServerAdapter {
	return a.adapter
}

// Run implements [Client]. When startup credentials are configured it logs
// in, reports the authenticated profile, and keeps the session warm until
// the process receives a stop signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if creds := a.cfg.Credentials; creds.Email != "" && creds.Password != "" {
		user, err := a.session.Login(ctx, models.LoginRequest{
			Email:    creds.Email,
			Password: creds.Password,
		})
		if err != nil {
			return fmt.Errorf("startup login: %w", err)
		}

		a.logger.Info().
			Int64("id", user.ID).
			Str("email", user.Email).
			Bool("is_admin", user.IsAdmin).
			Msg("logged in")
	}

	background := workers.NewWorkers(
		workers.WorkerFunc(func() {
			a.job.Start(ctx, a.cfg.Session.RefreshInterval)
		}),
	)
	background.Run()
	defer a.job.Stop()

	<-ctx.Done()

	a.session.Logout()
	a.logger.Info().Msg("client stopped")

	return nil
}
