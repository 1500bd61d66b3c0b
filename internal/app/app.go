package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/2loga/logbeauty/config"
	"github.com/2loga/logbeauty/internal/adapter/blob"
	"github.com/2loga/logbeauty/internal/adapter/firestore"
	"github.com/2loga/logbeauty/internal/adapter/localstate"
	"github.com/2loga/logbeauty/internal/core/port"
	"github.com/2loga/logbeauty/internal/core/service"
)

// adminPassword is the single shared secret compiled into the client.
// Not a security boundary: it is inspectable by anyone holding the
// binary, faithfully ported from the original storefront.
const adminPassword = "2LOGA123"

type adapters struct {
	db    firestore.Client
	blobs blob.Store
	flags *localstate.FlagStore
}

type App struct {
	ctx context.Context
	cfg config.Config

	adapters adapters

	synchronizer *service.CatalogSynchronizer
	products     *service.ProductService
	sessions     *service.SessionGate
}

func New(ctx context.Context, cfg config.Config, confirmer port.Confirmer) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initAdapters()
	app.initServices(confirmer)

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initAdapters() {
	const op = "App.initAdapters"

	db, err := firestore.NewClient(
		app.ctx, app.cfg.Catalog.ProjectID, app.cfg.Catalog.CredentialsFile,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	blobs, err := blob.NewStore(
		app.ctx, app.cfg.Catalog.StorageBucket, app.cfg.Catalog.CredentialsFile,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	flags, err := localstate.NewFlagStore(app.cfg.StateDir)
	if err != nil {
		app.fallDown(op, err)
	}

	app.adapters = adapters{db: db, blobs: blobs, flags: flags}
}

func (app *App) initServices(confirmer port.Confirmer) {
	if confirmer == nil {
		// Safe default for binaries that never delete: decline.
		confirmer = port.ConfirmFunc(func(string) bool { return false })
	}

	catalog := firestore.NewCatalogStore(app.adapters.db, app.cfg.Catalog.Collection)

	app.synchronizer = service.NewCatalogSynchronizer(catalog)
	app.products = service.NewProductService(catalog, app.adapters.blobs, confirmer)
	app.sessions = service.NewSessionGate(adminPassword, app.adapters.flags)
}

// Run restores a remembered session and starts the catalog synchronizer.
func (app *App) Run() {
	app.sessions.Restore()
	go app.synchronizer.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Synchronizer() *service.CatalogSynchronizer {
	return app.synchronizer
}

func (app *App) Products() *service.ProductService {
	return app.products
}

func (app *App) Sessions() *service.SessionGate {
	return app.sessions
}

func (app *App) Close() {
	slog.Info("application is closing...")

	app.adapters.db.Close()
	app.adapters.blobs.Close()
	if err := app.adapters.flags.Close(); err != nil {
		slog.Error("failed to close local state", "err", err)
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
