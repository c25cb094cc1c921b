package main

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/archiveshq/storefront/internal/api"
	"github.com/archiveshq/storefront/internal/authflow"
	"github.com/archiveshq/storefront/internal/cart"
	"github.com/archiveshq/storefront/internal/catalog"
	"github.com/archiveshq/storefront/internal/ratings"
	"github.com/archiveshq/storefront/internal/session"
	"github.com/archiveshq/storefront/pkg/config"
	"github.com/archiveshq/storefront/pkg/localstore"
	"github.com/archiveshq/storefront/pkg/logger"
	"github.com/archiveshq/storefront/pkg/metrics"
)

const deviceIDKey = "archives-device-id"

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	store, err := localstore.Open(ctx, cfg.Store, logg)
	if err != nil {
		logg.Error(ctx, "failed to open local store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(ctx, "error closing local store", err)
		}
	}()

	products, err := loadCatalog(cfg)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(registry)

	client, err := api.NewClient(ctx, cfg.API, logg,
		api.WithDeviceID(deviceID(ctx, store)),
		api.WithMetrics(apiMetrics),
	)
	if err != nil {
		logg.Error(ctx, "failed to build api client", err)
		os.Exit(1)
	}

	ratingStore, err := ratings.NewStore(store, logg)
	if err != nil {
		logg.Error(ctx, "failed to build rating store", err)
		os.Exit(1)
	}

	sessionStore, err := session.NewStore(store, logg)
	if err != nil {
		logg.Error(ctx, "failed to build session store", err)
		os.Exit(1)
	}

	controller, err := authflow.NewController(ctx, authflow.ControllerParams{
		Client:        client,
		Sessions:      sessionStore,
		Logger:        logg,
		VerboseErrors: cfg.App.IsDev(),
	})
	if err != nil {
		logg.Error(ctx, "failed to build auth controller", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "env", cfg.App.Env), "storefront starting")

	shell := newShell(shellParams{
		Catalog: products,
		Ratings: ratingStore,
		Auth:    controller,
		Cart:    cart.New(),
		Logger:  logg,
		In:      os.Stdin,
		Out:     os.Stdout,
	})
	if err := shell.run(ctx); err != nil && !errors.Is(err, errQuit) {
		logg.Error(ctx, "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Load()
}

// deviceID returns the stable per-install identifier, minting one on first
// run. Failures fall back to an ephemeral id.
func deviceID(ctx context.Context, store localstore.Store) string {
	if raw, err := store.Get(ctx, deviceIDKey); err == nil && len(raw) > 0 {
		return string(raw)
	}
	id := uuid.NewString()
	_ = store.Set(ctx, deviceIDKey, []byte(id))
	return id
}
