// Package daemon wires the database, sessions, file storage and web service
// together and runs them until the context is canceled.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/config"
	"github.com/mkeenan750/snapcourse/internal/db"
	"github.com/mkeenan750/snapcourse/internal/files"
	"github.com/mkeenan750/snapcourse/internal/i18n"
	"github.com/mkeenan750/snapcourse/internal/web"
	"github.com/mkeenan750/snapcourse/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config, fastShutDown bool) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	database, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, database); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	// Initialize fiber session store
	storage, err := session.NewStorage(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session storage")
	}

	session.Init(storage, cfg.Webserver.Session.ExpiryTime)

	store, err := files.New(cfg.Files)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file store")
	}

	if ms, ok := store.(*files.MinioStore); ok {
		if err = ms.EnsureBucket(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to prepare bucket")
		}
	}

	bundle, err := i18n.New(cfg.I18n.DefaultLanguage, cfg.I18n.Languages)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load translations")
	}

	webService, err := web.New(cfg, database, web.Options{
		Bundle:       bundle,
		Files:        store,
		FastShutDown: fastShutDown,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         database,
		storage:    storage,
		webService: webService,
	}, nil
}

// Run serves until ctx is canceled or the web service fails.
func (d *Daemon) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting http server")

		return d.webService.Start(addr)
	})

	g.Go(func() error {
		return d.webService.Shutdown(gctx)
	})

	err := g.Wait()

	if closeErr := d.storage.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("failed to close session storage")
	}

	if sqlDB, dbErr := d.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	return err
}
