// Package app assembles passkeeper from its configuration and runs the
// interactive shell.
//
// Startup order: logger, key store, vault key (fatal on failure), database
// and migrations (fatal on failure), vault service, shell. Close releases
// them in reverse and wipes the key.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/passkeeper/internal/cli"
	"github.com/dmitrijs2005/passkeeper/internal/config"
	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/filex"
	"github.com/dmitrijs2005/passkeeper/internal/keystore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passkeeper/internal/session"
	"github.com/dmitrijs2005/passkeeper/internal/vault"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	logCloser io.Closer
	keys      *cryptox.KeyProvider
	db        *sql.DB
	vault     *vault.Service
	shell     *cli.App
}

// NewApp builds every component. On error, whatever was already opened is
// released before returning.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (_ *App, err error) {
	app := &App{config: c}
	defer func() {
		if err != nil {
			app.Close(ctx)
		}
	}()

	app.logger, app.logCloser, err = newLogger(c)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store, err := newKeyStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("key store init error: %w", err)
	}

	app.keys = cryptox.NewKeyProvider(store, app.logger)
	key, err := app.keys.GetOrCreateKey(ctx)
	if err != nil {
		return nil, err
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN, app.logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	app.vault = vault.NewService(db, rm,
		cryptox.NewHasher(c.BcryptCost),
		cryptox.NewSecretCipher(key),
		session.NewGate(app.logger),
		app.logger)
	app.shell = cli.NewApp(app.vault, in, out, c.OperationTimeout, app.logger)

	return app, nil
}

// Run serves the shell until the user exits or a termination signal arrives,
// then closes the application.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer app.Close(context.Background())

	app.logger.Info(ctx, "starting passkeeper",
		"database_driver", app.config.DatabaseDriver, "key_store", app.config.KeyStore)

	return app.shell.Run(ctx)
}

// Close ends the session, wipes the vault key and closes the database and
// the log file. It is safe to call more than once.
func (app *App) Close(ctx context.Context) {
	if app.vault != nil {
		if _, ok := app.vault.Current(); ok {
			app.vault.Logout(ctx)
		}
		app.vault = nil
	}
	if app.keys != nil {
		app.keys.Close()
		app.keys = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil && app.logger != nil {
			app.logger.Error(ctx, "closing database", "error", err.Error())
		}
		app.db = nil
	}
	if app.logger != nil {
		app.logger.Info(ctx, "passkeeper stopped")
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}

// newLogger writes JSON to c.LogFile, or text to stderr when no file is set.
func newLogger(c *config.Config) (logging.Logger, io.Closer, error) {
	if c.LogFile == "" {
		l, err := logging.New(os.Stderr, c.LogLevel, false)
		if err != nil {
			return nil, nil, err
		}
		return l, nil, nil
	}

	if err := filex.EnsureParentDir(c.LogFile); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(c.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	l, err := logging.New(f, c.LogLevel, true)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return l, f, nil
}

func newKeyStore(ctx context.Context, c *config.Config) (keystore.Store, error) {
	switch c.KeyStore {
	case config.KeyStoreFile:
		return keystore.NewFileStore(c.KeyFile), nil
	case config.KeyStoreS3:
		return keystore.NewS3Store(ctx, keystore.S3Config{
			Bucket:       c.S3Bucket,
			Object:       c.S3KeyObject,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
	}
	return nil, fmt.Errorf("unsupported key store %q", c.KeyStore)
}
