// Package server initializes and runs the account server. It wires the
// database, migrations, password hashing, session management, and the HTTP
// endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avoronov/factura/internal/logging"
	"github.com/avoronov/factura/internal/server/auth"
	"github.com/avoronov/factura/internal/server/config"
	"github.com/avoronov/factura/internal/server/diag"
	"github.com/avoronov/factura/internal/server/hashing"
	"github.com/avoronov/factura/internal/server/httpapi"
	"github.com/avoronov/factura/internal/server/repositories/repomanager"
	"github.com/avoronov/factura/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := buildHasher(cfg)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	tokens := auth.NewTokenManager(repos.Sessions(db), repos.Users(db))
	account := services.NewAccountService(db, repos, hasher, tokens, cfg.SessionTTL, logger)
	ring := diag.NewRing(cfg.DiagCapacity)

	srv := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, tokens, account, ring)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// buildHasher selects the hashing scheme for new password hashes. Stored
// hashes of the other schemes keep verifying; they are upgraded on login.
func buildHasher(cfg *config.Config) (hashing.Hasher, error) {
	switch hashing.Algorithm(cfg.HashAlgorithm) {
	case hashing.AlgorithmBcrypt:
		return hashing.NewBcrypt(hashing.BcryptOptions{Cost: cfg.BcryptCost})
	case hashing.AlgorithmPBKDF2:
		opts := hashing.DefaultPBKDF2Options()
		opts.Iterations = cfg.Pbkdf2Iterations
		return hashing.NewPBKDF2(opts)
	case hashing.AlgorithmArgon2id:
		opts := hashing.DefaultArgon2idOptions()
		opts.Memory = uint32(cfg.Argon2Memory)
		opts.Time = uint32(cfg.Argon2Time)
		opts.Threads = uint8(cfg.Argon2Threads)
		return hashing.NewArgon2id(opts)
	default:
		return hashing.ForAlgorithm(cfg.HashAlgorithm)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}
}
