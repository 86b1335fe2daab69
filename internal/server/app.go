// Package server wires configuration, storage, services and the HTTP and
// gRPC servers together and runs them until the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/logging"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/auth"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/config"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/migrations"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/repositories/repomanager"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/rest"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/services"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/telemetry"

	gs "github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/grpc"
)

// serviceName identifies the server in traces.
const serviceName = "bookshelf"

type App struct {
	config *config.Config
	logger logging.Logger
	open   repomanager.Opener
	http   *rest.Server
	grpc   *gs.GRPCServer

	mu    sync.Mutex
	store repomanager.RepositoryManager
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)
	migrations.SetLogger(logger.With("module", "migrations"))

	open, err := repomanager.NewOpener(c.StorageDriver, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return &App{
		config: c,
		logger: logger,
		open:   open,
		http:   rest.NewServer(c.HTTPAddr, c.ReadTimeout, c.WriteTimeout, logger),
		grpc:   gs.NewGRPCServer(c.GRPCAddr, logger),
	}, nil
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

// connectStorage blocks until the database is reachable, then installs the
// services and reports the server healthy.
func (app *App) connectStorage(ctx context.Context) error {
	m, err := repomanager.Connect(ctx, app.open, repomanager.ConnectOptions{
		PrimaryURI:     app.config.DatabaseURI,
		FallbackURI:    app.config.DatabaseURIFallback,
		ConnectTimeout: app.config.ConnectTimeout,
		RetryDelay:     app.config.RetryDelay,
	}, app.logger.With("module", "storage"))
	if err != nil {
		return err
	}

	app.mu.Lock()
	app.store = m
	app.mu.Unlock()

	tokens := auth.NewTokenManager(app.config.SecretKey, app.config.TokenValidityDuration)
	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)

	app.http.SetServices(&rest.Services{
		Auth:  services.NewAuthService(m, tokens, hasher, app.logger),
		Books: services.NewBookService(m, app.logger),
	})
	app.grpc.SetServing()
	return nil
}

func (app *App) closeStorage() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.store.Close(ctx); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.store = nil
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, app.config.OTelEndpoint)
	if err != nil {
		app.logger.Error(ctx, "tracing disabled", "error", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			app.logger.Error(ctx, "flushing traces", "error", err)
		}
	}()

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	go func() {
		defer wg.Done()
		if err := app.grpc.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	// the servers are up while the database is still being reached; until
	// then the API answers 503 and health reports NOT_SERVING
	go func() {
		defer wg.Done()
		if err := app.connectStorage(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
	app.closeStorage()

	app.logger.Info(context.Background(), "App stopped")
}
