// Package server wires the softasistence auth service together: it opens
// and migrates the database, builds the services and runs the HTTP and
// gRPC transports until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softasistence/internal/logging"
	"github.com/dmitrijs2005/softasistence/internal/server/auth"
	"github.com/dmitrijs2005/softasistence/internal/server/config"
	"github.com/dmitrijs2005/softasistence/internal/server/httpapi"
	"github.com/dmitrijs2005/softasistence/internal/server/metrics"
	"github.com/dmitrijs2005/softasistence/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/softasistence/internal/server/services"

	gs "github.com/dmitrijs2005/softasistence/internal/server/grpc"
)

const pingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	manager     repomanager.RepositoryManager
	metrics     *metrics.Metrics
	tokens      *auth.TokenManager
	authService *services.AuthService
}

func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(os.Stdout, level).With("env", c.Environment)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)

	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager()), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) *App {
	gin.SetMode(httpapi.ModeFor(c.Environment))

	mx := metrics.New()
	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.TokenLifetime)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		manager:     m,
		metrics:     mx,
		tokens:      tokens,
		authService: services.NewAuthService(db, m, tokens, mx, logger.With("module", "auth_service")),
	}
}

// Init checks the database connection, applies pending migrations and
// refuses to continue when the users table lacks a required column.
func (app *App) Init(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := app.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("db connect error: %w", err)
	}

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	if err := app.manager.VerifySchema(ctx, app.db); err != nil {
		return err
	}

	if app.config.UsesDefaultSecret() {
		app.logger.Warn(ctx, "using the default development secret key; set JWT_SECRET")
	}

	return nil
}

// initSignalHandler cancels on SIGINT or SIGTERM. The returned channel is
// closed once the handler has stopped listening, which happens on the
// first signal or when ctx is done.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "signal received", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return done
}

func (app *App) startHTTPServer(ctx context.Context) error {
	router := httpapi.NewRouter(httpapi.Deps{
		Auth:     app.authService,
		Verifier: app.tokens,
		DB:       app.db,
		Metrics:  app.metrics,
		Logger:   app.logger,
	})

	s := httpapi.NewHTTPServer(app.config.HTTPAddr, router, app.logger)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.authService, app.tokens, app.metrics)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

// Run initializes the app and serves until ctx is cancelled, a signal
// arrives or a transport fails. A failing transport stops the others and
// its error is returned. The database is closed last.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.Init(ctx); err != nil {
		return err
	}

	signalsDone := app.initSignalHandler(ctx, cancelFunc)

	servers := []func(context.Context) error{app.startHTTPServer}
	if app.config.GRPCAddr != "" {
		servers = append(servers, app.startGRPCServer)
	}

	errs := make(chan error, len(servers))
	var wg sync.WaitGroup

	for _, serve := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				errs <- err
				cancelFunc()
			}
		}()
	}

	wg.Wait()
	cancelFunc()
	<-signalsDone
	close(errs)

	app.logger.Info(context.Background(), "App stopped")
	return <-errs
}
