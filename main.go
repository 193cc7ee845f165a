package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/nft-contest/cliparse"
	"github.com/danielhkuo/nft-contest/db"
	"github.com/danielhkuo/nft-contest/metrics"
	"github.com/danielhkuo/nft-contest/middleware"
	"github.com/danielhkuo/nft-contest/program"
	"github.com/danielhkuo/nft-contest/router"
)

// Set by LDFLAGS
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(log)

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := dbConn.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	log.Info("Database schema ready", "type", cfg.DatabaseType)

	prog, err := program.New(program.Config{
		Logger:    log,
		Clock:     clockwork.NewRealClock(),
		DB:        dbConn,
		ProgramID: cfg.ProgramID,
	})
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	metrics.BuildInfo.WithLabelValues(version).Set(1)

	server := &http.Server{
		Handler:           middleware.CORS(router.NewRouter(prog, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listening", "port", cfg.Port, "program_id", cfg.ProgramID, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("Server closed", "error", err)
	return err
}
