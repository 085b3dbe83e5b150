package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tool-directory/pkg/api"
	"tool-directory/pkg/config"
	"tool-directory/pkg/db"
	"tool-directory/pkg/logger"
	"tool-directory/pkg/services"
	"tool-directory/pkg/validation"
)

const memoryStoreURL = "memory://"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Dir:     cfg.Log.Dir,
		Name:    "api",
		Console: true,
		Debug:   cfg.Log.Debug,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer closeStore()

	toolService := services.NewToolService(store, validation.Schema(), log)
	router := api.NewRouter(toolService, cfg.API.APIKey, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("API server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Infow("server exited")
	return nil
}

// openStore connects to PostgreSQL, or returns an in-memory store for the
// memory:// URL.
func openStore(ctx context.Context, url string, log *zap.SugaredLogger) (services.ToolStore, func(), error) {
	if strings.HasPrefix(url, memoryStoreURL) {
		log.Warnw("using in-memory store; tools are lost on restart")
		return db.NewMemoryStore(), func() {}, nil
	}

	database, err := db.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	return database, database.Close, nil
}
