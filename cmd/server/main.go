package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Homeboard/internal/adapters/http"
	"github.com/dkeye/Homeboard/internal/app"
	"github.com/dkeye/Homeboard/internal/config"
	"github.com/dkeye/Homeboard/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	svc := app.NewService(st)
	auth := app.NewAuth(st, cfg.Secret)
	h := router.NewHandlers(svc, auth)

	r := router.SetupRouter(cfg, h)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Str("store", cfg.Store).Msg("Homeboard server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}

// openStore picks the repository backend. The memory store is seeded with
// the household fixture; the sqlite store only gets the fixture on a fresh
// database so restarts keep user data.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case "sqlite":
		st, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.Seed {
			users, err := st.ListUsers(ctx)
			if err != nil {
				st.Close()
				return nil, err
			}
			if len(users) == 0 {
				if err := store.Seed(ctx, st); err != nil {
					st.Close()
					return nil, err
				}
			}
		}
		return st, nil
	case "memory", "":
		st := store.NewMemory()
		if cfg.Seed {
			if err := store.Seed(ctx, st); err != nil {
				return nil, err
			}
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
