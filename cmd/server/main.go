package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/league-service/internal/auth"
	"github.com/maxviazov/league-service/internal/config"
	"github.com/maxviazov/league-service/internal/handler"
	"github.com/maxviazov/league-service/internal/logger"
	"github.com/maxviazov/league-service/internal/repository"
	"github.com/maxviazov/league-service/internal/repository/postgres"
	"github.com/maxviazov/league-service/internal/service"
)

func main() {
	configPath := os.Getenv("APP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service terminated with error")
	}
	appLogger.Info().Msg("service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		appLogger.Info().Msg("migrations applied")
	}

	clock := clockwork.NewRealClock()
	pool := db.Pool()
	tx := postgres.NewTxManager(pool)
	teams := postgres.NewTeamRepository(pool)
	fixtures := postgres.NewFixtureRepository(pool)
	rules := service.NewRules(clock)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clock)

	services := handler.Services{
		Users:    service.NewUserService(postgres.NewUserRepository(pool), tx, rules, auth.NewHasher(cfg.Auth.BcryptCost), tokens, appLogger),
		Teams:    service.NewTeamService(teams, tx, rules, appLogger),
		Fixtures: service.NewFixtureService(fixtures, teams, tx, rules, appLogger),
		Search:   service.NewSearchService(teams, fixtures, rules, appLogger),
	}

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	if cfg.App.Pprof {
		pprof.Register(engine)
	}
	handler.Register(engine, postgres.NewPinger(pool), tokens, services)

	corsOrigins := cfg.App.CORSOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: c.Handler(engine),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info().Int("port", cfg.App.Port).Msg("🚀 Service started")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		appLogger.Info().Msg("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})
	return g.Wait()
}
