package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	httpadp "loanhub-backend/internal/adapter/http"
	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/adapter/repository/sqlstore"
	"loanhub-backend/internal/config"
	domelig "loanhub-backend/internal/domain/eligibility"
	"loanhub-backend/internal/infrastructure/blob"
	"loanhub-backend/internal/infrastructure/cache"
	infradb "loanhub-backend/internal/infrastructure/db"
	"loanhub-backend/internal/infrastructure/security"
	"loanhub-backend/internal/logging"
	"loanhub-backend/internal/metrics"
	"loanhub-backend/internal/usecase/admin"
	"loanhub-backend/internal/usecase/applicant"
	"loanhub-backend/internal/usecase/auth"
	"loanhub-backend/internal/usecase/catalog"
	"loanhub-backend/internal/usecase/eligibility"
	"loanhub-backend/internal/usecase/loan"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("load .env", "err", err)
		os.Exit(1)
	}
	cfg := config.Load()
	logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := infradb.OpenGorm(cfg.DBDriver, cfg.DSN(), infradb.LogLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	if err := infradb.Migrate(db); err != nil {
		return err
	}

	// redis is optional; without it idempotency and login throttling are off
	var rdb redis.UniversalClient
	if cfg.RedisAddr != "" {
		client, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB, 5*time.Second)
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
	} else {
		slog.Warn("REDIS_ADDR not set; idempotency and login throttling disabled")
	}

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: cfg.JWTTTL(),
	})
	if err != nil {
		return err
	}
	blobs, err := blob.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return err
	}
	m := metrics.New()
	repos := sqlstore.Repos(db)
	tx := sqlstore.NewGormUoW(db)

	authUC := auth.NewUsecase(repos.Applicants, tx, security.NewPasswordHasher(cfg.BcryptCost), tokens,
		cache.NewAttemptLimiter(rdb, "loanhub:login", cfg.LoginMaxAttempts, cfg.LoginWindow()), m)
	if err := authUC.EnsureAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover(), middleware.RequestID(), mw.RequestLogger(slog.Default()), mw.RequestMetrics(m))

	httpadp.Register(e, httpadp.Deps{
		Auth:           authUC,
		Applicants:     applicant.NewUsecase(repos.Applicants, repos.Documents, blobs, tx),
		Catalog:        catalog.NewUsecase(repos.Catalog, tx),
		Loans:          loan.NewUsecase(repos.Loans, repos.Applicants, repos.Catalog, tx, m),
		Eligibility:    eligibility.NewUsecase(repos.Applicants, repos.Catalog, repos.Loans, domelig.NewEvaluator(cfg.Eligibility)),
		Admin:          admin.NewUsecase(repos.Loans, repos.Applicants, repos.Catalog, repos.Documents, tx, m),
		Tokens:         tokens,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		Metrics:        m,
		Probes:         map[string]httpadp.Probe{"database": sqlDB.PingContext},
	})

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		slog.Info("listening", "addr", addr, "db", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
