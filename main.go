package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/msomdec/storefront/internal/config"
	"github.com/msomdec/storefront/internal/events"
	"github.com/msomdec/storefront/internal/handler"
	"github.com/msomdec/storefront/internal/repository/sqlite"
	"github.com/msomdec/storefront/internal/service"
	log "github.com/sirupsen/logrus"
)

const sessionPurgeInterval = time.Hour

func main() {
	if err := run(); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return
		}
		log.WithError(err).Error("startup failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		return err
	}
	log.Infof("starting storefront with config:\n%s", cfg)

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrations applied")

	publisher := events.New(cfg.Kafka.BrokerList(), cfg.Kafka.Topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Error("close event publisher")
		}
	}()

	authService := service.NewAuthService(db.Users(), db.Sessions(), cfg.Auth.JWTSecret, cfg.Auth.BcryptCost, cfg.Auth.SessionLifetime)
	catalogService := service.NewCatalogService(db.Products())
	cartService := service.NewCartService(db.Carts(), db.Products())
	orderService := service.NewOrderService(db.Orders(), db.Products(), publisher)

	loginLimiter := service.NewRateLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)
	defer loginLimiter.Stop()

	// Seed the catalog (idempotent).
	if err := catalogService.Seed(context.Background()); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, catalogService, cartService, orderService, loginLimiter, cfg.Web.CookieSecure)

	errLog := log.StandardLogger().WriterLevel(log.ErrorLevel)
	defer errLog.Close()

	srv := &http.Server{
		Addr:              cfg.Web.Address,
		Handler:           handler.RequestID(handler.Logger(handler.SecurityHeaders(mux))),
		ReadHeaderTimeout: cfg.Web.ReadHeaderTimeout,
		ReadTimeout:       cfg.Web.ReadTimeout,
		WriteTimeout:      cfg.Web.WriteTimeout,
		IdleTimeout:       cfg.Web.IdleTimeout,
		MaxHeaderBytes:    1 << 20, // 1MB
		ErrorLog:          stdlog.New(errLog, "", 0),
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go purgeSessions(ctx, authService)

	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// purgeSessions periodically deletes expired sessions until ctx ends.
func purgeSessions(ctx context.Context, auth *service.AuthService) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpiredSessions(ctx)
			if err != nil {
				log.WithError(err).Warn("purge expired sessions")
				continue
			}
			if n > 0 {
				log.WithField("count", n).Info("purged expired sessions")
			}
		}
	}
}
