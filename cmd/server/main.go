// @title           Society API
// @version         1.0
// @description     Residential society management: accounts, role dashboards, billing, visitors, complaints, amenities and notices.
// @BasePath        /
//
// @securityDefinitions.apikey SessionCookie
// @in                         cookie
// @name                       session_id
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/esociety/society-api/docs"
	"github.com/esociety/society-api/internal/api"
	"github.com/esociety/society-api/internal/api/handler"
	"github.com/esociety/society-api/internal/core/service"
	"github.com/esociety/society-api/internal/infrastructure/config"
	mongodb "github.com/esociety/society-api/internal/infrastructure/db/mongo"
	redisdb "github.com/esociety/society-api/internal/infrastructure/db/redis"
	"github.com/esociety/society-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Pretty: true})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "society-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	// --- Repositories ---
	accounts := mongodb.NewAccountRepository(db)
	units := mongodb.NewUnitRepository(db)
	residents := mongodb.NewResidentRepository(db)
	bills := mongodb.NewBillRepository(db)
	transactions := mongodb.NewTransactionRepository(db)
	visitors := mongodb.NewVisitorRepository(db)
	complaints := mongodb.NewComplaintRepository(db)
	amenities := mongodb.NewAmenityRepository(db)
	bookings := mongodb.NewBookingRepository(db)
	notices := mongodb.NewNoticeRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.Secret, cfg.Session.TTL)

	// --- Services ---
	noticeSvc := service.NewNoticeService(notices, log)
	svc := api.Services{
		Auth:       service.NewAuthService(accounts, sessions, cfg.Signup.UsernameAttempts, log),
		Accounts:   service.NewAccountService(accounts, log),
		Units:      service.NewUnitService(units, residents, accounts, log),
		Billing:    service.NewBillingService(bills, transactions, units, residents, log),
		Visitors:   service.NewVisitorService(visitors, units, residents, log),
		Complaints: service.NewComplaintService(complaints, residents, accounts, log),
		Amenities:  service.NewAmenityService(amenities, bookings, residents, log),
		Notices:    noticeSvc,
		Dashboards: service.NewDashboardService(service.DashboardRepos{
			Units:      units,
			Residents:  residents,
			Bills:      bills,
			Complaints: complaints,
			Visitors:   visitors,
			Bookings:   bookings,
		}, noticeSvc, log),
	}

	e := api.NewRouter(svc, api.Options{
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		RateLimit: cfg.Signup.RateLimit,
		RateBurst: cfg.Signup.RateBurst,
		Health: map[string]handler.Pinger{
			"mongo": handler.PingFunc(func(ctx context.Context) error { return mongodb.Ping(ctx, db) }),
			"redis": handler.PingFunc(func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) }),
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
