package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ayodele/storefront/api"
	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/config"
	"github.com/ayodele/storefront/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("storefront"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	log := lgr.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	fmt.Println("============")
	fmt.Println(print.MaybeHighlightJSON(redacted(cfg)))
	fmt.Println("============")

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := store.NewRepositoryManager(db)
	repo.MustValidate()

	if err := store.SeedSuperAdmin(ctx, repo.Users(), cfg.SuperAdminSeed()); err != nil {
		log.Error("seed super admin", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.TokenConfig(), lgr.GetLogger("auth:tokens"))
	if err != nil {
		log.Error("token service", "error", err)
		os.Exit(1)
	}

	carrier := auth.NewCarrier(cfg.Cookie.Name, cfg.Cookie.Secure, cfg.Tokens.RefreshTTL)

	provider := store.NewUserProvider(repo.Users()).
		WithLogger(lgr.GetLogger("auth:prv"))

	auther := auth.NewAuthenticator(provider, tokens).
		WithLogger(lgr.GetLogger("auth:authn"))

	guard, err := auth.NewGuard(auth.GuardConfig{
		Tokens:  tokens,
		Carrier: carrier,
		Public:  api.PublicEndpoints(),
		Logger:  lgr.GetLogger("auth:guard"),
	})
	if err != nil {
		log.Error("guard", "error", err)
		os.Exit(1)
	}

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		a = fiber.New(fiber.Config{
			AppName:       "storefront",
			StrictRouting: false,
		})
		a.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.AllowedOrigins(),
			AllowCredentials: cfg.HTTP.AllowedOrigins() != "*",
		}))
		a.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimit,
			Expiration: time.Minute,
		}))
		return router.DefaultFiberOptions(a)
	})

	srv.Router().WithLogger(lgr.GetLogger("router"))

	api.Register(srv.Router(), api.Deps{
		Repo:    repo,
		Auther:  auther,
		Carrier: carrier,
		Guard:   guard,
		Logger:  lgr.GetLogger("api"),
	})

	log.Info("listening", "addr", cfg.HTTP.Addr)
	srv.Serve(cfg.HTTP.Addr)

	WaitExitSignal()
}

func openDatabase(ctx context.Context, cfg config.AppConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// sqlite serializes writers anyway, a single connection avoids
	// table lock errors under concurrent requests
	if strings.Contains(cfg.DB.DSN, ":memory:") {
		sqldb.SetMaxOpenConns(1)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := store.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// redacted copies the config with secrets masked for the startup dump.
func redacted(cfg config.AppConfig) config.AppConfig {
	cfg.Tokens.AccessSecret = mask(cfg.Tokens.AccessSecret)
	cfg.Tokens.RefreshSecret = mask(cfg.Tokens.RefreshSecret)
	cfg.Seed.Password = mask(cfg.Seed.Password)
	return cfg
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
