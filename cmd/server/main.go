package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/localpages/backoffice/internal/api"
	"github.com/localpages/backoffice/internal/config"
	"github.com/localpages/backoffice/internal/mailer"
	"github.com/localpages/backoffice/internal/notify"
	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/repository/postgres"
	"github.com/localpages/backoffice/internal/service/business"
	"github.com/localpages/backoffice/internal/service/invitation"
	"github.com/localpages/backoffice/internal/service/preference"
	"github.com/localpages/backoffice/internal/service/suppression"
	"github.com/localpages/backoffice/internal/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	config.LoadEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config load failed", "path", *configPath, "error", err.Error())
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("database open failed", "error", err.Error())
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancel()
		logger.Error("database ping failed", "error", err.Error())
		os.Exit(1)
	}
	cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	sesMailer, err := mailer.NewSESMailer(context.Background(), cfg.Mailer)
	if err != nil {
		logger.Error("mailer init failed", "error", err.Error())
		os.Exit(1)
	}

	notifications := notify.NewService(postgres.NewNotificationRepo(db))
	suppressions := suppression.NewService(postgres.NewSuppressionRepo(db))
	preferences := preference.NewService(postgres.NewPreferenceRepo(db))
	businesses := business.NewService(postgres.NewBusinessRepo(db))
	invitations := invitation.NewService(
		postgres.NewInvitationRepo(db),
		sesMailer,
		notifications,
		invitation.Options{
			AcceptURLBase: cfg.Panel.BaseURL + "/invitations/accept",
			Expiry:        time.Duration(cfg.Invitations.ExpiryDays) * 24 * time.Hour,
			SendTimeout:   cfg.Mailer.SendTimeout(),
		},
	)
	sessions := session.NewStore(rdb, 0)

	router := api.NewRouter(api.Deps{
		Suppressions:   suppressions,
		Preferences:    preferences,
		Invitations:    invitations,
		Businesses:     businesses,
		Notifications:  notifications,
		Sessions:       sessions,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SelectURL:      cfg.Panel.SelectBusinessURL,
	})

	srv := api.NewServer(cfg.Server.Host, cfg.Server.Port, router)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err.Error())
			os.Exit(1)
		}
	}
}
