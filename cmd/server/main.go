package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/config"
	"github.com/Skotchmaster/house_help/internal/es"
	"github.com/Skotchmaster/house_help/internal/httpserver"
	"github.com/Skotchmaster/house_help/internal/idp"
	"github.com/Skotchmaster/house_help/internal/logging"
	"github.com/Skotchmaster/house_help/internal/mykafka"
	"github.com/Skotchmaster/house_help/internal/repo"
	"github.com/Skotchmaster/house_help/internal/service"
	"github.com/Skotchmaster/house_help/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	gormRepo := repo.GormRepo{DB: db}

	var sender sms.Sender = sms.ConsoleSender{}
	if cfg.SMSProvider == "twilio" {
		sender = sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	var producer *mykafka.Producer
	if cfg.KafkaAddress != "" {
		producer = mykafka.NewProducer(cfg.KafkaAddress)
		defer producer.Close()
	}

	workerSvc := &service.WorkerService{Repo: gormRepo}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Error("es_init_failed", "error", err)
		} else {
			workerSvc.ES = client
		}
	}

	otpSvc := &service.OTPService{
		Repo:       gormRepo,
		Sender:     sender,
		TTL:        time.Duration(cfg.OTPTTLMin) * time.Minute,
		RateWindow: time.Duration(cfg.OTPRateWindowMin) * time.Minute,
		RateMax:    cfg.OTPRateMax,
	}
	tokenSvc := &service.TokenService{
		Repo:       gormRepo,
		Secret:     cfg.JWTSecret,
		AccessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
	}
	identitySvc := &service.IdentityService{
		Repo: gormRepo,
		IDP:  idp.NewTokenVerifier(cfg.IDPSecret),
	}
	unlockSvc := &service.UnlockService{Repo: gormRepo, Tariff: cfg.UnlockTariff}
	reviewSvc := &service.ReviewService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			OTP:      otpSvc,
			Identity: identitySvc,
			Tokens:   tokenSvc,
			Repo:     gormRepo,
			Producer: producer,
		},
		Workers: &httpserver.WorkerHTTP{
			Svc:      workerSvc,
			Unlocks:  unlockSvc,
			Reviews:  reviewSvc,
			Repo:     gormRepo,
			ES:       workerSvc.ES,
			Producer: producer,
		},
		Unlocks: &httpserver.UnlockHTTP{
			Svc:      unlockSvc,
			Repo:     gormRepo,
			Producer: producer,
		},
		Reviews: &httpserver.ReviewHTTP{
			Svc:      reviewSvc,
			Producer: producer,
		},
		Users:     &httpserver.UserHTTP{Repo: gormRepo},
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Error("echo_start_failed", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("server_started", "port", cfg.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo_shutdown_failed", "error", err)
	}
}
