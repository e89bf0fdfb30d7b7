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
	"time"

	"currency-converter/internal/adapter/exchangerate"
	"currency-converter/internal/adapter/prefsfile"
	"currency-converter/internal/entity"
	"currency-converter/internal/handler"
	"currency-converter/internal/service"
	"currency-converter/internal/usecase"
	"currency-converter/pkg/config"
	"currency-converter/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrMissingCredential is returned when no provider API key is stored in the
// preferences and none is supplied through configuration. Surfaced as a
// startup failure instead of exiting from inside the wiring code.
var ErrMissingCredential = errors.New("no provider API key configured")

// resolveCredential enforces the startup precondition that a provider API
// key exists. The stored key wins; a key from config/env seeds the
// preferences once and is persisted for later runs.
func resolveCredential(prefs *entity.Preferences, store prefsfile.PreferencesStore, configKey string, log *logrus.Logger) error {
	if prefs.HasCredential() {
		return nil
	}
	if configKey == "" {
		return ErrMissingCredential
	}

	prefs.SetAPIKey(configKey)
	if err := store.Save(prefs); err != nil {
		log.Errorf("Failed to persist provider API key: %v", err)
	}
	log.Info("Stored provider API key from configuration")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(cfg.Log.Level)

	log.Info("Starting app...")

	prefsStore := prefsfile.NewStore(cfg.Prefs.Path, log)
	prefs := prefsStore.Load()
	log.Info("Loaded user preferences")

	if err := resolveCredential(prefs, prefsStore, cfg.Provider.APIKey, log); err != nil {
		return err
	}

	providerClient := exchangerate.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.ReferenceCurrency,
		cfg.ProviderTimeout(),
		log,
	)
	log.Info("Initialized rate provider client")

	rateService := service.NewRateService(providerClient, prefs.APIKey, log)
	log.Info("Initialized service layer")

	converterUsecase := usecase.NewConverter(rateService, prefsStore, prefs, log)
	log.Info("Initialized usecase layer")

	converterHandler := handler.NewConverterHandler(converterUsecase, log)

	// failed initial refresh is not fatal: conversions report rates
	// unavailable until a later refresh succeeds
	if err := rateService.Refresh(ctx); err != nil {
		log.Errorf("Initial rate refresh failed: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	converterHandler.Register(r)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Refresh.Auto {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Refresh.Cron, func() {
			log.Info("Auto refreshing rates...")
			if err := rateService.Refresh(gctx); err != nil {
				log.Errorf("Scheduled rate refresh failed: %v", err)
			}
		}); err != nil {
			return fmt.Errorf("add refresh schedule %q: %w", cfg.Refresh.Cron, err)
		}

		g.Go(func() error {
			scheduler.Start()
			log.Infof("Rate refresh scheduled with spec %q", cfg.Refresh.Cron)
			<-gctx.Done()
			stopCtx := scheduler.Stop()
			<-stopCtx.Done()
			log.Info("Scheduler stopped")
			return nil
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	g.Go(func() error {
		log.Infof("Server starting on port %s...", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Got shutdown signal...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("Server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Gracefully shutdowned")
	return nil
}
