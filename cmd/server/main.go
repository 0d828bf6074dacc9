package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/config"
	"github.com/mamadbah2/nutriwatch/internal/repository/memory"
	"github.com/mamadbah2/nutriwatch/internal/repository/mongodb"
	"github.com/mamadbah2/nutriwatch/internal/repository/sheets"
	"github.com/mamadbah2/nutriwatch/internal/scheduler"
	"github.com/mamadbah2/nutriwatch/internal/server/handlers"
	"github.com/mamadbah2/nutriwatch/internal/server/router"
	commandsvc "github.com/mamadbah2/nutriwatch/internal/service/commands"
	reportingsvc "github.com/mamadbah2/nutriwatch/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/nutriwatch/internal/service/whatsapp"
	"github.com/mamadbah2/nutriwatch/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/nutriwatch/pkg/clients/whatsapp"
	"github.com/mamadbah2/nutriwatch/pkg/logger"
)

var (
	_ reportingsvc.SheetWriter   = (*sheets.GoogleSheetRepository)(nil)
	_ reportingsvc.ReportArchive = (*mongodb.MongoDBRepository)(nil)
	_ reportingsvc.Narrator      = (*anthropic.Client)(nil)
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := memory.NewStore()
	if cfg.Seed.Records > 0 {
		rng := memory.NewSeededRand(cfg.Seed.Value)
		store.Load(memory.GenerateMockRecords(rng, cfg.Seed.Records, time.Now()))
		baseLogger.Info("mock records loaded", zap.Int("count", store.Len()))
	}

	var reportingOpts []reportingsvc.Option

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingOpts = append(reportingOpts, reportingsvc.WithSheets(sheetsRepo))
	} else {
		baseLogger.Warn("google sheets not configured, report export limited to http responses")
	}

	if cfg.MongoDB.Enabled() {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportingOpts = append(reportingOpts, reportingsvc.WithArchive(mongoRepo))
	} else {
		baseLogger.Warn("mongodb not configured, report archive disabled")
	}

	if cfg.AI.AnthropicKey != "" {
		reportingOpts = append(reportingOpts, reportingsvc.WithNarrator(anthropic.NewClient(cfg.AI.AnthropicKey)))
		baseLogger.Info("anthropic report narratives enabled")
	}

	reportingSvc := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"), reportingOpts...)
	commandDispatcher := commandsvc.NewService(store, reportingSvc, baseLogger.Named("svc.commands"))

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp not configured, field entry and report delivery disabled")
	}
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))

	dashboardHandler := handlers.NewDashboardHandler(reportingSvc, store, baseLogger.Named("handlers.dashboard"))
	webhookHandler := handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(dashboardHandler, webhookHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
