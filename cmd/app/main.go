package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prasetyowira/kerjaku/api"
	"github.com/prasetyowira/kerjaku/config"
	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/auth"
	"github.com/prasetyowira/kerjaku/domain/draft"
	"github.com/prasetyowira/kerjaku/domain/errhandler"
	"github.com/prasetyowira/kerjaku/domain/job"
	"github.com/prasetyowira/kerjaku/domain/location"
	"github.com/prasetyowira/kerjaku/domain/rating"
	"github.com/prasetyowira/kerjaku/domain/reconcile"
	"github.com/prasetyowira/kerjaku/domain/stats"
	"github.com/prasetyowira/kerjaku/domain/user"
	"github.com/prasetyowira/kerjaku/infrastructure/cachedb"
	"github.com/prasetyowira/kerjaku/infrastructure/connectivity"
	appLogger "github.com/prasetyowira/kerjaku/infrastructure/logger"
	"github.com/prasetyowira/kerjaku/infrastructure/qrcode"
	"github.com/prasetyowira/kerjaku/infrastructure/remote"
	"github.com/prasetyowira/kerjaku/infrastructure/telemetry"
)

func main() {
	// Load configuration from environment variables and config file
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on environment
	isProduction := cfg.LogLevel == "INFO"
	appLogger.Initialize(isProduction)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataDBPath:      cfg.CacheDBPath,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	// Cache database
	store, err := cachedb.NewStore(cfg.CacheDBPath)
	if err != nil {
		appLogger.Fatal(constant.MsgFailedToInitCache, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.ErrorInfo{
				Code:    constant.ErrCodeCache,
				Message: err.Error(),
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.CacheDBPath,
			},
		})
	}
	defer store.Close()

	// Remote row API client and OTP provider
	client := remote.NewClient(cfg.RemoteURL, cfg.AnonKey, 30*time.Second)
	authProvider := remote.NewAuth(client)
	client.WithTokenSource(authProvider)

	// Connectivity probe and reconcile engine
	probe := connectivity.NewProbe(cfg.ProbeAddr, time.Duration(cfg.ProbeTimeout)*time.Millisecond)
	engine := reconcile.NewEngine(probe)

	// Repositories
	jobs := job.NewRepository(store.Jobs(), remote.NewJobs(client), engine)
	users := user.NewRepository(store.Users(), remote.NewUsers(client), engine)
	locations := location.NewRepository(store.Locations(), remote.NewLocations(client), engine)
	ratings := rating.NewRepository(store.Ratings(), remote.NewRatings(client), engine)
	statistics := stats.NewRepository(store.Statistics(), remote.NewStats(client), engine)
	drafts := draft.NewRepository(store.Drafts())

	authService := auth.NewService(authProvider, users, authProvider)

	// Error handler with telemetry sinks
	errs := errhandler.NewHandler(telemetry.NewAnalytics(), telemetry.NewCrashReporter())

	// Create API handler and router
	handler := api.NewHandler(
		jobs,
		locations,
		ratings,
		statistics,
		drafts,
		authService,
		errs,
		store,
		qrcode.NewGenerator(cfg.BaseURL),
	)
	router := api.NewRouter(handler, cfg.AuthUser, cfg.AuthPass)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.ErrorInfo{
					Code:    constant.ErrCodeUnexpected,
					Message: err.Error(),
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.ErrorInfo{
				Code:    constant.ErrCodeUnexpected,
				Message: err.Error(),
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
