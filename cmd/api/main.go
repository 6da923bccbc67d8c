package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allinone-hr/wfh-backend-go/internal/config"
	appHTTP "github.com/allinone-hr/wfh-backend-go/internal/handler/http"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/cron"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/database"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/jwt"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/sse"
	"github.com/allinone-hr/wfh-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/allinone-hr/wfh-backend-go/internal/service/auth"
	delegationService "github.com/allinone-hr/wfh-backend-go/internal/service/delegation"
	notificationService "github.com/allinone-hr/wfh-backend-go/internal/service/notification"
	wfhService "github.com/allinone-hr/wfh-backend-go/internal/service/wfh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	wfhRequestRepo := postgresql.NewWFHRequestRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	delegationRepo := postgresql.NewDelegationRepository(db)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	notificationSvc := notificationService.NewService(hub, wfhRequestRepo, delegationRepo)
	wfhEngine := wfhService.NewEngine(db, wfhRequestRepo, auditRepo, employeeRepo, notificationSvc)
	delegationSvc := delegationService.NewService(db, delegationRepo, employeeRepo, notificationSvc)
	authSvc := serviceAuth.NewService(employeeRepo, JWTService)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	wfhHandler := appHTTP.NewWFHHandler(wfhEngine)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	delegationHandler := appHTTP.NewDelegationHandler(delegationSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, JWTService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		wfhHandler,
		employeeHandler,
		delegationHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewWFHJobs(wfhEngine, cfg.Sweep.AutoRejectInterval).RegisterJobs(scheduler)
	cron.NewDelegationJobs(delegationSvc, cfg.Sweep.DelegationInterval).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server running", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}
}
