// File: slotserve/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotserve/config"
	"slotserve/cron"
	"slotserve/database"
	appointmentRepo "slotserve/database/repository/appointment"
	vendorRepo "slotserve/database/repository/vendor"
	"slotserve/handlers"
	"slotserve/middleware"
	"slotserve/routes"
	"slotserve/scheduler"
	"slotserve/services/autocancel"
	"slotserve/services/cleanup"
	"slotserve/services/notification"
	"slotserve/services/reservation"
	"slotserve/services/slotlock"
	"slotserve/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	vendRepo := vendorRepo.NewMongoVendorRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Warnf("main: failed to ensure appointment indexes: %v", err)
	}

	// Slot lock table. The in-memory backend is only correct for a single
	// replica; multi-replica deployments must configure the redis backend.
	var lockTable slotlock.LockTable
	switch config.AppConfig.LockBackend {
	case "redis":
		lockTable = slotlock.NewRedisLockTable(utils.GetLockCacheClient())
		logger.Sugar().Info("main: using redis slot lock backend")
	default:
		lockTable = slotlock.NewMemoryLockTable()
		logger.Sugar().Info("main: using in-memory slot lock backend")
	}

	// Notification queue. The queue cache client backs the worker's redis
	// health monitor; asynq manages its own connection pool from the same
	// options.
	utils.InitQueueCache()
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewQueueDispatcher(asynqClient)
	cron.InitNoticeWorker(cron.LogNoticeSender{})

	// services.
	reservationService := &reservation.DefaultReservationService{
		Repo:       apptRepo,
		VendorRepo: vendRepo,
		HoldTTL:    config.AppConfig.LockTTL(),
	}

	gc := &cleanup.GarbageCollector{Locks: lockTable, Repo: apptRepo}
	reconciler := &cleanup.Reconciler{Repo: apptRepo}
	sweeper := autocancel.NewSweeper(apptRepo, vendRepo, dispatcher)

	// Background jobs.
	sched := scheduler.New(scheduler.BuildJobs(gc, reconciler, sweeper, config.AppConfig)...)
	if err := sched.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start job scheduler: %v", err)
	}

	// handlers.
	slotHandler := handlers.NewSlotHandler(lockTable, config.AppConfig.LockTTL())
	apptHandler := handlers.NewAppointmentHandler(reservationService)
	jobsHandler := handlers.NewJobsHandler(sched)

	// Register routes.
	routes.RegisterRoutes(router, slotHandler, apptHandler, jobsHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
