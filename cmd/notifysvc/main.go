package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notifysvc/internal/audit"
	"notifysvc/internal/config"
	"notifysvc/internal/deliverylog"
	"notifysvc/internal/directory"
	"notifysvc/internal/event"
	"notifysvc/internal/failure"
	"notifysvc/internal/kafka"
	"notifysvc/internal/logger"
	"notifysvc/internal/mailer"
	"notifysvc/internal/queue"
	"notifysvc/internal/resolver"
	"notifysvc/internal/server"
	"notifysvc/internal/store"
	"notifysvc/internal/supervisor"
	"notifysvc/internal/worker"

	"github.com/jonboulle/clockwork"
)

func main() {
	logger.Init(config.IsDevelopment())
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	db := store.InitializeDB(cfg.DatabaseURL)
	defer db.Close()

	redisClient := store.InitRedisClient(ctx, cfg)
	defer redisClient.Close()

	emailQueue := queue.New(redisClient.Client, queue.EmailQueue, queue.RetryPolicy{
		MaxAttempts: cfg.QueueConfig.MaxAttempts,
		BaseDelay:   cfg.QueueConfig.BackoffBase,
	}, clock)

	trail := audit.New(cfg.AuditLogFile, clock)
	handler := event.NewHandler(emailQueue, trail)

	sup := supervisor.New(cfg.Supervisor, clock)
	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topics:  cfg.Topics,
		GroupID: cfg.GroupID,
	}, handler.Handle, sup.Conn())

	s := server.New(cfg.Port, sup.Conn())

	logger.Info().Msg("starting notification service on a port " + cfg.Port)

	go func() {
		logger.Info().Str("addr", s.ServerInstance.Addr).Msg("starting server")
		if err := s.ServerInstance.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failure.FailedToStartServerError.WithErr(err).LogFatal()
		}
	}()

	go func() {
		if err := sup.Run(ctx, consumer.Connect); err != nil {
			return
		}
		if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("kafka consumer exited")
		}
	}()

	go emailQueue.RunPromoter(ctx)

	if moved, err := emailQueue.RequeueOrphans(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to requeue orphaned jobs")
	} else if moved > 0 {
		logger.Info().Int("jobs", moved).Msg("requeued orphaned jobs")
	}

	dir := directory.New(db)
	res := resolver.New(dir, cfg.Denylist)
	smtpMailer := mailer.NewSMTP(cfg.SMTPConfig)
	logStore := deliverylog.New(db)

	pool := worker.NewPool(cfg.QueueConfig.Concurrency, emailQueue, res, smtpMailer, logStore)
	go pool.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := s.ServerInstance.Shutdown(shutdownCtx); err != nil {
		failure.ForcedShutdownServerError.WithErr(err).LogError()
	}

	cancel()
	consumer.Close()

	logger.Info().Msg("server stopped gracefully")
}
