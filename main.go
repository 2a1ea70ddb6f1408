package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/config"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/dao"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/handlers"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/lock"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/scheduler"
	"github.com/companieshouse/payments.gateway.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

// shutdownTimeout bounds how long in-flight requests and job runs are given
// to finish once a shutdown signal is received
const shutdownTimeout = 30 * time.Second

func main() {
	log.Namespace = "payments.gateway.ch.gov.uk"

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err), nil)
		return
	}

	schedule, err := cfg.Schedule()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err), nil)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store dao.DAO = dao.NewMemoryDAO()
	if cfg.MongoDBURL != "" {
		mongoService := dao.NewMongoService(cfg)
		if err = mongoService.EnsureIndexes(ctx); err != nil {
			log.Error(fmt.Errorf("error creating mongodb indexes: %s. Exiting", err), nil)
			return
		}
		store = mongoService
	} else {
		log.Info("no mongodb url configured, records are kept in memory")
	}

	var publisher service.RefundEventPublisher
	if cfg.KafkaEnabled() {
		kafkaPublisher, err := service.NewKafkaRefundPublisher(cfg)
		if err != nil {
			log.Error(fmt.Errorf("error creating refund publisher: %s. Exiting", err), nil)
			return
		}
		publisher = kafkaPublisher
	}

	var locker lock.Locker
	if cfg.RedisURL != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.RedisURL)
		if err != nil {
			log.Error(fmt.Errorf("error creating job locker: %s. Exiting", err), nil)
			return
		}
		defer redisLocker.Close()
		locker = redisLocker
	}

	refundManager := service.NewRefundLifecycleManager(store, publisher, schedule.RefundAgeThreshold)

	webhookEngine := &service.WebhookDeliveryEngine{
		DAO:    store,
		Sender: service.NewHTTPSender(cfg.WebhookSigningSecret),
		Backoff: service.BackoffPolicy{
			Base:  schedule.WebhookBackoffBase,
			Floor: schedule.WebhookBackoffFloor,
			Cap:   schedule.WebhookBackoffCap,
		},
		MaxAttempts:     cfg.WebhookMaxAttempts,
		DeliveryTimeout: schedule.WebhookDeliveryTimeout,
		Concurrency:     cfg.WebhookConcurrency,
	}

	jobs := scheduler.New(locker)
	for _, job := range []scheduler.Job{
		{Name: service.RefundJobName, Interval: schedule.RefundTickInterval, Run: refundManager.ProcessDueRefunds},
		{Name: service.WebhookJobName, Interval: schedule.WebhookTickInterval, Run: webhookEngine.ProcessRetries},
	} {
		if err = jobs.Register(job); err != nil {
			log.Error(fmt.Errorf("error registering job: %s. Exiting", err), nil)
			return
		}
	}

	router := mux.NewRouter()
	handlers.Register(router, jobs)

	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err = jobs.Start(ctx); err != nil {
		log.Error(fmt.Errorf("error starting scheduler: %s. Exiting", err), nil)
		return
	}

	go func() {
		log.Info("Starting payments.gateway.ch.gov.uk service", log.Data{"bind_addr": cfg.BindAddr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Errorf("error shutting down http server: [%v]", err))
	}
	jobs.Stop()
	if err = dao.DisconnectMongo(shutdownCtx); err != nil {
		log.Error(fmt.Errorf("error disconnecting from mongodb: [%v]", err))
	}

	log.Info("Exiting payments.gateway.ch.gov.uk service")
}
