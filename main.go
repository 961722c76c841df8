// File: photostudio/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"photostudio/broker"
	"photostudio/config"
	"photostudio/cron"
	"photostudio/database"
	"photostudio/database/repository"
	"photostudio/handlers"
	"photostudio/middleware"
	"photostudio/models"
	"photostudio/routes"
	"photostudio/services/booking"
	"photostudio/services/integration"
	"photostudio/services/notification"
	"photostudio/services/payment"
	"photostudio/services/payment/gateway"
	"photostudio/services/tasks"
	"photostudio/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	zap.ReplaceGlobals(logger)

	// Repositories: in-memory by default, MongoDB when selected.
	var bookingRepo repository.BookingRepository
	var paymentRepo repository.PaymentRepository
	if config.AppConfig.StorageBackend == "mongo" {
		database.InitDB()
		bookingRepo = repository.NewMongoBookingRepo(database.Database())
		paymentRepo = repository.NewMongoPaymentRepo(database.Database())
	} else {
		bookingRepo = repository.NewMemoryBookingRepo()
		paymentRepo = repository.NewMemoryPaymentRepo()
	}
	hallRepo := repository.NewMemoryHallRepo(repository.DefaultHalls())

	if config.AppConfig.CacheEnabled {
		utils.InitCache()
	}
	utils.StartHealthMonitor(healthRedisClients(), database.MongoClient)

	// Broker: HTTP delivery for external subscribers, local:// for the
	// in-process consumers.
	eventBroker := broker.New(logger.Named("broker"))
	transport := broker.NewConsumerTransport(&broker.HTTPTransport{
		Client: &http.Client{Timeout: time.Duration(config.AppConfig.DeliveryTimeoutMS) * time.Millisecond},
	})
	dispatcher := broker.NewDispatcher(
		eventBroker,
		transport,
		time.Duration(config.AppConfig.DispatchIntervalMS)*time.Millisecond,
		time.Duration(config.AppConfig.DeliveryTimeoutMS)*time.Millisecond,
		logger.Named("dispatcher"),
	)

	// Services.
	bookingService := &booking.DefaultBookingService{
		Repo:   bookingRepo,
		Halls:  hallRepo,
		Pricer: booking.NewHourlyRatePricer(hallRepo),
		Events: eventBroker,
		Logger: logger.Named("booking"),
	}

	gwEnv := gateway.ParseEnvironment(config.AppConfig.PaymentEnv)
	gwConfig := gateway.Config{
		YooKassaShopID:    config.AppConfig.YooKassaShopID,
		YooKassaSecretKey: config.AppConfig.YooKassaSecretKey,
		StripeKey:         config.AppConfig.StripeKey,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:     paymentRepo,
		Bookings: bookingService,
		Gateways: func(method string) (gateway.Gateway, error) {
			return gateway.ForMethod(method, gwEnv, gwConfig)
		},
		Env:    gwEnv,
		Events: eventBroker,
		Logger: logger.Named("payment"),
	}

	emailSender := &notification.LogSender{Logger: logger.Named("email")}
	var scheduler notification.ReminderScheduler
	if config.AppConfig.RemindersEnabled {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		})
		defer asynqClient.Close()
		scheduler = &tasks.Scheduler{Client: asynqClient}
		cron.InitReminderWorker(emailSender)
	}
	notificationService := &notification.DefaultNotificationService{
		Bookings:     bookingService,
		Email:        emailSender,
		SMS:          emailSender,
		Scheduler:    scheduler,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
		Logger:       logger.Named("notification"),
	}
	integrationService := &integration.DefaultIntegrationService{
		Logger: logger.Named("integration"),
	}

	transport.Register(notification.SubscriberID, notificationService)
	transport.Register(integration.SubscriberID, integrationService)
	seedSubscribers(eventBroker)

	dispatchCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Run(dispatchCtx)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, utils.GetCacheClient(), logger.Named("http")),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Broker:   handlers.NewBrokerHandler(eventBroker),
		Health:   handlers.NewHealthHandler(eventBroker),
		Consumer: &handlers.ConsumerHandler{
			Notifications: notificationService,
			Integration:   integrationService,
			Halls:         hallRepo,
		},
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown: stop taking requests, then stop the dispatcher.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
	stopDispatcher()
}

// seedSubscribers installs the default subscriber table. Further subscribers
// can join at runtime through POST /broker/subscribe.
func seedSubscribers(b *broker.Broker) {
	both := []string{
		models.EventBookingCreated,
		models.EventBookingConfirmed,
		models.EventBookingCancelled,
		models.EventPaymentSucceeded,
	}
	for _, eventType := range both {
		b.Subscribe(eventType, integration.SubscriberID, broker.LocalScheme+integration.SubscriberID)
		b.Subscribe(eventType, notification.SubscriberID, broker.LocalScheme+notification.SubscriberID)
	}
	b.Subscribe(models.EventPaymentFailed, integration.SubscriberID, broker.LocalScheme+integration.SubscriberID)
}

// healthRedisClients lists the redis clients the health monitor should ping.
func healthRedisClients() []*redis.Client {
	var clients []*redis.Client
	if c := utils.GetCacheClient(); c != nil {
		clients = append(clients, c)
	}
	return clients
}
