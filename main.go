package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patitas/config"
	"patitas/cron"
	"patitas/database"
	appointmentRepo "patitas/database/repository/appointment"
	productRepo "patitas/database/repository/product"
	purchaseRepo "patitas/database/repository/purchase"
	recordsRepo "patitas/database/repository/records"
	userRepoPkg "patitas/database/repository/user"
	"patitas/handlers"
	"patitas/routes"
	"patitas/services/booking"
	"patitas/services/catalog"
	"patitas/services/checkout"
	"patitas/services/tasks"
	"patitas/services/user"
	"patitas/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: avatar storage disabled: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	slotRepo := appointmentRepo.NewMongoAppointmentRepo()
	historyRepo := recordsRepo.NewMongoRecordRepo()
	catalogRepo := productRepo.NewMongoProductRepo()
	purchasesRepo := purchaseRepo.NewMongoPurchaseRepo()

	// reminder queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	reminderScheduler := &tasks.AsynqReminderScheduler{Client: asynqClient}
	cron.InitReminderWorker(userRepo)

	// services.
	tokenCache := &user.RedisTokenCache{Client: utils.GetAuthCacheClient()}
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		Purchases: purchasesRepo,
		Records:   historyRepo,
		Tokens:    tokenCache,
		Storage:   storageService,
	}
	if utils.FirebaseAuthClient != nil {
		userService.Verifier = &user.FirebaseVerifier{Client: utils.FirebaseAuthClient}
	}

	reservationService := &booking.DefaultReservationService{
		Repo:      slotRepo,
		Records:   historyRepo,
		Reminders: reminderScheduler,
		Clock:     booking.SystemClock,
	}
	sessionService := &booking.DefaultSessionService{
		Store:        booking.NewRedisSessionStore(utils.GetSessionCacheClient()),
		Reservations: reservationService,
		Repo:         slotRepo,
		Clock:        booking.SystemClock,
	}

	catalogService := &catalog.DefaultCatalogService{Repo: catalogRepo}
	checkoutService := &checkout.DefaultCheckoutService{
		Products:  catalogRepo,
		Purchases: purchasesRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		User:    &handlers.UserHandler{Service: userService},
		Store:   &handlers.StoreHandler{Catalog: catalogService, Checkout: checkoutService},
		Booking: &handlers.BookingHandler{Reservations: reservationService, Sessions: sessionService},
		Tokens:  tokenCache,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetAuthCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
