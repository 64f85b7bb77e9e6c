// File: trilhas/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trilhas/config"
	"trilhas/database"
	scheduleRepo "trilhas/database/repository/schedule"
	trailRepo "trilhas/database/repository/trail"
	userRepoPkg "trilhas/database/repository/user"
	"trilhas/handlers"
	"trilhas/middleware"
	"trilhas/routes"
	"trilhas/services/session"
	"trilhas/services/user"
	"trilhas/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// The session cache is optional; without Redis every request verifies
	// its token with Firebase.
	if err := utils.InitAuthCache(); err != nil {
		logger.Warn("main: session cache disabled", zap.Error(err))
	}

	fb, err := utils.FirebaseInit(rootCtx, config.AppConfig.StoreDriver == config.StoreFirestore)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize firebase: %v", err)
	}

	store, err := database.OpenStore(fb.Firestore)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open %s store: %v", config.AppConfig.StoreDriver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("main: error closing store", zap.Error(err))
		}
	}()
	logger.Info("main: document store ready", zap.String("driver", config.AppConfig.StoreDriver))

	utils.StartHealthMonitor(rootCtx, store, utils.GetAuthCacheClient(), utils.HealthCheckInterval)

	// repositories.
	catalogRepo := trailRepo.NewStoreCatalogRepo(store, config.AppConfig.BannerCount)
	schedulesRepo := scheduleRepo.NewStoreScheduleRepo(store, catalogRepo,
		config.AppConfig.BannerCount, config.AppConfig.DenormalizeConcurrency, logger.Named("schedules"))
	userRepo := userRepoPkg.NewStoreUserRepo(store)

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger.Named("users"),
	}
	authenticator := session.NewAuthenticator(fb.Auth, utils.GetAuthCacheClient(),
		config.AppConfig.AuthCacheTTL, logger.Named("session"))

	// Assemble the handler bundle.
	userHandler := handlers.NewUserHandler(userService)
	userHandler.Sessions = authenticator
	handlerBundle := handlers.NewHandlerBundle(
		userHandler,
		handlers.NewTrailHandler(catalogRepo),
		handlers.NewScheduleHandler(schedulesRepo),
	)
	handlerBundle.Authenticator = authenticator
	handlerBundle.Roles = userService
	handlerBundle.MaxRequestsPerMin = config.AppConfig.MaxRequestsPerMin

	// Create the Gin router.
	router := gin.New()
	// Without trusted proxies c.ClientIP() is the socket peer.
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Sugar().Fatalf("main: invalid TRUSTED_PROXIES: %v", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLoggerMiddleware(logger))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
		// Request contexts derive from rootCtx so shutdown ends open streams.
		BaseContext: func(net.Listener) context.Context { return rootCtx },
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

	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
