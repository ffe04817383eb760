package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"matchday-backend-go/internal/api"
	"matchday-backend-go/internal/config"
	"matchday-backend-go/internal/core"
	"matchday-backend-go/internal/db"
	"matchday-backend-go/internal/middleware"
	"matchday-backend-go/internal/storage"
)

func main() {
	// .env is optional; in deployed environments everything comes from real
	// environment variables.
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("application configuration loaded")

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.InitFirebase(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Firestore.Close()
	zapLogger.Info("Firebase Admin SDK initialized",
		zap.String("projectId", appConfig.FirebaseProjectID),
		zap.String("bucket", appConfig.StorageBucket),
	)

	// Repositories.
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	tournamentRepo := db.NewFirestoreTournamentRepository(clients.Firestore)
	matchRepo := db.NewFirestoreMatchRepository(clients.Firestore)
	voteRepo := db.NewFirestoreVoteRepository(clients.Firestore)
	selectionRepo := db.NewFirestoreSelectionRepository(clients.Firestore)
	paymentRepo := db.NewFirestorePaymentRepository(clients.Firestore)
	activityRepo := db.NewFirestoreActivityRepository(clients.Firestore)

	// Services.
	activityService := core.NewActivityService(activityRepo, zapLogger)
	userService := core.NewUserService(userRepo, clients.Auth, activityService, zapLogger)
	tournamentService := core.NewTournamentService(tournamentRepo)
	matchService := core.NewMatchService(matchRepo, tournamentRepo)
	voteService := core.NewVoteService(voteRepo, matchRepo)
	selectionService := core.NewSelectionService(selectionRepo, matchRepo, voteRepo, activityService)
	paymentService := core.NewPaymentService(paymentRepo, matchRepo, activityService)
	uploader := storage.NewProofUploader(clients.Storage, time.Duration(appConfig.SignedURLTTLHours)*time.Hour)
	zapLogger.Info("repositories and services initialized")

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	authMW := middleware.NewAuthMiddleware(clients.Auth)
	api.SetupRoutes(
		router,
		zapLogger,
		authMW,
		userService,
		tournamentService,
		matchService,
		voteService,
		selectionService,
		paymentService,
		uploader,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("server exited gracefully")
}
