package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"audiobio/internal/config"
	"audiobio/internal/infra/handlers"
	"audiobio/internal/infra/logger"
	"audiobio/internal/infra/provider"
	"audiobio/internal/infra/repository"
	"audiobio/internal/infra/routes"
	"audiobio/internal/infra/services"
	"audiobio/internal/middleware"
	client "audiobio/internal/pkg"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	mongoClient := client.MongoClient()
	audioBioDB := mongoClient.Database("AudioBio_db")

	userRepo := repository.NewMongoUserRepository(audioBioDB)

	secretKey := config.GetEnv("AUDIOBIO_SECRET_AUTH_KEY")
	tokenTTL := time.Duration(config.GetEnvInt("JWT_EXPIRATION_MINUTES", 30)) * time.Minute
	authService := services.NewAuthService(secretKey, tokenTTL, log)

	journalService := services.NewJournalService(userRepo, log)

	recordingStorage, err := provider.NewS3RecordingStorage(ctx, log)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to initialize recording storage: %v", err))
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}
	transcriber := services.NewWhisperTranscriptionService(log, httpClient)

	authHandlers := handlers.NewAuthHandlers(log, userRepo, authService)
	journalHandlers := handlers.NewJournalHandlers(log, journalService, recordingStorage, transcriber)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(
		router,
		authHandlers,
		journalHandlers,
		middleware.AuthMiddleware(log, authService, userRepo),
	)

	routes.Init()

	port := config.GetEnvDefault("PORT", "8000")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
