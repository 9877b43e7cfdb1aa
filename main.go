// File: glamsalon/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glamsalon/config"
	"glamsalon/database"
	"glamsalon/database/repository"
	"glamsalon/handlers"
	"glamsalon/middleware"
	"glamsalon/routes"
	"glamsalon/services/conversation"
	ai "glamsalon/services/intelligence"
	"glamsalon/services/notification"
	"glamsalon/services/retrieval"
	"glamsalon/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitChatCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Embedding + generation capabilities. Without a Gemini key the
	// assistant still runs: rule-based replies, retrieval disabled.
	var (
		embedder  retrieval.Embedder
		generator ai.Generator
	)
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		embedder = gemini
		generator = gemini
	} else {
		logger.Sugar().Warn("main: no GEMINI_API_KEY set, using rule-based replies without retrieval")
		generator = ai.RuleBasedGenerator{}
		embedder = nil
	}

	// Retrieval pipeline.
	chunker := retrieval.NewDocumentChunker(config.AppConfig.ChunkSize, config.AppConfig.ChunkOverlap)
	index := retrieval.NewEmbeddingIndex(config.AppConfig.VectorStoreDir, embedder)
	retrievalSvc := retrieval.NewRetrievalService(embedder, index, chunker, config.AppConfig.TopK, logger)
	if embedder != nil {
		if err := retrievalSvc.Bootstrap(); err != nil {
			logger.Sugar().Fatalf("main: failed to load vector store: %v", err)
		}
	}

	// Repositories and services.
	bookingRepo := repository.NewMongoBookingRepo()
	notifier := notification.NewEmailNotificationService(logger)
	sessions := conversation.NewSessionManager(conversation.NewFieldExtractor())
	history := ai.NewRedisHistoryStore(
		utils.GetChatCacheClient(),
		utils.ChatHistoryTTL,
		config.AppConfig.MaxConversationHistory,
	)

	aiSvc := &ai.DefaultAIService{
		Sessions:  sessions,
		Validator: conversation.NewFieldValidator(),
		Retrieval: retrievalSvc,
		Generator: generator,
		History:   history,
		Bookings:  bookingRepo,
		Notifier:  notifier,
		Logger:    logger,
	}

	// Handlers.
	chatHandler := handlers.NewChatHandler(aiSvc)
	docHandler := handlers.NewDocumentHandler(retrievalSvc)
	adminHandler := handlers.NewAdminHandler(bookingRepo)

	routes.RegisterRoutes(router, chatHandler, docHandler, adminHandler)

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
