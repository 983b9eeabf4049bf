package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoepao-backend/internal/cache"
	"shoepao-backend/internal/config"
	"shoepao-backend/internal/database"
	"shoepao-backend/internal/handlers"
	"shoepao-backend/internal/repository"
	"shoepao-backend/internal/router"
	"shoepao-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Shoepao Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	conversationRepo := repository.NewConversationRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// ──── Step 5: Initialize Completion Service ────
	// Fails here, before any request is served, if no API key is configured.
	completionService, err := services.NewCompletionService(services.CompletionConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: cfg.OpenAITemperature,
		Timeout:     cfg.CompletionTimeout,
	})
	if err != nil {
		log.Fatalf("✗ Completion service initialization failed: %v", err)
	}
	log.Printf("✓ Completion service initialized (%s)", cfg.OpenAIModel)

	// ──── Initialize Services ────
	chatService := services.NewChatService(conversationRepo, messageRepo, completionService)
	conversationCache := cache.NewConversationCache(redisClient, cfg.ConversationCacheTTL)

	// ──── Initialize Handlers ────
	conversationHandler := handlers.NewConversationHandler(conversationRepo, messageRepo, chatService, conversationCache)
	messageHandler := handlers.NewMessageHandler(messageRepo, conversationRepo, conversationCache)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(conversationHandler, messageHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Shoepao Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
