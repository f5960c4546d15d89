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

	"github.com/joho/godotenv"
	"github.com/waza/waitlist-api/internal/config"
	"github.com/waza/waitlist-api/internal/infrastructure/dynamo"
	"github.com/waza/waitlist-api/internal/infrastructure/smtp"
	snsinfra "github.com/waza/waitlist-api/internal/infrastructure/sns"
	transporthttp "github.com/waza/waitlist-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS ops notifier (optional — skipped when no topic is configured).
	var notifier snsinfra.Notifier
	if cfg.SNSTopicARN != "" {
		if n, err := snsinfra.NewNotifier(cfg); err == nil {
			notifier = n
		} else {
			log.Printf("WARN: SNS notifier not available: %v", err)
		}
	}

	deps := &transporthttp.Deps{
		CodeRepo:       dynamo.NewCodeRepo(dynamoClient, cfg.DynamoTables.VerificationCodes),
		TokenRepo:      dynamo.NewTokenRepo(dynamoClient, cfg.DynamoTables.VerificationTokens),
		SubmissionRepo: dynamo.NewSubmissionRepo(dynamoClient, cfg.DynamoTables.Submissions),
		AdminTokenRepo: dynamo.NewAdminTokenRepo(dynamoClient, cfg.DynamoTables.AdminTokens),
		Mailer:         mailer,
		Notifier:       notifier,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
