// Copyright 2026 The TaskEase Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskease/taskease/internal/assistant"
	"github.com/taskease/taskease/internal/audit"
	"github.com/taskease/taskease/internal/chat"
	"github.com/taskease/taskease/internal/config"
	"github.com/taskease/taskease/internal/identity"
	"github.com/taskease/taskease/internal/interpret"
	"github.com/taskease/taskease/internal/notify"
	"github.com/taskease/taskease/internal/observability/logger"
	"github.com/taskease/taskease/internal/observability/metrics"
	"github.com/taskease/taskease/internal/observability/tracing"
	"github.com/taskease/taskease/internal/reminder"
	"github.com/taskease/taskease/internal/store/postgres"
	"github.com/taskease/taskease/internal/task"
	"github.com/taskease/taskease/internal/tenant"
	transportHTTP "github.com/taskease/taskease/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting taskease server")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	_, err = metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
	}

	// Initialize database
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)

	// Initialize helpers
	auditLogger := audit.NewSlogLogger()
	passwordHasher := identity.NewPasswordHasher(
		cfg.Security.Argon2Memory,
		cfg.Security.Argon2Iterations,
		cfg.Security.Argon2Parallelism,
		cfg.Security.Argon2SaltLength,
		cfg.Security.Argon2KeyLength,
	)
	tokenIssuer := identity.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.JWTLifetime)

	// Initialize services
	identityService := identity.NewService(userRepo, passwordHasher, tokenIssuer, auditLogger)
	tenantService := tenant.NewService(tenantRepo, nil)
	taskService := task.NewService(
		taskRepo,
		interpret.NewDateTimeExtractor(),
		interpret.InferPriority,
		auditLogger,
		nil,
	)

	// The completion collaborator is optional. Without an API key the chat
	// fallback still answers canned intents and reports everything else as
	// unavailable.
	var completer assistant.Completer
	if cfg.Assistant.APIKey != "" {
		gemini, err := assistant.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.Timeout)
		if err != nil {
			slog.Error("failed to initialize completion client", logger.Error(err))
			os.Exit(1)
		}
		completer = gemini
	} else {
		slog.Warn("GEMINI_API_KEY not set, chat fallback limited to canned intents")
	}

	chatService := chat.NewService(
		interpret.NewClassifier(),
		taskService,
		chat.NewFallback(completer, nil),
		nil,
	)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(identityService, taskService, chatService)
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start reminder scheduler
	var scheduler *reminder.Scheduler
	if cfg.Scheduler.Enabled {
		mailer, err := notify.NewMailer(notify.MailerConfig{
			Host:       cfg.Mailer.Host,
			Port:       cfg.Mailer.Port,
			Username:   cfg.Mailer.Username,
			Password:   cfg.Mailer.Password,
			SenderName: cfg.Mailer.SenderName,
			SenderAddr: cfg.Mailer.SenderAddr,
		})
		if err != nil {
			slog.Error("failed to initialize mailer, reminder scheduler disabled", logger.Error(err))
		} else {
			scheduler = reminder.NewScheduler(
				tenantService,
				reminder.NewIndex(taskRepo),
				mailer,
				identityService,
				auditLogger,
				nil,
			)
			go scheduler.Run(ctx, reminder.NewTimeTicker(cfg.Scheduler.TickInterval))
		}
	} else {
		slog.Info("reminder scheduler disabled by configuration")
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// The scheduler stops first so no dispatch is in flight while the
	// database pool is being torn down.
	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Applying initial schema...")
	if err := db.Migrate(ctx, postgres.InitialSchema); err != nil {
		return err
	}
	fmt.Println("Migration successful.")
	return nil
}
