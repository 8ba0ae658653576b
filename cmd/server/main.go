package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeforge/internal/api"
	"codeforge/internal/app/service"
	"codeforge/internal/common/security"
	"codeforge/internal/domain/repository"
	"codeforge/internal/judge"
	"codeforge/internal/platform/cache"
	"codeforge/internal/platform/config"
	"codeforge/internal/platform/database"
	"codeforge/internal/platform/llm"
	"codeforge/internal/platform/logging"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Initialize Logging
	logging.Init()
	defer logging.Sync()
	log := zap.S()
	log.Info("configuration loaded")

	// 3. Initialize JWT
	security.InitJWT()

	// 4. Initialize Database
	database.Connect()
	defer database.Close()

	// 5. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	challengeRepo := repository.NewPgChallengeRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 7. External clients
	judgeClient := judge.NewClient(judge.Options{
		BaseURL:        config.AppConfig.JudgeAPIURL,
		APIKey:         config.AppConfig.JudgeAPIKey,
		RequestTimeout: config.AppConfig.JudgeRequestTimeout,
		PollAttempts:   config.AppConfig.JudgePollAttempts,
		PollInterval:   config.AppConfig.JudgePollInterval,
		CPUTimeLimitS:  config.AppConfig.JudgeCPUTimeLimitS,
		MemoryLimitKB:  config.AppConfig.JudgeMemoryLimitKB,
	})
	hintGenerator := llm.NewOpenAIClient(config.AppConfig.OpenAIKey, config.AppConfig.OpenAIModel)

	// 8. Initialize Services
	authService := service.NewAuthService(userRepo)
	challengeService := service.NewChallengeService(challengeRepo)
	leaderboardService := service.NewLeaderboardService(challengeRepo, submissionRepo, cache.RDB, config.AppConfig.LeaderboardCacheTTL)
	gradingService := service.NewGradingService(challengeRepo, submissionRepo, judgeClient, leaderboardService)
	hintService := service.NewHintService(challengeRepo, submissionRepo, hintGenerator)

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, challengeService, gradingService, hintService, leaderboardService)

	server := &http.Server{
		Addr:    ":" + config.AppConfig.APIPort,
		Handler: router,
		// Write timeout must outlast a full judge dispatch plus poll budget.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infow("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("could not listen", "port", config.AppConfig.APIPort, "err", err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server shutdown failed", "err", err)
	}

	log.Info("server stopped gracefully")
}
