package api

import (
	"net/http"
	"time"

	"codeforge/internal/api/handler"
	"codeforge/internal/app/service"
	"codeforge/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	challengeService *service.ChallengeService,
	gradingService *service.GradingService,
	hintService *service.HintService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies token, puts claims in context. Looks for "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		challengeHandler := handler.NewChallengeHandler(challengeService, leaderboardService, gradingService)
		v1.Route("/challenges", challengeHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(gradingService)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		hintHandler := handler.NewHintHandler(hintService)
		v1.Route("/hints", hintHandler.RegisterRoutes)
	})

	return r
}
