package handler

import (
	"encoding/json"
	"net/http"

	"codeforge/internal/api/middleware"
	"codeforge/internal/app/service"
	"codeforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	challengeService   *service.ChallengeService
	leaderboardService *service.LeaderboardService
	gradingService     *service.GradingService
}

func NewChallengeHandler(
	cs *service.ChallengeService,
	ls *service.LeaderboardService,
	gs *service.GradingService,
) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs, leaderboardService: ls, gradingService: gs}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{slug}", h.get)
	r.Get("/{slug}/leaderboard", h.leaderboard)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/{slug}/submissions", h.submissions)

		authed.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Post("/", h.create)
			admin.Put("/{slug}", h.update)
			admin.Delete("/{slug}", h.delete)
		})
	})
}

func (h *ChallengeHandler) list(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) get(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *ChallengeHandler) submissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	all := r.URL.Query().Get("all") == "true"
	subs, err := h.gradingService.ListSubmissions(r.Context(), chi.URLParam(r, "slug"), userID, role, all)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}

func (h *ChallengeHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, challenge)
}

func (h *ChallengeHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.Update(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.challengeService.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
