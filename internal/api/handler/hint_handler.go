package handler

import (
	"encoding/json"
	"net/http"

	"codeforge/internal/api/middleware"
	"codeforge/internal/app/service"
	"codeforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type HintHandler struct {
	hintService *service.HintService
}

func NewHintHandler(hs *service.HintService) *HintHandler {
	return &HintHandler{hintService: hs}
}

func (h *HintHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.requestHint)
}

type hintRequest struct {
	ChallengeSlug string `json:"challenge_slug"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

func (h *HintHandler) requestHint(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req hintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	hint, err := h.hintService.RequestHint(r.Context(), userID, req.ChallengeSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, hintResponse{Hint: hint})
}
