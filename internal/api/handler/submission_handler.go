package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"codeforge/internal/api/middleware"
	"codeforge/internal/app/service"
	"codeforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	gradingService *service.GradingService
}

func NewSubmissionHandler(gs *service.GradingService) *SubmissionHandler {
	return &SubmissionHandler{gradingService: gs}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.grade)
}

// gradeErrorResponse carries the verdict alongside the error when grading
// succeeded but the submission record was lost.
type gradeErrorResponse struct {
	Error  string                 `json:"error"`
	Result *service.GradeResponse `json:"result,omitempty"`
}

func (h *SubmissionHandler) grade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.gradingService.Grade(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, common.ErrSubmissionNotRecorded) {
			// The user has a valid verdict; report the lost record distinctly
			// instead of dropping the result.
			common.RespondWithJSON(w, common.HTTPStatusFromError(err), gradeErrorResponse{
				Error:  err.Error(),
				Result: resp,
			})
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
