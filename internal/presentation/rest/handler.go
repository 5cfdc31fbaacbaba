// Package rest exposes the loan workflow over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/usecase"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/infrastructure/metrics"
)

// chatFallback is the demo-safety reply: the chat endpoint never
// surfaces a 5xx to the frontend.
var chatFallback = dto.ChatResponse{
	Reply:             "I apologize, but I encountered an issue processing your request. Please try again.",
	Stage:             "sales",
	ActiveAgent:       "SalesAgent",
	ApplicationStatus: "Initiated",
}

// Handler bundles the use cases behind the public HTTP surface.
type Handler struct {
	chat         *usecase.ProcessMessage
	verify       *usecase.SubmitVerification
	sessions     *usecase.SessionAdmin
	applications *usecase.Applications
	authenticate *usecase.Authenticate
	workflow     *metrics.Workflow
	logger       *slog.Logger
}

func NewHandler(
	chat *usecase.ProcessMessage,
	verify *usecase.SubmitVerification,
	sessions *usecase.SessionAdmin,
	applications *usecase.Applications,
	authenticate *usecase.Authenticate,
	workflow *metrics.Workflow,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		chat:         chat,
		verify:       verify,
		sessions:     sessions,
		applications: applications,
		authenticate: authenticate,
		workflow:     workflow,
		logger:       logger,
	}
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.chat.Execute(r.Context(), strings.TrimSpace(req.SessionID), strings.TrimSpace(req.Message))
	switch {
	case errors.Is(err, usecase.ErrSessionIDRequired), errors.Is(err, usecase.ErrMessageRequired):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("chat endpoint failed, returning fallback", "error", err)
		resp = chatFallback
	}

	if h.workflow != nil {
		h.workflow.ChatMessage(resp.Stage)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	resp, err := h.verify.Execute(r.Context(), strings.TrimSpace(req.SessionID), req.Details)
	if err != nil {
		h.logger.Error("verify endpoint failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Session " + sessionID + " cleared",
	})
}

func (h *Handler) handleStages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.StagesResponse{
		Stages: []dto.StageInfo{
			{ID: "sales", Name: "Sales", Agent: "SalesAgent", Description: "Initial conversation and loan intent capture"},
			{ID: "verification", Name: "Verification", Agent: "VerificationAgent", Description: "KYC and identity verification"},
			{ID: "underwriting", Name: "Underwriting", Agent: "UnderwritingAgent", Description: "Loan eligibility assessment"},
			{ID: "sanction", Name: "Sanction", Agent: "SanctionAgent", Description: "Loan approval and letter generation"},
			{ID: "rejected", Name: "Rejected", Agent: "SanctionAgent", Description: "Application could not be approved"},
		},
		Flow: "sales → verification → underwriting → sanction | rejected",
	})
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	resp, err := h.applications.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	view, err := h.applications.Get(r.Context(), applicationID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Application not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load application")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authenticate.Execute(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
