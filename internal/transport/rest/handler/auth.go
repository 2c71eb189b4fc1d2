package handler

import (
	"careertest/internal/service"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// SessionHandler starts questionnaire sessions
type SessionHandler struct {
	quizSvc *service.QuizService
	logger  *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(quizSvc *service.QuizService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{quizSvc: quizSvc, logger: logger}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.quizSvc.Start(r.Context())
	if err != nil {
		h.logger.Error("start session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
