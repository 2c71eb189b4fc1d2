package handler

import (
	"careertest/internal/model"
	"careertest/internal/scoring"
	"careertest/internal/service"
	"careertest/internal/transport/rest/middleware"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// QuestionnairePath is where a respondent with an incomplete answer set is sent back to
const QuestionnairePath = "/test"

// QuizHandler handles the questionnaire flow and result endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
	logger  *zap.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc, logger: logger}
}

// ChooseRequest is the request body for selecting a choice
type ChooseRequest struct {
	Choice *int `json:"choice"`
}

// ScoreRequest is the request body for stateless scoring
type ScoreRequest struct {
	Answers model.AnswerSet `json:"answers"`
}

// IncompleteResponse tells the client to return to the questionnaire
type IncompleteResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Questions handles GET /v1/questions
func (h *QuizHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quizSvc.Questions())
}

// State handles GET /v1/session
func (h *QuizHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.quizSvc.State(r.Context(), middleware.GetRespondentID(r.Context()))
	h.writeState(w, state, err)
}

// Choose handles POST /v1/session/choice
func (h *QuizHandler) Choose(w http.ResponseWriter, r *http.Request) {
	var req ChooseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Choice == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.quizSvc.Choose(r.Context(), middleware.GetRespondentID(r.Context()), *req.Choice)
	h.writeState(w, state, err)
}

// Next handles POST /v1/session/next
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.quizSvc.Next(r.Context(), middleware.GetRespondentID(r.Context()))
	h.writeState(w, state, err)
}

// Prev handles POST /v1/session/prev
func (h *QuizHandler) Prev(w http.ResponseWriter, r *http.Request) {
	state, err := h.quizSvc.Prev(r.Context(), middleware.GetRespondentID(r.Context()))
	h.writeState(w, state, err)
}

// Reset handles DELETE /v1/session
func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.quizSvc.Reset(r.Context(), middleware.GetRespondentID(r.Context()))
	h.writeState(w, state, err)
}

// Result handles GET /v1/result
func (h *QuizHandler) Result(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Result(r.Context(), middleware.GetRespondentID(r.Context()))
	if errors.Is(err, scoring.ErrIncompleteAnswerSet) {
		writeJSON(w, http.StatusConflict, IncompleteResponse{
			Error:    "answer set is incomplete",
			Redirect: QuestionnairePath,
		})
		return
	}
	if err != nil {
		h.internalError(w, "result", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Score handles POST /v1/score
func (h *QuizHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.quizSvc.Score(req.Answers)
	if errors.Is(err, scoring.ErrIncompleteAnswerSet) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, "score", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *QuizHandler) writeState(w http.ResponseWriter, state *model.SessionState, err error) {
	switch {
	case errors.Is(err, service.ErrChoiceOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoSelection):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		h.internalError(w, "session", err)
	default:
		writeJSON(w, http.StatusOK, state)
	}
}

func (h *QuizHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
