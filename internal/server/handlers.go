package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisek/quizagent/internal/agent"
	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/logging"
	"github.com/abhisek/quizagent/internal/quiz"
)

const defaultQuestionCount = 5

type setupAgentRequest struct {
	Name         string   `json:"name"`
	SystemPrompt string   `json:"system_prompt"`
	Documents    []string `json:"documents"`
}

type chatRequest struct {
	UserPrompt string `json:"user_prompt"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type generateRequest struct {
	NumQuestions *int   `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

type validateRequest struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSetupAgent(w http.ResponseWriter, r *http.Request) {
	var req setupAgentRequest
	if !decode(w, r, &req) {
		return
	}

	a, err := s.agents.Create(r.Context(), req.Name, req.SystemPrompt, req.Documents)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.agents.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if agents == nil {
		agents = []agent.Agent{}
	}
	writeJSON(w, http.StatusOK, agents)
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	a, err := s.agents.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := s.agents.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		writeError(w, http.StatusBadRequest, "user_prompt is required")
		return
	}

	answer, err := s.agents.Chat(r.Context(), mux.Vars(r)["id"], req.UserPrompt)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}

	count := defaultQuestionCount
	if req.NumQuestions != nil {
		count = *req.NumQuestions
	}
	diff, err := quiz.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := s.quizzes.GenerateQuestions(r.Context(), mux.Vars(r)["id"], count, diff)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleValidateAnswer(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decode(w, r, &req) {
		return
	}

	// Unknown levels are graded on the beginner scale, not rejected.
	result, err := s.quizzes.ValidateAnswer(r.Context(), quiz.AnswerInput{
		AgentID:      mux.Vars(r)["id"],
		QuestionID:   req.QuestionID,
		QuestionText: req.Question,
		UserAnswer:   req.UserAnswer,
		Difficulty:   quiz.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty))),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decode reads a JSON body. An empty body decodes as the zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// writeServiceError maps service errors to status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quiz.ErrAgentNotFound):
		writeError(w, http.StatusNotFound, "agent not found")
	case errors.Is(err, quiz.ErrInvalidCount),
		errors.Is(err, agent.ErrNoDocuments),
		errors.Is(err, agent.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error())
	case isModelError(err):
		logging.FromContext(r.Context()).WithError(err).Warn("Model call failed")
		writeError(w, http.StatusBadGateway, "model provider failed")
	default:
		logging.FromContext(r.Context()).WithError(err).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isModelError(err error) bool {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
	)
	return errors.As(err, &rateLimit) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &invalid) ||
		errors.As(err, &truncated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
