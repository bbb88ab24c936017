package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizagent/internal/agent"
	"github.com/abhisek/quizagent/internal/llm"
	"github.com/abhisek/quizagent/internal/logging"
	"github.com/abhisek/quizagent/internal/quiz"
	"github.com/abhisek/quizagent/internal/store"
)

const choiceBatch = `[
 {"type":"multiple_choice","question":"What pigment is green?","options":["Chlorophyll","Carotene","Melanin","Keratin"],"correctAnswer":0,"explanation":"Chlorophyll reflects green.","difficulty":"beginner","topic":"Pigments","xp":90},
 {"type":"multiple_choice","question":"What gas is released?","options":["Oxygen","Nitrogen","Helium","Argon"],"correctAnswer":0,"explanation":"Water is split.","difficulty":"beginner","topic":"Gases","xp":85}
]`

type testEnv struct {
	handler http.Handler
	mock    *llm.MockProvider
	agents  *agent.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := llm.NewMockProvider()
	completer := llm.NewCompleter(mock, llm.DefaultCompleterConfig())
	agents := agent.NewService(s.AgentRepo(), completer)

	cfg := quiz.DefaultConfig()
	cfg.OpenTextProbability = 0
	quizzes := quiz.NewService(agents, completer, cfg, rand.New(rand.NewPCG(1, 2)))

	return &testEnv{
		handler: New(agents, quizzes, logging.Discard()).Handler(),
		mock:    mock,
		agents:  agents,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createAgent(t *testing.T, name string) agent.Agent {
	t.Helper()
	e.mock.AddResponse(llm.MockResponse{Text: "Photosynthesis turns light into chemical energy in chloroplasts."})
	rec := e.do(t, http.MethodPost, "/api/setup-agent/", map[string]any{
		"name":          name,
		"system_prompt": "You teach biology.",
		"documents":     []string{"Plants use light.", "Chlorophyll is green."},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a agent.Agent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	return a
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodOptions, "/api/agent/abc/generate-questions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAgentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")
	assert.Equal(t, "Botany", a.Name)
	assert.NotEmpty(t, a.KnowledgeSummary)

	rec := env.do(t, http.MethodGet, "/api/agents/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []agent.Agent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = env.do(t, http.MethodGet, "/api/agents/?q=zzz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/agent/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/agent/"+a.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/agent/"+a.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "agent not found", decodeError(t, rec))
}

func TestSetupAgentValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/setup-agent/", map[string]any{"name": "x", "documents": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no documents provided", decodeError(t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/setup-agent/", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, 0, env.mock.CallCount())
}

func TestSetupAgentModelFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	rec := env.do(t, http.MethodPost, "/api/setup-agent/", map[string]any{"name": "x", "documents": []string{"doc"}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChat(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")
	env.mock.AddResponse(llm.MockResponse{Text: "Chloroplasts."})

	rec := env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/chat/", map[string]string{"user_prompt": "Where?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response":"Chloroplasts."}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/agent/missing/chat/", map[string]string{"user_prompt": "Where?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/chat/", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateQuestions(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")
	env.mock.AddResponse(llm.MockResponse{Text: "```json\n" + choiceBatch + "\n```"})

	rec := env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/generate-questions", map[string]any{
		"num_questions": 2,
		"difficulty":    "Beginner",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var questions []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
	require.Len(t, questions, 2)
	for i, q := range questions {
		assert.Equal(t, fmt.Sprintf("agent-%s-%d", a.ID, i+1), q["id"])
		assert.Equal(t, "multiple_choice", q["type"])
		assert.Len(t, q["options"], 4)
		assert.Contains(t, q, "correctAnswer")
		assert.Contains(t, q, "xp")
	}
}

func TestGenerateQuestionsDefaultsAndErrors(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")

	// No model response queued: the engine falls back, still 5 questions.
	rec := env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/generate-questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var questions []quiz.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
	assert.Len(t, questions, 5)

	rec = env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/generate-questions", map[string]any{"num_questions": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/generate-questions", map[string]any{"num_questions": 21})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/generate-questions", map[string]any{"difficulty": "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/agent/nope/generate-questions", map[string]any{"num_questions": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateAnswer(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")
	env.mock.AddResponse(llm.MockResponse{Text: `{"pointsEarned": 118, "feedback": "Solid answer.", "correctAnswer": "Light energy becomes chemical energy."}`})

	rec := env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/validate-answer", map[string]any{
		"question_id": "agent-x-1",
		"question":    "Explain photosynthesis.",
		"user_answer": "Plants turn light into sugar using chlorophyll.",
		"difficulty":  "intermediate",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res quiz.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.IsSuccessful)
	assert.Equal(t, 118, res.PointsEarned)
	assert.Equal(t, 130, res.MaxPoints)
	assert.Equal(t, "Solid answer.", res.Feedback)
}

func TestValidateAnswerFallbackAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAgent(t, "Botany")
	env.mock.AddResponse(llm.MockResponse{Err: &llm.ErrRateLimit{}})

	rec := env.do(t, http.MethodPost, "/api/agent/"+a.ID+"/validate-answer", map[string]any{
		"question":    "Explain photosynthesis.",
		"user_answer": "no idea",
		"difficulty":  "advanced",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var res quiz.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.IsSuccessful)
	assert.Equal(t, 160, res.MaxPoints)

	rec = env.do(t, http.MethodPost, "/api/agent/ghost/validate-answer", map[string]any{"question": "q", "user_answer": "a"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeError(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/agents/"},
		{http.MethodGet, "/api/setup-agent/"},
		{http.MethodPatch, "/api/agent/abc"},
		{http.MethodPost, "/health"},
	} {
		rec := env.do(t, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "method not allowed", decodeError(t, rec))
	}

	rec := env.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeError(t, rec))
}
