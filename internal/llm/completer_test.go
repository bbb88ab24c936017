package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizagent/internal/store"
)

func TestCompleter_Complete(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "[1,2]"})
	c := NewCompleter(mock, CompleterConfig{System: "sys", MaxTokens: 99, Temperature: 0.2})

	out, err := c.Complete(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", out)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, "sys", req.System)
	assert.Equal(t, 99, req.MaxTokens)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "prompt text"}}, req.Messages)
	assert.Equal(t, "mock", c.ModelID())
}

func TestCompleter_NoRetryOnError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Text: "never"})
	c := NewCompleter(mock, DefaultCompleterConfig())

	_, err := c.Complete(context.Background(), "p")
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 1, mock.CallCount())
}

func TestCompleter_TruncatedAndEmpty(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "[{", StopReason: "max_tokens"},
		MockResponse{Text: "  \n"},
	)
	c := NewCompleter(mock, DefaultCompleterConfig())

	_, err := c.Complete(context.Background(), "p")
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)

	_, err = c.Complete(context.Background(), "p")
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (slowProvider) ModelID() string { return "slow" }

func TestCompleter_Timeout(t *testing.T) {
	c := NewCompleter(slowProvider{}, CompleterConfig{Timeout: 10 * time.Millisecond})

	_, err := c.Complete(context.Background(), "p")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

type recorderFunc func(ctx context.Context, data store.LLMRequestEventData) error

func (f recorderFunc) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return f(ctx, data)
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	var events []store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		events = append(events, d)
		return nil
	})

	mock := NewMockProvider(
		MockResponse{Text: `{"pointsEarned":1}`, Usage: Usage{InputTokens: 12, OutputTokens: 4}},
	)
	p := WithLogging(mock, "mock", rec)
	ctx := WithPurpose(context.Background(), "quiz-grade")

	_, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "grade"}}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.True(t, events[0].Success)
	assert.Equal(t, "quiz-grade", events[0].Purpose)
	assert.Equal(t, "mock", events[0].Provider)
	assert.Equal(t, 12, events[0].InputTokens)
	assert.Equal(t, "[system]\nsys\n\n[user]\ngrade", events[0].RequestBody)
	assert.Equal(t, `{"pointsEarned":1}`, events[0].ResponseBody)

	assert.False(t, events[1].Success)
	assert.NotEmpty(t, events[1].ErrorMessage)
}

func TestLoggingProvider_RecorderFailureIgnored(t *testing.T) {
	rec := recorderFunc(func(context.Context, store.LLMRequestEventData) error {
		return errors.New("disk full")
	})
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", rec)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}
